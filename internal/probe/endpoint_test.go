package probe

import "testing"

func TestParseEndpoint(t *testing.T) {
	cases := []struct {
		in   string
		want Endpoint
		str  string
	}{
		{DefaultURL, DefaultEndpoint(), "http://localhost:8080/echo"},
		{"http://EXAMPLE.com/echo", Endpoint{"http", "example.com", 80, "/echo"}, "http://example.com:80/echo"},
		{"https://example.com", Endpoint{"https", "example.com", 443, "/"}, "https://example.com:443/"},
		{"http://[::1]:9000/a%20b", Endpoint{"http", "::1", 9000, "/a%20b"}, "http://[::1]:9000/a%20b"},
	}
	for _, c := range cases {
		got, err := ParseEndpoint(c.in)
		if err != nil {
			t.Fatalf("ParseEndpoint(%q): %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("ParseEndpoint(%q)=%+v want %+v", c.in, got, c.want)
		}
		if got.String() != c.str {
			t.Fatalf("String()=%q want %q", got.String(), c.str)
		}
	}
}

func TestParseEndpoint_Rejects(t *testing.T) {
	for _, in := range []string{"", "ftp://x/echo", "http://", "http://host:0/", "http://host:99999/", "://bad",
		"http://h:1/echo?x=1#f", "http://h:1/echo?x=1", "http://h:1/echo?", "http://h:1/echo#f", "http://user:pw@h:1/echo"} {
		if _, err := ParseEndpoint(in); err == nil {
			t.Fatalf("ParseEndpoint(%q): want error", in)
		}
	}
}

func TestNewRequest_FixedShape(t *testing.T) {
	req := newRequest(DefaultEndpoint())
	if req.Method != "POST" || req.URL != DefaultURL {
		t.Fatalf("unexpected request line: %s %s", req.Method, req.URL)
	}
	if len(req.Header) != 1 || req.Header.Get("Content-Type") != "application/json" {
		t.Fatalf("unexpected headers: %v", req.Header)
	}
	if string(req.Body) != `{"key":"value"}` {
		t.Fatalf("unexpected body: %s", req.Body)
	}
}
