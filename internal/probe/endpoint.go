package probe

import (
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// DefaultURL is where the echo endpoint lives unless PROBE_URL says otherwise.
const DefaultURL = "http://localhost:8080/echo"

// Endpoint is the address the probe targets. It is a value type; copies are
// independent and nothing in this package mutates one after construction.
type Endpoint struct {
	Scheme string
	Host   string
	Port   int
	Path   string
}

// ParseEndpoint turns an http(s) URL into an Endpoint, filling in the
// scheme's default port and a "/" path when they are omitted.
func ParseEndpoint(raw string) (Endpoint, error) {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil {
		return Endpoint{}, errors.Wrapf(err, "parse endpoint %q", raw)
	}
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return Endpoint{}, errors.Errorf("endpoint %q: scheme must be http or https", raw)
	}
	if u.Hostname() == "" {
		return Endpoint{}, errors.Errorf("endpoint %q: missing host", raw)
	}
	// Endpoint has nowhere to keep these; refuse rather than drop them.
	if u.User != nil {
		return Endpoint{}, errors.Errorf("endpoint %q: userinfo is not supported", raw)
	}
	if u.RawQuery != "" || u.ForceQuery {
		return Endpoint{}, errors.Errorf("endpoint %q: query string is not supported", raw)
	}
	if u.Fragment != "" || strings.Contains(raw, "#") {
		return Endpoint{}, errors.Errorf("endpoint %q: fragment is not supported", raw)
	}

	port := 80
	if scheme == "https" {
		port = 443
	}
	if p := u.Port(); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil || n < 1 || n > 65535 {
			return Endpoint{}, errors.Errorf("endpoint %q: invalid port %q", raw, p)
		}
		port = n
	}

	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	return Endpoint{
		Scheme: scheme,
		Host:   strings.ToLower(u.Hostname()),
		Port:   port,
		Path:   path,
	}, nil
}

// DefaultEndpoint is ParseEndpoint(DefaultURL).
func DefaultEndpoint() Endpoint {
	return Endpoint{Scheme: "http", Host: "localhost", Port: 8080, Path: "/echo"}
}

// String renders the endpoint as a URL. The port is always explicit.
func (e Endpoint) String() string {
	u := url.URL{
		Scheme: e.Scheme,
		Host:   net.JoinHostPort(e.Host, strconv.Itoa(e.Port)),
		Path:   e.Path,
	}
	// Path is stored escaped; keep it that way.
	u.RawPath = e.Path
	if p, err := url.PathUnescape(e.Path); err == nil {
		u.Path = p
	}
	return u.String()
}
