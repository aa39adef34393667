package echo

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/hamed0406/echoprobe/internal/probe"
)

func do(t *testing.T, h http.Handler, method, path, body string) (*http.Response, string) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	resp := rec.Result()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(b)
}

func TestEcho_ReturnsSameJSON(t *testing.T) {
	h := NewServer(nil).Router(0, 0)

	resp, body := do(t, h, http.MethodPost, "/echo", `{"key": "value", "n": 1.50, "list": [1, null]}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.JSONEq(t, `{"key":"value","n":1.50,"list":[1,null]}`, body)
	assert.Contains(t, body, "1.50")
}

func TestEcho_TrailingWhitespaceIsAccepted(t *testing.T) {
	h := NewServer(nil).Router(0, 0)
	resp, body := do(t, h, http.MethodPost, "/echo", "{\"key\": \"value\"}\n\t ")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"key":"value"}`, body)
}

func TestEcho_KeepsLargeNumbers(t *testing.T) {
	h := NewServer(nil).Router(0, 0)
	_, body := do(t, h, http.MethodPost, "/echo", `{"n":12345678901234567890}`)
	assert.Contains(t, body, "12345678901234567890")
}

func TestEcho_InvalidJSONIs400(t *testing.T) {
	h := NewServer(nil).Router(0, 0)
	for _, in := range []string{"", "not json", `{"a":1} {"b":2}`, `{"a":`, `{"a":1}]`, `{"a":1}}`, `[1]]`} {
		resp, body := do(t, h, http.MethodPost, "/echo", in)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "input %q", in)
		assert.JSONEq(t, `{"error":"invalid json"}`, body)
	}
}

func TestMessageRoutes(t *testing.T) {
	h := NewServer(nil).Router(0, 0)

	_, body := do(t, h, http.MethodGet, "/hello", "")
	assert.JSONEq(t, `{"message":"Hello, world!"}`, body)

	_, body = do(t, h, http.MethodGet, "/json", "")
	assert.JSONEq(t, `{"message":"Hello, JSON!","status":"success"}`, body)

	_, body = do(t, h, http.MethodGet, "/", "")
	assert.JSONEq(t, `{"message":"Welcome To Celeris Backend"}`, body)

	resp, body := do(t, h, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body)
}

func TestUnknownRouteIs404(t *testing.T) {
	h := NewServer(nil).Router(0, 0)
	resp, body := do(t, h, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Route Not Found", body)
}

func TestAccessLog(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	h := NewServer(zap.New(core)).Router(0, 0)

	do(t, h, http.MethodPost, "/echo", `{"key":"value"}`)

	entries := logs.FilterMessage("echo_request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/echo", fields["path"])
	assert.EqualValues(t, 200, fields["status"])
}

func TestProbeAgainstEchoServer(t *testing.T) {
	s := httptest.NewServer(NewServer(nil).Router(0, 0))
	defer s.Close()

	e, err := probe.ParseEndpoint(s.URL + "/echo")
	require.NoError(t, err)

	var out strings.Builder
	o := probe.New(e, probe.WithReporter(&probe.Reporter{Out: &out})).Run(context.Background())

	succ, ok := o.(probe.Success)
	require.True(t, ok, "want Success, got %#v", o)
	assert.True(t, probe.Payload().Equal(succ.Body))
	assert.Equal(t, "Response: {\"key\":\"value\"}\n", out.String())
}

func TestProbeAgainstMissingRoute(t *testing.T) {
	s := httptest.NewServer(NewServer(nil).Router(0, 0))
	defer s.Close()

	e, err := probe.ParseEndpoint(s.URL + "/missing")
	require.NoError(t, err)

	o := probe.New(e, probe.WithReporter(&probe.Reporter{Out: io.Discard})).Run(context.Background())
	assert.Equal(t, probe.UnexpectedStatus{Code: 404, RawBody: "Route Not Found"}, o)
}
