package probe

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Response is the status and body of a completed exchange.
type Response struct {
	StatusCode int
	Body       []byte
}

// Transport sends a request and blocks until a response or an error comes back.
type Transport interface {
	Send(ctx context.Context, req Request) (Response, error)
}

// HTTPTransport is a Transport over net/http.
type HTTPTransport struct {
	Client *http.Client
}

// NewHTTPTransport returns a transport whose round trips are traced with
// otelhttp. A zero timeout leaves the client's default (no limit) in place.
func NewHTTPTransport(timeout time.Duration) *HTTPTransport {
	return &HTTPTransport{
		Client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

func (h *HTTPTransport) Send(ctx context.Context, req Request) (Response, error) {
	hreq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, bytes.NewReader(req.Body))
	if err != nil {
		return Response{}, errors.Wrap(err, "build request")
	}
	for k, vs := range req.Header {
		for _, v := range vs {
			hreq.Header.Add(k, v)
		}
	}

	resp, err := h.Client.Do(hreq)
	if err != nil {
		return Response{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, errors.Wrap(err, "read response body")
	}
	return Response{StatusCode: resp.StatusCode, Body: body}, nil
}
