package probe

import (
	"net/http"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Payload is the JSON object the probe submits: {"key":"value"}.
func Payload() ldvalue.Value {
	return ldvalue.ObjectBuild().Set("key", ldvalue.String("value")).Build()
}

// Request is what gets sent to the endpoint. A fresh one is built for every
// Check; they are never shared between executions.
type Request struct {
	Method string
	URL    string
	Header http.Header
	Body   []byte
}

func newRequest(e Endpoint) Request {
	h := make(http.Header, 1)
	h.Set("Content-Type", "application/json")
	return Request{
		Method: http.MethodPost,
		URL:    e.String(),
		Header: h,
		Body:   []byte(Payload().JSONString()),
	}
}
