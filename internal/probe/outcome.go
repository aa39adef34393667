package probe

import "gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

// Kind names an Outcome variant in logs and metrics.
type Kind string

const (
	KindSuccess          Kind = "success"
	KindUnexpectedStatus Kind = "unexpected_status"
	KindTransportFailure Kind = "transport_failure"
	KindMalformedSuccess Kind = "malformed_success"
)

// Outcome is the result of one probe execution. The set of implementations
// is closed: Success, UnexpectedStatus, TransportFailure, MalformedSuccess.
type Outcome interface {
	Kind() Kind
	outcome()
}

// Success is a 200 response whose body parsed as JSON. Raw is the body
// compacted but otherwise as received; numbers ldvalue cannot hold exactly
// survive there.
type Success struct {
	Body ldvalue.Value
	Raw  string
}

// UnexpectedStatus is any response other than 200. RawBody is not parsed.
type UnexpectedStatus struct {
	Code    int
	RawBody string
}

// TransportFailure means no usable response came back: connection refused,
// DNS failure, timeout, malformed HTTP or an unreadable body.
type TransportFailure struct {
	Description string
	Err         error
}

// MalformedSuccess is a 200 response whose body is not valid JSON.
type MalformedSuccess struct {
	RawBody     string
	Description string
}

func (Success) Kind() Kind          { return KindSuccess }
func (UnexpectedStatus) Kind() Kind { return KindUnexpectedStatus }
func (TransportFailure) Kind() Kind { return KindTransportFailure }
func (MalformedSuccess) Kind() Kind { return KindMalformedSuccess }

func (Success) outcome()          {}
func (UnexpectedStatus) outcome() {}
func (TransportFailure) outcome() {}
func (MalformedSuccess) outcome() {}
