package probe

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/hamed0406/echoprobe/internal/telemetry"
)

// ContractProbe posts {"key":"value"} to one endpoint and classifies what
// comes back. Each Check sends exactly one request.
type ContractProbe struct {
	endpoint  Endpoint
	transport Transport
	reporter  *Reporter
	logger    *zap.Logger
	tracer    trace.Tracer
	meters    *telemetry.Meters
	resolver  *net.Resolver
	diagnose  bool
}

type Option func(*ContractProbe)

func WithTransport(t Transport) Option      { return func(p *ContractProbe) { p.transport = t } }
func WithReporter(r *Reporter) Option       { return func(p *ContractProbe) { p.reporter = r } }
func WithLogger(l *zap.Logger) Option       { return func(p *ContractProbe) { p.logger = l } }
func WithTracer(t trace.Tracer) Option      { return func(p *ContractProbe) { p.tracer = t } }
func WithMeters(m *telemetry.Meters) Option { return func(p *ContractProbe) { p.meters = m } }

// WithDNSDiagnosis makes transport failures log how the endpoint host
// resolved. r may be nil for the default resolver.
func WithDNSDiagnosis(r *net.Resolver) Option {
	return func(p *ContractProbe) {
		p.diagnose = true
		p.resolver = r
	}
}

func New(e Endpoint, opts ...Option) *ContractProbe {
	p := &ContractProbe{endpoint: e}
	for _, o := range opts {
		o(p)
	}
	if p.transport == nil {
		p.transport = NewHTTPTransport(0)
	}
	if p.reporter == nil {
		p.reporter = NewStdoutReporter()
	}
	if p.logger == nil {
		p.logger = zap.NewNop()
	}
	if p.tracer == nil {
		p.tracer = otel.Tracer("github.com/hamed0406/echoprobe/internal/probe")
	}
	return p
}

func (p *ContractProbe) Endpoint() Endpoint { return p.endpoint }

// Run is Check followed by printing the outcome.
func (p *ContractProbe) Run(ctx context.Context) Outcome {
	out := p.Check(ctx)
	if err := p.reporter.Report(out); err != nil {
		p.logger.Warn("probe_report_error", zap.Error(err))
	}
	return out
}

// Check sends the request and classifies the result without printing.
func (p *ContractProbe) Check(ctx context.Context) Outcome {
	req := newRequest(p.endpoint)

	ctx, span := p.tracer.Start(ctx, "probe.check", trace.WithAttributes(
		attribute.String("url.full", req.URL),
		attribute.String("http.request.method", req.Method),
	))
	defer span.End()

	start := time.Now()
	resp, err := p.transport.Send(ctx, req)
	latency := time.Since(start)

	out := classify(resp, err)

	span.SetAttributes(attribute.String("probe.outcome", string(out.Kind())))
	if err == nil {
		span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	}
	if out.Kind() != KindSuccess {
		span.SetStatus(codes.Error, string(out.Kind()))
	}
	p.record(ctx, out, latency)
	p.log(ctx, req, resp, out, latency)
	return out
}

func classify(resp Response, err error) Outcome {
	if err != nil {
		return TransportFailure{Description: err.Error(), Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return UnexpectedStatus{Code: resp.StatusCode, RawBody: string(resp.Body)}
	}
	var body ldvalue.Value
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		return MalformedSuccess{RawBody: string(resp.Body), Description: err.Error()}
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, resp.Body); err != nil {
		return MalformedSuccess{RawBody: string(resp.Body), Description: err.Error()}
	}
	return Success{Body: body, Raw: compact.String()}
}

func (p *ContractProbe) record(ctx context.Context, out Outcome, latency time.Duration) {
	if p.meters == nil {
		return
	}
	kind := telemetry.WithAttrs(attribute.String("outcome", string(out.Kind())))
	p.meters.Outcomes.Add(ctx, 1, kind)
	p.meters.Duration.Record(ctx, latency.Seconds(), kind)
}

func (p *ContractProbe) log(ctx context.Context, req Request, resp Response, out Outcome, latency time.Duration) {
	fields := []zap.Field{
		zap.String("url", req.URL),
		zap.String("outcome", string(out.Kind())),
		zap.Float64("latency_ms", latency.Seconds()*1000),
	}
	switch v := out.(type) {
	case Success:
		fields = append(fields, zap.Int("status", resp.StatusCode))
		p.logger.Info("probe_outcome", fields...)
	case UnexpectedStatus:
		fields = append(fields, zap.Int("status", v.Code), zap.Int("body_bytes", len(v.RawBody)))
		p.logger.Warn("probe_outcome", fields...)
	case MalformedSuccess:
		fields = append(fields, zap.Int("status", resp.StatusCode), zap.String("parse_error", v.Description))
		p.logger.Warn("probe_outcome", fields...)
	case TransportFailure:
		fields = append(fields, zap.Error(v.Err))
		if p.diagnose {
			d := diagnoseHost(ctx, p.resolver, p.endpoint.Host)
			fields = append(fields,
				zap.String("dns_class", string(d.Class)),
				zap.Strings("dns_addrs", d.Addrs),
				zap.String("resolver_error", d.ResolverError),
			)
		}
		p.logger.Error("probe_outcome", fields...)
	}
}
