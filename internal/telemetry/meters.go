package telemetry

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/hamed0406/echoprobe"

// WithAttrs returns a metric.MeasurementOption from attribute key-value pairs.
func WithAttrs(attrs ...attribute.KeyValue) metric.MeasurementOption {
	return metric.WithAttributes(attrs...)
}

// Meters holds the pre-created instruments the probe records into.
type Meters struct {
	Outcomes metric.Int64Counter
	Duration metric.Float64Histogram
}

// NewMeters creates the probe instruments on the given provider.
func NewMeters(mp metric.MeterProvider) (*Meters, error) {
	meter := mp.Meter(instrumentationName)

	outcomes, err := meter.Int64Counter(
		"echoprobe.probe.outcomes",
		metric.WithDescription("Probe executions by outcome kind"),
	)
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram(
		"echoprobe.probe.duration",
		metric.WithDescription("Wall time of one probe request in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &Meters{Outcomes: outcomes, Duration: duration}, nil
}
