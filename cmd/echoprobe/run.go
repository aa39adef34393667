package main

import (
	"context"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/hamed0406/echoprobe/internal/config"
	"github.com/hamed0406/echoprobe/internal/logging"
	"github.com/hamed0406/echoprobe/internal/probe"
	"github.com/hamed0406/echoprobe/internal/telemetry"
)

func newRunCmd(cfg config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "POST {\"key\":\"value\"} to the endpoint once and print the outcome",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			endpoint, err := probe.ParseEndpoint(cfg.ProbeURL)
			if err != nil {
				return err
			}
			return runProbe(cmd.Context(), cfg, endpoint, probe.NewStdoutReporter())
		},
	}
	cmd.Flags().StringVar(&cfg.ProbeURL, "url", cfg.ProbeURL, "endpoint to probe (env PROBE_URL)")
	cmd.Flags().DurationVar(&cfg.ProbeTimeout, "timeout", cfg.ProbeTimeout, "request timeout; 0 keeps the transport default (env PROBE_TIMEOUT_MS)")
	return cmd
}

// runProbe performs the single probe. Every outcome, failures included,
// ends in a nil error: the report is the result.
func runProbe(ctx context.Context, cfg config.Config, endpoint probe.Endpoint, rep *probe.Reporter) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger, err := logging.NewLogger(cfg.LogDir, "probe", cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	shutdownTracer, err := telemetry.InitTracer(ctx, logger, "echoprobe")
	if err != nil {
		return err
	}
	defer shutdownTracer(context.Background())
	shutdownMeter, err := telemetry.InitMeter(ctx, logger, "echoprobe")
	if err != nil {
		return err
	}
	defer shutdownMeter(context.Background())

	meters, err := telemetry.NewMeters(otel.GetMeterProvider())
	if err != nil {
		return err
	}

	p := probe.New(endpoint,
		probe.WithTransport(probe.NewHTTPTransport(cfg.ProbeTimeout)),
		probe.WithReporter(rep),
		probe.WithLogger(logger),
		probe.WithMeters(meters),
		probe.WithDNSDiagnosis(nil),
	)
	out := p.Run(ctx)
	logger.Debug("probe_done", zap.String("outcome", string(out.Kind())))
	return nil
}
