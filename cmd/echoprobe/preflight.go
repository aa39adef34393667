package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alessio/shellescape"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/hamed0406/echoprobe/internal/config"
	"github.com/hamed0406/echoprobe/internal/probe"
	"github.com/hamed0406/echoprobe/internal/telemetry"
)

func newPreflightCmd(cfg config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "preflight",
		Short: "Check the environment and print the equivalent curl command",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return preflight(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg)
		},
	}
}

func preflight(stdout, stderr io.Writer, cfg config.Config) error {
	warn := func(msg string) { fmt.Fprintln(stderr, "⚠", msg) }
	ok := func(msg string) { fmt.Fprintln(stdout, "✔", msg) }

	endpoint, err := probe.ParseEndpoint(cfg.ProbeURL)
	if err != nil {
		return errors.Wrap(err, "PROBE_URL")
	}
	ok("PROBE_URL=" + endpoint.String())

	if err := os.MkdirAll(cfg.LogDir, 0o755); err != nil {
		return errors.Wrap(err, "LOG_DIR")
	}
	f, err := os.CreateTemp(cfg.LogDir, ".preflight-*")
	if err != nil {
		return errors.Wrapf(err, "LOG_DIR %s is not writable", cfg.LogDir)
	}
	f.Close()
	os.Remove(f.Name())
	abs, _ := filepath.Abs(cfg.LogDir)
	ok("LOG_DIR=" + abs)

	if cfg.ProbeTimeout == 0 {
		warn("PROBE_TIMEOUT_MS unset; the request waits as long as the transport allows.")
	} else {
		ok("PROBE_TIMEOUT_MS=" + fmt.Sprint(cfg.ProbeTimeout.Milliseconds()))
	}
	if cfg.EchoRPM > 0 && cfg.EchoBurst == 0 {
		warn("ECHO_BURST is 0; the echo server will allow one request at a time per client.")
	}
	if !telemetry.Enabled() {
		warn("OTEL_EXPORTER_OTLP_ENDPOINT empty; traces and metrics are not exported.")
	}

	ok("equivalent request: " + curlCommand(endpoint))
	ok("preflight passed")
	return nil
}

func curlCommand(e probe.Endpoint) string {
	args := []string{"curl", "-sS", "-X", "POST",
		"-H", "Content-Type: application/json",
		"-d", probe.Payload().JSONString(),
		e.String(),
	}
	quoted := make([]string, len(args))
	for i, a := range args {
		quoted[i] = shellescape.Quote(a)
	}
	return strings.Join(quoted, " ")
}
