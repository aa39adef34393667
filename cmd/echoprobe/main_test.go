package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hamed0406/echoprobe/internal/config"
	"github.com/hamed0406/echoprobe/internal/echo"
	"github.com/hamed0406/echoprobe/internal/probe"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	return config.Config{
		ProbeURL: probe.DefaultURL,
		LogDir:   t.TempDir(),
		LogLevel: "info",
	}
}

func TestRunProbe_PrintsAndLogs(t *testing.T) {
	s := httptest.NewServer(echo.NewServer(nil).Router(0, 0))
	defer s.Close()

	cfg := testConfig(t)
	e, err := probe.ParseEndpoint(s.URL + "/echo")
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, runProbe(context.Background(), cfg, e, &probe.Reporter{Out: &out}))
	assert.Equal(t, "Response: {\"key\":\"value\"}\n", out.String())

	b, err := os.ReadFile(filepath.Join(cfg.LogDir, "probe.log"))
	require.NoError(t, err)
	assert.Contains(t, string(b), `"msg":"probe_outcome"`)
	assert.Contains(t, string(b), `"outcome":"success"`)
}

func TestRunProbe_FailureIsNotAnError(t *testing.T) {
	cfg := testConfig(t)
	e := probe.Endpoint{Scheme: "http", Host: "127.0.0.1", Port: 1, Path: "/echo"}

	var out bytes.Buffer
	require.NoError(t, runProbe(context.Background(), cfg, e, &probe.Reporter{Out: &out}))
	assert.True(t, strings.HasPrefix(out.String(), "An error occurred: "), out.String())
}

func TestRootCmd_RejectsBadURL(t *testing.T) {
	cfg := testConfig(t)
	root := newRootCmd(cfg)
	root.SetArgs([]string{"run", "--url", "ftp://nope"})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	assert.Error(t, root.Execute())
}

func TestPreflight(t *testing.T) {
	cfg := testConfig(t)
	var stdout, stderr bytes.Buffer
	require.NoError(t, preflight(&stdout, &stderr, cfg))

	assert.Contains(t, stdout.String(), "✔ PROBE_URL=http://localhost:8080/echo")
	assert.Contains(t, stdout.String(),
		`curl -sS -X POST -H 'Content-Type: application/json' -d '{"key":"value"}' http://localhost:8080/echo`)
	assert.Contains(t, stdout.String(), "preflight passed")
	assert.Contains(t, stderr.String(), "PROBE_TIMEOUT_MS unset")
}

func TestPreflight_BadURL(t *testing.T) {
	cfg := testConfig(t)
	cfg.ProbeURL = "localhost:8080/echo"
	err := preflight(&bytes.Buffer{}, &bytes.Buffer{}, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PROBE_URL")
}

func TestServe_StopsOnCancel(t *testing.T) {
	cfg := testConfig(t)
	cfg.EchoAddr = "127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, zap.NewNop(), cfg) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after cancel")
	}
}
