package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ProbeURL     string        // endpoint the probe posts to, e.g. http://localhost:8080/echo
	ProbeTimeout time.Duration // 0 keeps the HTTP client's default (no limit)
	EchoAddr     string        // echo server bind address
	EchoRPM      int           // echo server requests/min per client; 0 disables limiting
	EchoBurst    int
	LogDir       string // logs directory
	LogLevel     string // debug, info, warn, error
}

func FromEnv() Config {
	probeURL := strings.TrimSpace(os.Getenv("PROBE_URL"))
	if probeURL == "" {
		probeURL = "http://localhost:8080/echo"
	}

	var probeTimeout time.Duration
	if v := os.Getenv("PROBE_TIMEOUT_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			probeTimeout = time.Duration(ms) * time.Millisecond
		}
	}

	// Port matches the default PROBE_URL.
	addr := os.Getenv("ECHO_ADDR")
	if addr == "" {
		addr = "127.0.0.1:8080"
	}

	logDir := os.Getenv("LOG_DIR")
	if logDir == "" {
		logDir = "logs"
	}
	logLevel := strings.ToLower(strings.TrimSpace(os.Getenv("LOG_LEVEL")))
	if logLevel == "" {
		logLevel = "info"
	}

	return Config{
		ProbeURL:     probeURL,
		ProbeTimeout: probeTimeout,
		EchoAddr:     addr,
		EchoRPM:      atoiDefault("ECHO_RPM", 0),
		EchoBurst:    atoiDefault("ECHO_BURST", 10),
		LogDir:       logDir,
		LogLevel:     logLevel,
	}
}

func atoiDefault(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return def
}
