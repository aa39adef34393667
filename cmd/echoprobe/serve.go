package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hamed0406/echoprobe/internal/config"
	"github.com/hamed0406/echoprobe/internal/echo"
	"github.com/hamed0406/echoprobe/internal/logging"
)

func newServeCmd(cfg config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the reference echo server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logging.NewLogger(cfg.LogDir, "echo", cfg.LogLevel)
			if err != nil {
				return err
			}
			defer logger.Sync()

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, logger, cfg)
		},
	}
	cmd.Flags().StringVar(&cfg.EchoAddr, "addr", cfg.EchoAddr, "bind address (env ECHO_ADDR)")
	cmd.Flags().IntVar(&cfg.EchoRPM, "rpm", cfg.EchoRPM, "requests per minute per client, 0 disables (env ECHO_RPM)")
	cmd.Flags().IntVar(&cfg.EchoBurst, "burst", cfg.EchoBurst, "rate limit burst (env ECHO_BURST)")
	return cmd
}

func serve(ctx context.Context, logger *zap.Logger, cfg config.Config) error {
	srv := &http.Server{
		Addr:              cfg.EchoAddr,
		Handler:           echo.NewServer(logger).Router(cfg.EchoRPM, cfg.EchoBurst),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("echo_listen", zap.String("addr", cfg.EchoAddr), zap.Int("rpm", cfg.EchoRPM))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("echo_shutdown")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
