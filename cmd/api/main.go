package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"onsite-calculator/internal/config"
	"onsite-calculator/internal/observability"
	"onsite-calculator/internal/server"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "onsite-calculator: %v\n", err)
		os.Exit(1)
	}
}

func run() error {

	ctx := context.Background()

	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Logger
	if err := observability.InitLogger(cfg.Server.LogLevel); err != nil {
		return err
	}
	defer observability.SyncLogger()

	observability.SetServiceName(cfg.Telemetry.ServiceName)

	// Tracing
	traceShutdown, err := observability.InitTracing(ctx)
	if err != nil {
		return err
	}
	defer traceShutdown(ctx)

	// Metrics
	metricShutdown, err := initMetrics(ctx)
	if err != nil {
		return err
	}
	defer metricShutdown(ctx)

	// Log export
	if cfg.Telemetry.ExportLogs {
		logShutdown, err := observability.InitLogging(ctx)
		if err != nil {
			return err
		}
		defer logShutdown(ctx)
	}

	calc, err := newCalculatorHandler(ctx, cfg)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           server.NewRouter(calc),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		observability.Logger.Info("server started", zap.String("addr", srv.Addr))

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	return waitForShutdown(srv, cfg.Server.ShutdownTimeout, errCh)
}

func waitForShutdown(srv *http.Server, timeout time.Duration, errCh <-chan error) error {

	stop := make(chan os.Signal, 1)

	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	}

	observability.Logger.Info("shutting down", zap.Duration("timeout", timeout))

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	return srv.Shutdown(ctx)
}
