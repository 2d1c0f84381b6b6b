package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"luminacine/internal/usecase"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	shutdownTimeout = 10 * time.Second
	sweepInterval   = time.Minute
	sessionCleanup  = time.Hour
)

// APIServer serves route until ctx is cancelled, then drains in-flight
// requests. Housekeeping jobs run alongside it.
func APIServer(ctx context.Context, route http.Handler, port string, service *usecase.Service, logger *zap.Logger) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", port),
		Handler:           route,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, runCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Server running", zap.String("addr", "http://localhost"+srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("starting http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-runCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		logger.Info("Shutting down HTTP server")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		runJanitor(runCtx, service, logger)
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("Shutdown complete")
	return nil
}

// runJanitor sweeps idle checkout flows and expired sessions until ctx ends.
func runJanitor(ctx context.Context, service *usecase.Service, logger *zap.Logger) {
	sweep := time.NewTicker(sweepInterval)
	defer sweep.Stop()
	cleanup := time.NewTicker(sessionCleanup)
	defer cleanup.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-sweep.C:
			if n := service.Checkout.Sweep(); n > 0 {
				logger.Info("Idle checkouts swept", zap.Int("count", n))
			}

		case <-cleanup.C:
			n, err := service.Auth.CleanExpiredSessions(ctx)
			if err != nil {
				logger.Error("Failed to clean expired sessions", zap.Error(err))
				continue
			}
			logger.Info("Expired sessions cleaned", zap.Int64("count", n))
		}
	}
}
