// ABOUTME: Entry point for the SDCCH dimensioning backend service
// ABOUTME: Serves the Erlang-B and channel conversion planning API

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ubaidashraf22/RF/backend/cache"
	"github.com/ubaidashraf22/RF/backend/config"
	"github.com/ubaidashraf22/RF/backend/handlers"
	"github.com/ubaidashraf22/RF/backend/logger"
	"github.com/ubaidashraf22/RF/backend/metrics"
	"github.com/ubaidashraf22/RF/backend/models"
)

func main() {
	logger.Init(os.Stdout)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting SDCCH dimensioning backend",
		"top_n_days", cfg.TopNDays,
		"blocking_probability", cfg.BlockingProbability,
		"max_channels", cfg.MaxChannels,
		"workers", cfg.PlanWorkers)
	if len(cfg.CORSAllowedOrigins) == 0 {
		slog.Warn("CORS_ALLOWED_ORIGINS not set, cross-origin requests are rejected")
	}

	cacheTTL := time.Duration(cfg.CacheTTL) * time.Second
	c := cache.New[models.PlanResponse](cacheTTL)
	defer c.Close()
	slog.Info("Cache initialized", "ttl", cacheTTL)

	m, err := metrics.New(nil)
	if err != nil {
		slog.Error("Failed to register metrics", "error", err)
		os.Exit(1)
	}

	h := handlers.NewHandler(cfg, c, m)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           h.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		slog.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Graceful shutdown failed", "error", err)
		}
	}
}
