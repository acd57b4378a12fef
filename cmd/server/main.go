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

	"github.com/AngelCh415/marketing-dashboard/internal/config"
	"github.com/AngelCh415/marketing-dashboard/internal/httpx"
	"github.com/AngelCh415/marketing-dashboard/internal/metrics"
	"github.com/AngelCh415/marketing-dashboard/internal/store"
)

func main() {
	cfg, err := config.LoadServer()
	if err != nil {
		slog.Error("config", slog.String("err", err.Error()))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st := store.NewMemoryStore()
	if cfg.SeedData {
		if err := store.Seed(ctx, st); err != nil {
			logger.Error("seed store", slog.String("err", err.Error()))
			os.Exit(1)
		}
	}

	reg := metrics.NewRegistry()
	metrics.RegisterCampaignGauge(reg, st.CampaignCount)

	r := httpx.NewRouter(logger, st, httpx.Options{
		Version:     cfg.Version,
		Environment: cfg.Environment,
		Started:     time.Now(),
		Registry:    reg,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("starting server",
			slog.String("port", cfg.Port),
			slog.String("env", cfg.Environment),
			slog.String("version", cfg.Version))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.String("err", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Info("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			logger.Error("shutdown", slog.String("err", err.Error()))
			os.Exit(1)
		}
	}
}
