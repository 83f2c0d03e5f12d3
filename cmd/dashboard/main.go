package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/quake-dashboard/internal/adapter/httpadapter"
	"github.com/couchcryptid/quake-dashboard/internal/catalog"
	"github.com/couchcryptid/quake-dashboard/internal/config"
	"github.com/couchcryptid/quake-dashboard/internal/dashboard"
	"github.com/couchcryptid/quake-dashboard/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	// The table is loaded once and stays read-only for the life of the process.
	table, err := catalog.Load(cfg.DataPath)
	if err != nil {
		logger.Error("failed to load catalog", "path", cfg.DataPath, "error", err)
		os.Exit(1)
	}
	metrics.CatalogRows.Set(float64(table.Len()))
	logger.Info("catalog loaded",
		"path", table.Source(),
		"rows", table.Len(),
		"networks", len(table.Networks()),
	)

	d := dashboard.New(table, cfg.DefaultNetworks, cfg.ExportFilename, logger, metrics)
	size := httpadapter.RenderSize{Width: cfg.ChartWidth, Height: cfg.ChartHeight}
	srv := httpadapter.NewServer(cfg.HTTPAddr, d, size, metrics, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
