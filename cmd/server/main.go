package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/shelter-directory/internal/adapter/datasource"
	httpadapter "github.com/couchcryptid/shelter-directory/internal/adapter/http"
	"github.com/couchcryptid/shelter-directory/internal/config"
	"github.com/couchcryptid/shelter-directory/internal/observability"
	"github.com/couchcryptid/shelter-directory/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// A failed load keeps the host up: the page shows the unavailable state
	// and /readyz reports the cause.
	var records *store.Store
	src, err := datasource.Open(ctx, cfg.DataSource, datasource.OptionsFromConfig(cfg))
	if err != nil {
		records = store.Failed(cfg.DataSource, err)
	} else {
		records = store.Load(ctx, src)
	}
	metrics.ObserveLoad(records)

	if err := records.Err(); err != nil {
		logger.Error("record store unavailable", "source", records.Source(), "error", err)
	} else {
		logger.Info("record store loaded",
			"source", records.Source(),
			"records", records.Len(),
			"defects", records.DefectCount(),
			"duration", records.LoadDuration(),
		)
	}
	for _, d := range records.Defects() {
		logger.Warn("record defect", "index", d.Index, "field", d.Field, "reason", d.Reason)
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, cfg.SiteDir, records, metrics, logger)

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
