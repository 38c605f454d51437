// Package app wires configuration, logging, the dataset cache, the HTTP
// surface, and graceful shutdown into one runnable unit.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/AngelP17/manufacturing-demo/internal/api"
	"github.com/AngelP17/manufacturing-demo/internal/config"
	"github.com/AngelP17/manufacturing-demo/internal/demodata"
	"github.com/AngelP17/manufacturing-demo/internal/diag"
	"github.com/AngelP17/manufacturing-demo/internal/export"
	"github.com/AngelP17/manufacturing-demo/internal/metrics"
	"github.com/AngelP17/manufacturing-demo/internal/settings"
	"github.com/AngelP17/manufacturing-demo/internal/web"
)

// Application owns every long-lived component of the dashboard process.
type Application struct {
	cfg     config.Config
	logger  *slog.Logger
	logFile *os.File
	server  *http.Server
	cache   *demodata.Cache
	export  *export.Publisher
}

// New prepares a fully wired instance: it validates settings, ensures
// the log directory exists, and assembles the router with middleware.
func New(cfg config.Config) (*Application, error) {
	if strings.TrimSpace(cfg.ListenAddress) == "" {
		return nil, errors.New("listen address cannot be empty")
	}
	logPath := filepath.Clean(cfg.LogFilePath)
	if logPath == "" {
		return nil, errors.New("log file path cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	lf, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	logger := newLogger(lf)
	m := metrics.New()

	cache, err := demodata.NewCache(demodata.Params{
		Machines:         cfg.Machines,
		MachinePoints:    cfg.MachinePoints,
		ProductionPoints: cfg.ProductionPoints,
		Interval:         cfg.SampleInterval,
		Seed:             cfg.Seed,
	}, m)
	if err != nil {
		_ = lf.Close()
		return nil, fmt.Errorf("dataset cache init: %w", err)
	}
	logger.Info("dataset_cache_configured",
		slog.Int("machines", len(cfg.Machines)),
		slog.Int("machinePoints", cfg.MachinePoints),
		slog.Int("productionPoints", cfg.ProductionPoints),
		slog.Duration("sampleInterval", cfg.SampleInterval),
		slog.Int64("seed", cfg.Seed),
	)

	store := settings.NewStore()
	runner := diag.NewRunner(logger.With(slog.String("component", "diagnostics")), cfg.DiagnosticsStepDelay)

	h := &api.Handlers{
		Log:      logger,
		Cache:    cache,
		Settings: store,
		Diag:     runner,
		Metrics:  m,
	}
	pages := web.NewPages(logger.With(slog.String("component", "web")), cache, store, runner)
	handler := api.NewRouter(logger, m, h, pages)

	server := &http.Server{
		Addr:              cfg.ListenAddress,
		Handler:           handler,
		ReadTimeout:       cfg.HTTPReadTimeout,
		ReadHeaderTimeout: cfg.HTTPReadTimeout,
		WriteTimeout:      cfg.HTTPWriteTimeout,
		IdleTimeout:       cfg.HTTPWriteTimeout,
	}

	app := &Application{
		cfg:     cfg,
		logger:  logger,
		logFile: lf,
		server:  server,
		cache:   cache,
	}
	if len(cfg.KafkaBrokers) > 0 {
		app.export = export.NewPublisher(
			logger.With(slog.String("component", "export")),
			cfg.KafkaBrokers,
			cfg.ExportTopic,
		)
		logger.Info("dataset_export_enabled",
			slog.String("brokers", strings.Join(cfg.KafkaBrokers, ",")),
			slog.String("topic", cfg.ExportTopic),
		)
	}
	return app, nil
}

// Logger exposes the configured slog logger so main can emit structured
// logs after initialization.
func (a *Application) Logger() *slog.Logger {
	return a.logger
}

// Run blocks until the context is cancelled or the HTTP server fails.
// If Kafka export is enabled, the dataset is generated and published
// once on startup; export failures are logged but never fatal.
func (a *Application) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if a.export != nil {
		go a.exportDataset(ctx)
	}

	httpCh := make(chan error, 1)
	go func() {
		a.logger.Info("http_server_listen", slog.String("address", a.cfg.ListenAddress))
		httpCh <- a.server.ListenAndServe()
	}()

	var httpErr error
	for {
		select {
		case err := <-httpCh:
			httpErr = err
			httpCh = nil
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.logger.Error("http_server_error", slog.Any("err", err))
			} else {
				a.logger.Info("server_closed")
			}
			cancel()
		case <-ctx.Done():
			a.logger.Info("shutdown_signal")
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
			if err := a.server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
				a.logger.Error("server_shutdown_failed", slog.Any("err", err))
				if httpErr == nil {
					httpErr = fmt.Errorf("shutdown: %w", err)
				}
			}
			shutdownCancel()

			if httpCh != nil {
				if err := <-httpCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
					a.logger.Error("server_shutdown_error", slog.Any("err", err))
					if httpErr == nil {
						httpErr = err
					}
				}
			}
			if httpErr != nil && !errors.Is(httpErr, http.ErrServerClosed) {
				return httpErr
			}
			a.logger.Info("shutdown_complete")
			return nil
		}
	}
}

func (a *Application) exportDataset(ctx context.Context) {
	exportCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	ds, err := a.cache.Load()
	if err != nil {
		a.logger.Error("export_dataset_load_failed", slog.Any("err", err))
		return
	}
	if err := a.export.PublishDataset(exportCtx, ds); err != nil {
		a.logger.Warn("export_dataset_failed", slog.Any("err", err))
	}
}

// Close releases resources owned by the application instance.
func (a *Application) Close() error {
	if a.export != nil {
		if err := a.export.Close(); err != nil {
			return err
		}
		a.export = nil
	}
	if a.logFile == nil {
		return nil
	}
	if err := a.logFile.Close(); err != nil {
		return err
	}
	a.logFile = nil
	return nil
}
