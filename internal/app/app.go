package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/waygate-dev/waygate/internal/config"
	"github.com/waygate-dev/waygate/internal/enrich"
	"github.com/waygate-dev/waygate/internal/fetcher"
	"github.com/waygate-dev/waygate/internal/httpserver"
	"github.com/waygate-dev/waygate/internal/httpserver/deps"
	"github.com/waygate-dev/waygate/internal/logger"
	"github.com/waygate-dev/waygate/internal/seed"
	"github.com/waygate-dev/waygate/internal/store/sqlite"
	"github.com/waygate-dev/waygate/internal/version"
)

type App struct {
	cfg      *config.Config
	logger   logger.Logger
	server   *httpserver.Server
	store    *sqlite.Store
	enricher *enrich.Enricher
	seeder   *seed.Seeder
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Open the store early - fail fast if the database is unusable
	loggerClient.Infof("Opening item store at %s", cfg.DBPath)
	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		loggerClient.Errorf("Failed to open item store: %v", err)
		os.Exit(1)
	}
	loggerClient.Info("Item store initialized successfully")

	// Metadata fetcher for enrichment jobs
	pageFetcher := fetcher.New(fetcher.Config{
		UserAgent: cfg.UserAgent,
		Timeout:   cfg.FetchTimeout,
	})

	// Enrichment coordinator: synchronous placeholder insert plus one
	// detached fetch job per created item
	enricher := enrich.New(store, pageFetcher, loggerClient)

	// Optional startup seeding (if a seed file is configured)
	var seeder *seed.Seeder
	if cfg.SeedFile != "" {
		loggerClient.Info("seed file configured",
			logger.String("file", cfg.SeedFile))
		seeder = seed.New(cfg.SeedFile, store, enricher, loggerClient)
	}

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:    loggerClient,
		StartTime: time.Now(),
		Version:   version.Version,
		Commit:    version.Commit,
		BuildDate: version.BuildDate,
		GoVersion: version.GoVersion,
		Store:     store,
		Enricher:  enricher,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:      cfg,
		logger:   loggerClient,
		server:   server,
		store:    store,
		enricher: enricher,
		seeder:   seeder,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting Waygate v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("Waygate %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Apply the seed file (no-op when not configured or store not empty)
	if a.seeder != nil {
		if err := a.seeder.Apply(ctx); err != nil {
			return fmt.Errorf("failed to apply seed file: %w", err)
		}
	}

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	// Let in-flight enrichment jobs land their (no-op-safe) updates
	drainCtx, cancelDrain := context.WithTimeout(context.Background(), a.cfg.DrainTimeout)
	defer cancelDrain()
	if err := a.enricher.Drain(drainCtx); err != nil {
		a.logger.Warnf("enrichment jobs still in flight after %s, abandoning", a.cfg.DrainTimeout)
	}

	if err := a.store.Close(); err != nil {
		a.logger.Warnf("failed to close store: %v", err)
	} else {
		a.logger.Info("✅ Store closed cleanly")
	}

	a.logger.Info("✅ Waygate stopped cleanly")
	return nil
}
