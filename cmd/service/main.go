// Package main is the entry point for the service.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/battulga/wordwall/internal/adapters/http"
	"github.com/battulga/wordwall/internal/adapters/http/handlers"
	"github.com/battulga/wordwall/internal/adapters/storage/blob"
	"github.com/battulga/wordwall/internal/adapters/storage/memory"
	"github.com/battulga/wordwall/internal/adapters/storage/sqlite"
	"github.com/battulga/wordwall/internal/app"
	"github.com/battulga/wordwall/internal/platform/config"
	"github.com/battulga/wordwall/internal/platform/logging"
	"github.com/battulga/wordwall/internal/platform/metrics"
	"github.com/battulga/wordwall/internal/ports"
)

// Build-time variables, injected via ldflags.
// Example: go build -ldflags "-X main.Version=1.0.0 -X main.Commit=$(git rev-parse HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	// Version is the semantic version of the service.
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "unknown"

	// BuildTime is the timestamp when the binary was built.
	BuildTime = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// 1. Determine profile from environment
	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	// 2. Load and validate configuration (fail fast)
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// 3. Initialize logging
	logger := logging.New(logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	logging.SetDefault(logger)

	logger.Info("starting service",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
		slog.String("store", cfg.Store.Driver),
	)

	// 4. Initialize metrics
	appMetrics := metrics.New(prometheus.DefaultRegisterer)

	// 5. Create health registry
	healthRegistry := ports.NewHealthRegistry()

	// 6. Create the word store adapter
	repo, closeRepo, err := openStore(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("opening word store: %w", err)
	}
	defer closeRepo()

	if checker, ok := repo.(ports.HealthChecker); ok {
		if err := healthRegistry.Register(checker); err != nil {
			return fmt.Errorf("registering store health check: %w", err)
		}
	}

	// 7. Create word service (application layer)
	wordService := app.NewWordService(app.WordServiceConfig{
		Repository:    repo,
		Logger:        logger,
		Metrics:       appMetrics,
		MaxWordLength: cfg.Words.MaxLength,
		MaxBatchSize:  cfg.Words.MaxBatch,
	})

	// 8. Create handlers
	buildInfo := handlers.NewBuildInfo(Version, Commit, BuildTime)
	healthHandler := handlers.NewHealthHandler(healthRegistry, buildInfo)
	wordHandler := handlers.NewWordHandler(wordService)

	// 9. Create HTTP server
	server := http.New(&cfg.Server, logger)

	// 10. Setup router with all middleware and routes
	http.SetupRouter(server.Engine(), http.RouterConfig{
		Logger:        logger,
		Metrics:       appMetrics,
		HealthHandler: healthHandler,
		WordHandler:   wordHandler,
		Timeout:       http.DefaultRequestTimeout,
	})

	// 11. Start server (non-blocking)
	serverErr := server.Start()

	// 12. Wait for shutdown signal
	return waitForShutdown(ctx, logger, server, serverErr, cfg.Server.ShutdownTimeout)
}

// openStore builds the word repository selected by store.driver and returns
// it with a close function for adapters that hold resources.
func openStore(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
) (ports.WordRepository, func(), error) {
	switch cfg.Store.Driver {
	case "sqlite":
		store, err := sqlite.Open(ctx, sqlite.Config{
			DSN:    cfg.Store.SQLite.DSN,
			Logger: logger,
		})
		if err != nil {
			return nil, nil, err
		}

		closeFn := func() {
			if closeErr := store.Close(); closeErr != nil {
				logger.Error("closing sqlite store", slog.Any("error", closeErr))
			}
		}

		return store, closeFn, nil

	case "blob":
		store, err := blob.Open(ctx, blob.Config{
			Region:      cfg.Store.Blob.Region,
			Bucket:      cfg.Store.Blob.Bucket,
			Key:         cfg.Store.Blob.Key,
			Endpoint:    cfg.Store.Blob.Endpoint,
			Conditional: cfg.Store.Blob.Conditional,
			Logger:      logger,
		})
		if err != nil {
			return nil, nil, err
		}

		return store, func() {}, nil

	case "memory":
		return memory.New(), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

// waitForShutdown blocks until a shutdown signal is received or server error occurs.
// It then performs graceful shutdown of the HTTP server.
func waitForShutdown(
	ctx context.Context,
	logger *slog.Logger,
	server *http.Server,
	serverErr <-chan error,
	shutdownTimeout time.Duration,
) error {
	// Listen for OS signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		// Server error during startup or runtime
		return fmt.Errorf("server error: %w", err)

	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	logger.Info("initiating graceful shutdown",
		slog.Duration("timeout", shutdownTimeout),
	)

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("shutdown complete")

	return nil
}
