package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"google.golang.org/api/option"

	"ozonecli/internal/cleaning"
	"ozonecli/internal/config"
	"ozonecli/internal/infrastructure"
	"ozonecli/internal/service"
	"ozonecli/internal/storage"
)

func main() {
	bucket := flag.String("bucket", "", "object store bucket holding the raw and processed datasets (overrides config)")
	configPath := flag.String("config", "ozone.yaml", "path to optional YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	if *bucket != "" {
		cfg.Store.Bucket = *bucket
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}

	logger.Info("Starting ozone dataset preprocessing",
		slog.String("backend", cfg.Store.Backend),
		slog.String("bucket", cfg.Store.Bucket),
		slog.Int("datasets", len(cfg.Datasets)))

	if err := run(context.Background(), cfg, logger); err != nil {
		logger.Error("Preprocessing run failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Preprocessing complete")
}

// run owns the store lifecycle so the client is closed on every exit path,
// including failed runs.
func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	store, cleanup, err := buildStore(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("initialize blob store: %w", err)
	}
	defer cleanup()

	preprocessor := service.NewPreprocessor(store, cleaning.New(logger), logger)
	return preprocessor.Run(ctx, cfg.Datasets)
}

// buildStore constructs the configured blob-store backend and returns it with
// a cleanup func.
func buildStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (storage.Store, func(), error) {
	switch cfg.Store.Backend {
	case "local":
		return storage.NewLocalStore(cfg.Store.LocalDir, logger), func() {}, nil
	default:
		var opts []option.ClientOption
		if cfg.Store.CredentialsFile != "" {
			opts = append(opts, option.WithCredentialsFile(cfg.Store.CredentialsFile))
		}
		gcs, err := storage.NewGCSStore(ctx, cfg.Store.Bucket, logger, opts...)
		if err != nil {
			return nil, nil, err
		}
		return gcs, func() {
			if err := gcs.Close(); err != nil {
				logger.Warn("Failed to close storage client", slog.String("error", err.Error()))
			}
		}, nil
	}
}
