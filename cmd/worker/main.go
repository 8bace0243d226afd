package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/asubedi/media-convert-go/internal/cache"
	"github.com/asubedi/media-convert-go/internal/config"
	"github.com/asubedi/media-convert-go/internal/db"
	workerHandler "github.com/asubedi/media-convert-go/internal/handler/worker"
	"github.com/asubedi/media-convert-go/internal/logger"
	"github.com/asubedi/media-convert-go/internal/port"
	"github.com/asubedi/media-convert-go/internal/provider"
	"github.com/asubedi/media-convert-go/internal/repository/mariadb"
	"github.com/asubedi/media-convert-go/internal/storage"
	"github.com/asubedi/media-convert-go/internal/task"
	mediaSvc "github.com/asubedi/media-convert-go/internal/usecase/media"
	"github.com/hibiken/asynq"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}
	if cfg.RedisAddr == "" {
		logger.Error(ctx, "⚠️  REDIS_ADDR must be set to run the worker")
		os.Exit(1)
	}

	logger.Init()

	database := initDb(cfg)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Warnf(ctx, "DB close error: %v", err)
		}
	}()

	uploads, processed := initBuckets(cfg)

	repo := mariadb.NewMediaRepository(database.DB)
	ca := cache.NewCache(cfg.RedisAddr, cfg.RedisPassword)

	stt := provider.NewWhisperTranscriber(cfg.FFmpegPath, cfg.WhisperPath, cfg.WhisperModelPath)
	tts := provider.NewGTTSSynthesiser(cfg.TTSEndpoint, nil)
	extractor := provider.NewFFmpegExtractor(cfg.FFmpegPath)
	probeProviders(ctx, stt, extractor)

	processorSvc := mediaSvc.NewMediaProcessor(repo, uploads, processed, ca, stt, tts, extractor)

	mux := asynq.NewServeMux()
	mux.HandleFunc(task.TypeProcessMedia, func(ctx context.Context, t *asynq.Task) error {
		p, err := task.ParseProcessMediaPayload(t)
		if err != nil {
			return err
		}
		return workerHandler.ProcessMediaHandler(ctx, p, processorSvc)
	})

	runWorker(ctx, mux, cfg, database)
}

func initDb(cfg *config.Settings) *db.Database {
	ctx := context.Background()
	logger.Info(ctx, "initialising database...")

	database, err := db.New(cfg.MariaDBDSN, cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to connect to db: %v", err)
		os.Exit(1)
	}
	return database
}

func initBuckets(cfg *config.Settings) (uploads, processed port.Storage) {
	ctx := context.Background()

	client, err := storage.NewClient(
		cfg.MinioEndpoint,
		cfg.MinioAccessKey,
		cfg.MinioSecretKey,
		cfg.MinioUseSSL,
	)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to initialize MinIO client: %v", err)
		os.Exit(1)
	}

	uploads, err = client.WithBucket(mediaSvc.BucketUploads)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to initialize bucket %q: %v", mediaSvc.BucketUploads, err)
		os.Exit(1)
	}
	processed, err = client.WithBucket(mediaSvc.BucketProcessed)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to initialize bucket %q: %v", mediaSvc.BucketProcessed, err)
		os.Exit(1)
	}

	return uploads, processed
}

// probeProviders warns about missing binaries at startup instead of letting the
// first task discover them.
func probeProviders(ctx context.Context, stt *provider.WhisperTranscriber, extractor *provider.FFmpegExtractor) {
	if err := extractor.Probe(ctx); err != nil {
		logger.Warnf(ctx, "⚠️  %v", err)
	}
	if err := stt.Probe(ctx); err != nil {
		logger.Warnf(ctx, "⚠️  %v", err)
	}
}

func runWorker(ctx context.Context, mux *asynq.ServeMux, cfg *config.Settings, database *db.Database) {
	srv := asynq.NewServer(asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}, asynq.Config{Concurrency: 10})

	// Run server in background
	go func() {
		if err := srv.Run(mux); err != nil {
			logger.Errorf(context.Background(), "❌  Worker failed: %v", err)
			os.Exit(1)
		}
	}()
	logger.Info(ctx, "🚀 Worker started")

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	logger.Info(ctx, "🛑 Shutdown signal received, exiting…")

	// Give Asynq up to 30 sec to finish tasks
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	srv.Shutdown()       // stop accepting new tasks, finish in-flight
	<-shutdownCtx.Done() // either timeout or done

	// Close DB
	if err := database.Close(); err != nil {
		logger.Warnf(ctx, "DB close error: %v", err)
	}
	logger.Info(ctx, "✅  Worker gracefully stopped")
}
