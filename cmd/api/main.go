package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/asubedi/media-convert-go/internal/cache"
	"github.com/asubedi/media-convert-go/internal/config"
	"github.com/asubedi/media-convert-go/internal/db"
	"github.com/asubedi/media-convert-go/internal/handler"
	"github.com/asubedi/media-convert-go/internal/handler/api"
	"github.com/asubedi/media-convert-go/internal/logger"
	cMiddleware "github.com/asubedi/media-convert-go/internal/middleware"
	"github.com/asubedi/media-convert-go/internal/port"
	"github.com/asubedi/media-convert-go/internal/provider"
	"github.com/asubedi/media-convert-go/internal/renderer"
	"github.com/asubedi/media-convert-go/internal/repository/mariadb"
	"github.com/asubedi/media-convert-go/internal/storage"
	"github.com/asubedi/media-convert-go/internal/task"
	mediaSvc "github.com/asubedi/media-convert-go/internal/usecase/media"
	msuuid "github.com/asubedi/media-convert-go/internal/uuid"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}

	logger.Init()

	database := initDb(ctx, cfg)

	r := initRouter(ctx)

	uploads, processed := initBuckets(ctx, cfg)

	mediaRepo := mariadb.NewMediaRepository(database.DB)
	var ca port.Cache
	var dispatcher port.TaskDispatcher
	if cfg.RedisAddr != "" {
		ca = cache.NewCache(cfg.RedisAddr, cfg.RedisPassword)
		dispatcher = task.NewDispatcher(cfg.RedisAddr, cfg.RedisPassword)
		logger.Info(ctx, "✅  Redis cache enabled")
	} else {
		ca = cache.NewNoop()
		dispatcher = task.NewNoopDispatcher()
		logger.Warn(ctx, "⚠️  Redis not configured, caching disabled and processing must be triggered explicitly")
	}

	stt := provider.NewWhisperTranscriber(cfg.FFmpegPath, cfg.WhisperPath, cfg.WhisperModelPath)
	tts := provider.NewGTTSSynthesiser(cfg.TTSEndpoint, nil)
	extractor := provider.NewFFmpegExtractor(cfg.FFmpegPath)

	processorSvc := mediaSvc.NewMediaProcessor(mediaRepo, uploads, processed, ca, stt, tts, extractor)
	uploaderSvc := mediaSvc.NewMediaUploader(mediaRepo, uploads, processorSvc, dispatcher, msuuid.NewUUID)
	r.Post("/files", api.UploadMediaHandler(uploaderSvc))

	listerSvc := mediaSvc.NewMediaLister(mediaRepo)
	r.Get("/files", api.ListMediaHandler(listerSvc))

	getterSvc := mediaSvc.NewMediaGetter(mediaRepo)
	rendererSvc := renderer.NewHTTPRenderer(ca)
	r.With(cMiddleware.WithMediaID()).
		Get("/files/{id}", api.GetMediaHandler(rendererSvc, getterSvc))

	r.With(cMiddleware.WithMediaID()).
		Post("/files/{id}/process", api.ProcessMediaHandler(processorSvc))

	downloaderSvc := mediaSvc.NewMediaDownloader(mediaRepo, processed)
	r.With(cMiddleware.WithMediaID()).
		Get("/files/{id}/download", api.DownloadMediaHandler(downloaderSvc))

	deleterSvc := mediaSvc.NewMediaDeleter(mediaRepo, ca, uploads, processed)
	r.With(cMiddleware.WithMediaID()).
		Delete("/files/{id}", api.DeleteMediaHandler(deleterSvc))

	listenRouter(ctx, r, cfg, database)
}

func initDb(ctx context.Context, cfg *config.Settings) *db.Database {
	logger.Info(ctx, "initialising database...")

	database, err := db.New(cfg.MariaDBDSN, cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to connect to db: %v", err)
		os.Exit(1)
	}

	return database
}

func initRouter(ctx context.Context) *chi.Mux {
	logger.Info(ctx, "initialising router...")

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(cMiddleware.WithRequestID())

	r.NotFound(handler.NotFoundHandler())
	r.MethodNotAllowed(api.MethodNotAllowedHandler())

	return r
}

func initBuckets(ctx context.Context, cfg *config.Settings) (uploads, processed port.Storage) {
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

func listenRouter(ctx context.Context, r *chi.Mux, cfg *config.Settings, database *db.Database) {
	srv := &http.Server{Addr: ":" + strconv.Itoa(cfg.ServerPort), Handler: r}

	// start serving
	go func() {
		logger.Infof(ctx, "🚀 API listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf(ctx, "❌  Listen error: %v", err)
			os.Exit(1)
		}
	}()

	// block until we get SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info(ctx, "🛑 Shutdown signal received, exiting…")

	// graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf(ctx, "❌  Server shutdown failed: %v", err)
		os.Exit(1)
	}
	logger.Info(ctx, "✅  Server gracefully stopped")

	if err := database.Close(); err != nil {
		logger.Errorf(ctx, "DB close error: %v", err)
		os.Exit(1)
	}
}
