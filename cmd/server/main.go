package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fableforge/fableforge/internal/capture"
	"github.com/fableforge/fableforge/internal/config"
	"github.com/fableforge/fableforge/internal/handlers/api"
	"github.com/fableforge/fableforge/internal/logging"
	"github.com/fableforge/fableforge/internal/repositories/campaigns"
	"github.com/fableforge/fableforge/internal/services"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	// Local development keeps settings in .env; absence is fine
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := logging.New(logging.Config{
		Level:    cfg.LogLevel,
		Encoding: cfg.LogEncoding,
	})
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("resolved service modes",
		zap.String("persistence", string(cfg.Persistence)),
		zap.String("generation", string(cfg.Generation)),
		zap.String("test_mode", string(cfg.TestMode)),
		zap.String("store_backend", string(cfg.StoreBackend)))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	providerCfg := &services.ProviderConfig{
		Config: cfg,
		Logger: logger,
	}

	if cfg.Persistence == config.ModeLive {
		switch cfg.StoreBackend {
		case config.BackendRedis:
			opts, err := redis.ParseURL(cfg.RedisURL)
			if err != nil {
				logger.Fatal("invalid REDIS_URL", zap.Error(err))
			}
			client := redis.NewClient(opts)
			defer func() { _ = client.Close() }()
			providerCfg.RedisClient = client
		case config.BackendFirestore:
			client, err := campaigns.NewFirestoreClient(ctx, cfg.FirestoreProjectID)
			if err != nil {
				logger.Fatal("failed to connect to firestore", zap.Error(err))
			}
			defer func() { _ = client.Close() }()
			providerCfg.FirestoreClient = client
		}
	}

	if cfg.TestMode == config.TestModeCapture {
		transcript, err := capture.OpenTranscript(cfg.CaptureDir)
		if err != nil {
			logger.Fatal("failed to open capture transcript", zap.Error(err))
		}
		defer func() { _ = transcript.Close() }()
		providerCfg.CaptureWriter = transcript
		logger.Info("capture mode enabled", zap.String("transcript", transcript.Name()))
	}

	provider, err := services.NewProvider(ctx, providerCfg)
	if err != nil {
		logger.Fatal("failed to assemble services", zap.Error(err))
	}

	engine := api.NewRouter(&api.RouterConfig{
		Handler: api.NewHandler(&api.HandlerConfig{
			StoryService: provider.StoryService,
			Logger:       logger.Named("api"),
		}),
		Logger: logger.Named("http"),
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", zap.Error(err))
		os.Exit(1)
	}
}
