// Package services wires repositories and the narrator into the story
// service according to the resolved mode decisions. Mode selection itself
// lives in config; this is the only place the decisions are acted on.
package services

import (
	"context"
	"io"

	"cloud.google.com/go/firestore"
	"github.com/fableforge/fableforge/internal/capture"
	"github.com/fableforge/fableforge/internal/config"
	apperrors "github.com/fableforge/fableforge/internal/errors"
	"github.com/fableforge/fableforge/internal/guard"
	"github.com/fableforge/fableforge/internal/narrator"
	"github.com/fableforge/fableforge/internal/repositories/campaigns"
	"github.com/fableforge/fableforge/internal/services/story"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ProviderConfig holds everything needed to assemble the service graph.
// Clients are injected rather than constructed here so the caller owns
// their lifecycle, and so tests can pass fakes.
type ProviderConfig struct {
	Config *config.Config

	// RedisClient is required when persistence is live with the redis
	// backend.
	RedisClient redis.UniversalClient

	// FirestoreClient is required when persistence is live with the
	// firestore backend.
	FirestoreClient *firestore.Client

	// CaptureWriter receives JSONL transcripts in capture mode.
	CaptureWriter io.Writer

	Logger *zap.Logger
}

// Provider holds the assembled services.
type Provider struct {
	Repository   campaigns.Repository
	Narrator     narrator.Service
	StoryService story.Service
}

// NewProvider assembles the service graph for the resolved modes. The two
// bindings are independent: a mocked narrator can sit on top of a live
// store and vice versa.
func NewProvider(ctx context.Context, cfg *ProviderConfig) (*Provider, error) {
	if cfg == nil || cfg.Config == nil {
		return nil, apperrors.InvalidArgument("config is required")
	}

	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	repo, err := buildRepository(cfg)
	if err != nil {
		return nil, err
	}

	narr, err := buildNarrator(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	storyService := story.NewService(&story.ServiceConfig{
		Repository: repo,
		Narrator:   narr,
		Logger:     log.Named("story"),
	})

	log.Info("services assembled",
		zap.String("persistence", string(cfg.Config.Persistence)),
		zap.String("generation", string(cfg.Config.Generation)),
		zap.String("test_mode", string(cfg.Config.TestMode)))

	return &Provider{
		Repository:   repo,
		Narrator:     narr,
		StoryService: storyService,
	}, nil
}

func buildRepository(cfg *ProviderConfig) (campaigns.Repository, error) {
	if cfg.Config.Persistence.Mocked() {
		return campaigns.NewInMemoryRepository(), nil
	}

	switch cfg.Config.StoreBackend {
	case config.BackendRedis:
		if cfg.RedisClient == nil {
			return nil, apperrors.InvalidArgument("redis client is required for live redis persistence")
		}
		return campaigns.NewRedis(cfg.RedisClient), nil
	case config.BackendFirestore:
		if cfg.FirestoreClient == nil {
			return nil, apperrors.InvalidArgument("firestore client is required for live firestore persistence")
		}
		return campaigns.NewFirestore(cfg.FirestoreClient), nil
	default:
		return nil, apperrors.InvalidArgumentf("unknown store backend %q", string(cfg.Config.StoreBackend))
	}
}

func buildNarrator(ctx context.Context, cfg *ProviderConfig, log *zap.Logger) (narrator.Service, error) {
	if cfg.Config.Generation.Mocked() {
		return narrator.NewMock(), nil
	}

	narr, err := narrator.NewGemini(ctx, &narrator.GeminiConfig{
		APIKey: cfg.Config.GeminiAPIKey,
		Model:  cfg.Config.GeminiModel,
	})
	if err != nil {
		return nil, err
	}

	// Live generation under a test mode gets the hard call cap. Capture
	// mode also hits the paid API, so it is capped the same way.
	switch cfg.Config.TestMode {
	case config.TestModeReal:
		return guard.NewLimitedNarrator(narr, cfg.Config.RealCallLimit), nil
	case config.TestModeCapture:
		if cfg.CaptureWriter == nil {
			return nil, apperrors.InvalidArgument("capture writer is required in capture mode")
		}
		limited := guard.NewLimitedNarrator(narr, cfg.Config.RealCallLimit)
		return capture.NewRecordingNarrator(limited, cfg.CaptureWriter, log.Named("capture")), nil
	default:
		return narr, nil
	}
}
