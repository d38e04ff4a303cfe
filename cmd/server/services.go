package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/atelier-ai/server/internal/config"
	"github.com/atelier-ai/server/internal/feedback"
	"github.com/atelier-ai/server/internal/pipeline"
	"github.com/atelier-ai/server/internal/promptgen"
	"github.com/atelier-ai/server/internal/render"
	"github.com/atelier-ai/server/internal/styleprofile"
	"github.com/atelier-ai/server/internal/tokenscore"
)

// NewTokenStore selects the token score backend. Postgres is the default;
// Redis suits deployments where feedback volume outgrows row updates.
func NewTokenStore(ctx context.Context, cfg *config.Config, db *pgxpool.Pool) (tokenscore.Store, error) {
	switch os.Getenv("TOKEN_STORE") {
	case "redis":
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse redis url: %w", err)
		}

		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("failed to ping redis: %w", err)
		}

		return tokenscore.NewRedisStore(client), nil
	case "memory":
		return tokenscore.NewMemoryStore(), nil
	default:
		store := tokenscore.NewPostgresStore(db)
		if err := store.Initialize(ctx); err != nil {
			return nil, err
		}

		return store, nil
	}
}

// creates and configures all domain services
func InitializeServices(cfg *config.Config, repos *Repositories, scores tokenscore.Store) (*Services, error) {
	// provider, key, and model all come from the environment the renderer
	// package owns; cfg has already guaranteed RENDER_API_KEY is set
	renderer, err := render.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	profiler := styleprofile.New(repos.Profiles)
	assembler := promptgen.New(scores)
	processor := feedback.NewProcessor(scores)
	orchestrator := pipeline.NewOrchestrator(profiler, assembler, renderer, repos.Generations)

	return &Services{
		Profiler:     profiler,
		Assembler:    assembler,
		Processor:    processor,
		Renderer:     renderer,
		Orchestrator: orchestrator,
		Batches:      pipeline.NewBatchRunner(orchestrator),
	}, nil
}
