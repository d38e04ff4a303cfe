package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgxvector "github.com/pgvector/pgvector-go/pgx"

	"github.com/atelier-ai/server/atelier/feedbackevents"
	"github.com/atelier-ai/server/atelier/generations"
	"github.com/atelier-ai/server/atelier/portfolio"
	"github.com/atelier-ai/server/atelier/profiles"
	"github.com/atelier-ai/server/internal/config"
)

// creates and configures a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	ctx := context.Background()

	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	// hosted poolers cap connections, keep the pool small
	poolConfig.MaxConns = 5
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = 30 * time.Minute
	poolConfig.MaxConnIdleTime = 5 * time.Minute
	poolConfig.HealthCheckPeriod = 1 * time.Minute

	// use simple protocol for PgBouncer compatibility: transaction-mode
	// pooling doesn't support prepared statements
	poolConfig.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol

	// register the pgvector codec for embedding columns
	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return pgxvector.RegisterTypes(ctx, conn)
	}

	db, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create database pool: %w", err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	repos := &Repositories{
		Portfolio:   portfolio.NewRepository(db),
		Profiles:    profiles.NewRepository(db),
		Generations: generations.NewRepository(db),
		Feedback:    feedbackevents.NewRepository(db),
	}

	if err := initializeSchema(ctx, repos); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	scores, err := NewTokenStore(ctx, cfg, db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize token store: %w", err)
	}

	services, err := InitializeServices(cfg, repos, scores)
	if err != nil {
		scores.Close() //nolint:errcheck,gosec // best-effort cleanup on init failure
		db.Close()
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	router := gin.Default()

	server := &Server{
		db:       db,
		config:   cfg,
		repos:    repos,
		scores:   scores,
		services: services,
		router:   router,
	}

	RegisterRoutes(router, server)

	return server, nil
}

func initializeSchema(ctx context.Context, repos *Repositories) error {
	if err := repos.Portfolio.Initialize(ctx); err != nil {
		return err
	}

	if err := repos.Profiles.Initialize(ctx); err != nil {
		return err
	}

	if err := repos.Generations.Initialize(ctx); err != nil {
		return err
	}

	return repos.Feedback.Initialize(ctx)
}
