package main

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atelier-ai/server/atelier/feedbackevents"
	"github.com/atelier-ai/server/atelier/generations"
	"github.com/atelier-ai/server/atelier/portfolio"
	"github.com/atelier-ai/server/atelier/profiles"
	"github.com/atelier-ai/server/internal/config"
	"github.com/atelier-ai/server/internal/feedback"
	"github.com/atelier-ai/server/internal/pipeline"
	"github.com/atelier-ai/server/internal/promptgen"
	"github.com/atelier-ai/server/internal/render"
	"github.com/atelier-ai/server/internal/styleprofile"
	"github.com/atelier-ai/server/internal/tokenscore"
)

// holds all dependencies and state for the API server
type Server struct {
	db       *pgxpool.Pool
	config   *config.Config
	repos    *Repositories
	scores   tokenscore.Store
	services *Services
	router   *gin.Engine
}

// holds the persistence layer
type Repositories struct {
	Portfolio   *portfolio.Repository
	Profiles    *profiles.Repository
	Generations *generations.Repository
	Feedback    *feedbackevents.Repository
}

// holds the domain services built on top of the repositories
type Services struct {
	Profiler     *styleprofile.Profiler
	Assembler    *promptgen.Assembler
	Processor    *feedback.Processor
	Renderer     render.Renderer
	Orchestrator *pipeline.Orchestrator
	Batches      *pipeline.BatchRunner
}
