package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/atelier-ai/server/atelier/generations"
	"github.com/atelier-ai/server/internal/logger"
	"github.com/atelier-ai/server/internal/promptgen"
	"github.com/atelier-ai/server/internal/render"
)

const (
	// total render attempts, including the first
	maxRenderAttempts = 3

	renderBackoffBase = 500 * time.Millisecond
)

type Orchestrator struct {
	profiles  ProfileSource
	assembler *promptgen.Assembler
	renderer  render.Renderer
	records   RecordStore
}

func NewOrchestrator(profiles ProfileSource, assembler *promptgen.Assembler, renderer render.Renderer, records RecordStore) *Orchestrator {
	return &Orchestrator{
		profiles:  profiles,
		assembler: assembler,
		renderer:  renderer,
		records:   records,
	}
}

// Generate runs one request end to end. The returned record id is only
// handed out after persistence succeeds, so feedback can never reference a
// generation that was not fully written.
func (o *Orchestrator) Generate(ctx context.Context, req Request) (*generations.Record, error) {
	log := logger.FromContext(ctx)

	profile, err := o.profiles.GetProfile(ctx, req.UserID)
	if err != nil {
		return nil, &StageError{Stage: StageAwaitingProfile, Err: err}
	}

	result, err := o.assembler.Generate(ctx, req.Spec, profile, promptgen.Options{
		UserID:        req.UserID,
		ExploreMode:   req.ExploreMode,
		UserModifiers: req.UserModifiers,
		TemplateID:    req.TemplateID,
	})
	if err != nil {
		return nil, &StageError{Stage: StagePromptAssembled, Err: err}
	}

	image, err := o.renderWithRetry(ctx, render.ImageRequest{
		MainPrompt:     result.MainPrompt,
		NegativePrompt: result.NegativePrompt,
		Width:          req.Width,
		Height:         req.Height,
	})
	if err != nil {
		return nil, &StageError{Stage: StageRendering, Err: err}
	}

	rec := &generations.Record{
		ID:             uuid.NewString(),
		UserID:         req.UserID,
		TemplateID:     result.TemplateID,
		MainPrompt:     result.MainPrompt,
		NegativePrompt: result.NegativePrompt,
		ExploreMode:    result.ExploreMode,
		Segments:       result.Segments,
		ImageURL:       image.URL,
		Provider:       string(image.Provider),
		Model:          image.Model,
	}

	if err := o.records.Insert(ctx, rec); err != nil {
		return nil, &StageError{Stage: StagePersisted, Err: err}
	}

	log.Info("generation completed",
		"user_id", req.UserID,
		"generation_id", rec.ID,
		"template_id", rec.TemplateID,
		"explore_mode", rec.ExploreMode,
	)

	return rec, nil
}

// retries the render call with backoff, but only for transient provider
// failures; local and terminal errors surface immediately
func (o *Orchestrator) renderWithRetry(ctx context.Context, req render.ImageRequest) (*render.ImageResult, error) {
	log := logger.FromContext(ctx)

	var lastErr error

	for attempt := 1; attempt <= maxRenderAttempts; attempt++ {
		image, err := o.renderer.Render(ctx, req)
		if err == nil {
			return image, nil
		}

		lastErr = err

		var provErr *render.ProviderError
		if !errors.As(err, &provErr) || !provErr.Temporary() {
			return nil, err
		}

		if attempt == maxRenderAttempts {
			break
		}

		log.Warn("render attempt failed, retrying",
			"attempt", attempt,
			"error", err,
		)

		backoff := renderBackoffBase * time.Duration(1<<(attempt-1))

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}

	return nil, lastErr
}
