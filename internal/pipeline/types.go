// Package pipeline drives one generation request through its stages:
// profile lookup, prompt assembly, rendering, persistence. Rendering is the
// only stage that leaves the process; it is also the only stage retried.
package pipeline

import (
	"context"
	"fmt"

	"github.com/atelier-ai/server/atelier/generations"
	"github.com/atelier-ai/server/internal/styleprofile"
	"github.com/atelier-ai/server/internal/vlt"
)

// Stage identifies where in the pipeline a request currently is, or where it
// failed
type Stage string

const (
	StageAwaitingProfile Stage = "awaiting_profile"
	StagePromptAssembled Stage = "prompt_assembled"
	StageRendering       Stage = "rendering"
	StagePersisted       Stage = "persisted"
	StageCompleted       Stage = "completed"
	StageFailed          Stage = "failed"
)

// StageError carries the stage at which a generation failed. Callers surface
// a generic failure; the stage stays in server logs for diagnosis.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("generation failed at %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Request is one inbound generation request
type Request struct {
	UserID        string
	Spec          *vlt.Spec
	ExploreMode   *bool
	UserModifiers []string
	TemplateID    string
	Width         int
	Height        int
}

// ProfileSource resolves a user's latest style profile; (nil, nil) means the
// user has no profile yet
type ProfileSource interface {
	GetProfile(ctx context.Context, userID string) (*styleprofile.Profile, error)
}

// RecordStore persists completed generation records
type RecordStore interface {
	Insert(ctx context.Context, rec *generations.Record) error
}
