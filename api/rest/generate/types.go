package generate

import (
	"github.com/atelier-ai/server/atelier/generations"
	"github.com/atelier-ai/server/internal/pipeline"
	"github.com/atelier-ai/server/internal/vlt"
)

// Request represents the request body for image generation
type Request struct {
	Spec          vlt.Spec `json:"spec" binding:"required"`
	ExploreMode   *bool    `json:"explore_mode,omitempty"`
	UserModifiers []string `json:"user_modifiers,omitempty" binding:"max=10,dive,max=200"`
	TemplateID    string   `json:"template_id,omitempty"`
	Width         int      `json:"width,omitempty" binding:"omitempty,min=256,max=2048"`
	Height        int      `json:"height,omitempty" binding:"omitempty,min=256,max=2048"`
}

// Response returns the persisted generation, including the segment breakdown
// clients render to distinguish learned from experimental prompt content
type Response struct {
	Generation *generations.Record `json:"generation"`
}

// ListResponse is one page of the caller's generation history
type ListResponse struct {
	Generations []generations.Record `json:"generations"`
	Limit       int                  `json:"limit"`
	Offset      int                  `json:"offset"`
}

// BatchRequest submits several generation requests as one background batch
type BatchRequest struct {
	Items []Request `json:"items" binding:"required,min=1,max=10,dive"`
}

// BatchResponse acknowledges a submitted batch; clients poll the status
// endpoint with the returned batch id
type BatchResponse struct {
	Batch pipeline.Batch `json:"batch"`
}

// BatchStatusResponse reports batch progress alongside the counters
type BatchStatusResponse struct {
	Batch    pipeline.Batch `json:"batch"`
	Progress float64        `json:"progress"`
}
