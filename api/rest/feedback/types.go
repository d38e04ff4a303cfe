package feedback

import (
	"github.com/atelier-ai/server/atelier/feedbackevents"
	fb "github.com/atelier-ai/server/internal/feedback"
)

// Request is one feedback submission
type Request struct {
	GenerationID      string  `json:"generation_id" binding:"required"`
	FeedbackType      string  `json:"feedback_type" binding:"required"`
	TimeViewedSeconds float64 `json:"time_viewed_seconds,omitempty" binding:"omitempty,min=0"`
}

// Response reports what the event did to the caller's token scores
type Response struct {
	Accepted  bool       `json:"accepted"`
	Duplicate bool       `json:"duplicate,omitempty"`
	Deltas    []fb.Delta `json:"deltas,omitempty"`
}

// ListResponse is the recorded reactions for one generation
type ListResponse struct {
	Events []feedbackevents.Event `json:"events"`
}
