package portfolio

import (
	"github.com/atelier-ai/server/atelier/portfolio"
	"github.com/atelier-ai/server/internal/styleprofile"
	"github.com/atelier-ai/server/internal/vlt"
)

// AnalyzeRequest carries a batch of per-image analysis records from the
// vision service
type AnalyzeRequest struct {
	Records []vlt.Spec `json:"records" binding:"required,min=1,max=500"`
}

// AnalyzeResponse returns the freshly built profile
type AnalyzeResponse struct {
	Profile *styleprofile.Profile `json:"profile"`
}

// ProfileResponse wraps the latest profile
type ProfileResponse struct {
	Profile *styleprofile.Profile `json:"profile"`
}

// SimilarRequest asks for the nearest portfolio images to a style embedding
type SimilarRequest struct {
	Embedding []float32 `json:"embedding" binding:"required,len=512"`
	Limit     int       `json:"limit,omitempty" binding:"omitempty,min=1,max=50"`
}

// SimilarResponse lists matches ordered by embedding distance
type SimilarResponse struct {
	Matches []portfolio.SimilarImage `json:"matches"`
}
