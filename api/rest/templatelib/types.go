package templatelib

import "github.com/atelier-ai/server/internal/templates"

// ListResponse returns the full template catalogue
type ListResponse struct {
	Templates []templates.Template `json:"templates"`
}
