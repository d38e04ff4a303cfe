package generations

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atelier-ai/server/internal/promptgen"
)

type Repository struct {
	db *pgxpool.Pool
}

// JSONB wrapper for the prompt's segment breakdown. The partition must
// survive storage verbatim: feedback scoring reads it back token for token.
type SegmentsJSON promptgen.Segments

func (s SegmentsJSON) Value() (driver.Value, error) {
	bytes, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}

	return string(bytes), nil
}

func (s *SegmentsJSON) Scan(value interface{}) error {
	if value == nil {
		*s = SegmentsJSON{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}

	return json.Unmarshal(bytes, s)
}

// Record is one persisted generation. Records are immutable once written.
type Record struct {
	ID             string             `json:"id"`
	UserID         string             `json:"user_id"`
	TemplateID     string             `json:"template_id"`
	MainPrompt     string             `json:"main_prompt"`
	NegativePrompt string             `json:"negative_prompt"`
	ExploreMode    bool               `json:"explore_mode"`
	Segments       promptgen.Segments `json:"segments"`
	ImageURL       string             `json:"image_url,omitempty"`
	Provider       string             `json:"provider"`
	Model          string             `json:"model"`
	CreatedAt      time.Time          `json:"created_at"`
}
