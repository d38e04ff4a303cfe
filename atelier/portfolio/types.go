package portfolio

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atelier-ai/server/internal/vlt"
)

type Repository struct {
	db *pgxpool.Pool
}

// JSONB wrapper for the full analysis payload
type analysisJSON vlt.Spec

func (a analysisJSON) Value() (driver.Value, error) {
	bytes, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}

	return string(bytes), nil
}

func (a *analysisJSON) Scan(value interface{}) error {
	if value == nil {
		*a = analysisJSON{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// Record is one analyzed portfolio image
type Record struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	ImageID   string    `json:"image_id"`
	Analysis  vlt.Spec  `json:"analysis"`
	CreatedAt time.Time `json:"created_at"`
}

// SimilarImage is one nearest-neighbour match by style embedding
type SimilarImage struct {
	ImageID  string   `json:"image_id"`
	UserID   string   `json:"user_id"`
	Analysis vlt.Spec `json:"analysis"`
	Distance float64  `json:"distance"`
}
