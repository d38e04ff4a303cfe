package feedbackevents

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	db *pgxpool.Pool
}

// Event is one row of the append-only feedback log
type Event struct {
	ID                int64     `json:"id"`
	GenerationID      string    `json:"generation_id"`
	UserID            string    `json:"user_id"`
	FeedbackType      string    `json:"feedback_type"`
	Reward            float64   `json:"reward"`
	TimeViewedSeconds float64   `json:"time_viewed_seconds,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}
