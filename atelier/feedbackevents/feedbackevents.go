// Package feedbackevents keeps the append-only log of user reactions and
// deduplicates repeat submissions per (generation, feedback type).
package feedbackevents

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// creates the required tables if they don't exist
func (r *Repository) Initialize(ctx context.Context) error {
	_, err := r.db.Exec(ctx, queryCreateTable)
	return err
}

// Insert appends the event and reports whether it was new. A false return
// means the same (generation, feedback type) pair was already recorded and
// the caller must not re-apply its score updates.
func (r *Repository) Insert(ctx context.Context, e *Event) (bool, error) {
	err := r.db.QueryRow(ctx, queryInsert,
		e.GenerationID,
		e.UserID,
		e.FeedbackType,
		e.Reward,
		e.TimeViewedSeconds,
	).Scan(&e.ID, &e.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil // duplicate, absorbed by the unique constraint
	}

	if err != nil {
		return false, fmt.Errorf("failed to insert feedback event: %w", err)
	}

	return true, nil
}

// Delete removes one event row, releasing its (generation, feedback type)
// dedup key
func (r *Repository) Delete(ctx context.Context, generationID, feedbackType string) error {
	_, err := r.db.Exec(ctx, queryDelete, generationID, feedbackType)
	if err != nil {
		return fmt.Errorf("failed to delete feedback event: %w", err)
	}

	return nil
}

func (r *Repository) ListByGeneration(ctx context.Context, generationID string) ([]Event, error) {
	rows, err := r.db.Query(ctx, queryListByGeneration, generationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback events: %w", err)
	}

	defer rows.Close()
	var events []Event

	for rows.Next() {
		var e Event

		err := rows.Scan(
			&e.ID,
			&e.GenerationID,
			&e.UserID,
			&e.FeedbackType,
			&e.Reward,
			&e.TimeViewedSeconds,
			&e.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan feedback event: %w", err)
		}

		events = append(events, e)
	}

	return events, rows.Err()
}
