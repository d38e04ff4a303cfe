// Package generations persists immutable generation records. A record only
// exists once persistence has succeeded, so feedback can never reference a
// generation that was not fully written.
package generations

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atelier-ai/server/internal/promptgen"
)

var ErrRecordNotFound = errors.New("generation record not found")

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// creates the required tables if they don't exist
func (r *Repository) Initialize(ctx context.Context) error {
	_, err := r.db.Exec(ctx, queryCreateTable)
	return err
}

func (r *Repository) Insert(ctx context.Context, rec *Record) error {
	err := r.db.QueryRow(ctx, queryInsert,
		rec.ID,
		rec.UserID,
		rec.TemplateID,
		rec.MainPrompt,
		rec.NegativePrompt,
		rec.ExploreMode,
		SegmentsJSON(rec.Segments),
		rec.ImageURL,
		rec.Provider,
		rec.Model,
	).Scan(&rec.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to insert generation record: %w", err)
	}

	return nil
}

func (r *Repository) Get(ctx context.Context, id, userID string) (*Record, error) {
	var (
		rec      Record
		segments SegmentsJSON
	)

	err := r.db.QueryRow(ctx, queryGet, id, userID).Scan(
		&rec.ID,
		&rec.UserID,
		&rec.TemplateID,
		&rec.MainPrompt,
		&rec.NegativePrompt,
		&rec.ExploreMode,
		&segments,
		&rec.ImageURL,
		&rec.Provider,
		&rec.Model,
		&rec.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrRecordNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to load generation record: %w", err)
	}

	rec.Segments = promptgen.Segments(segments)

	return &rec, nil
}

func (r *Repository) List(ctx context.Context, userID string, limit, offset int) ([]Record, error) {
	rows, err := r.db.Query(ctx, queryList, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list generation records: %w", err)
	}

	defer rows.Close()
	var records []Record

	for rows.Next() {
		var (
			rec      Record
			segments SegmentsJSON
		)

		err := rows.Scan(
			&rec.ID,
			&rec.UserID,
			&rec.TemplateID,
			&rec.MainPrompt,
			&rec.NegativePrompt,
			&rec.ExploreMode,
			&segments,
			&rec.ImageURL,
			&rec.Provider,
			&rec.Model,
			&rec.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan generation record: %w", err)
		}

		rec.Segments = promptgen.Segments(segments)
		records = append(records, rec)
	}

	return records, rows.Err()
}
