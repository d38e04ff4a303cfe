// Package portfolio persists per-image garment analysis records, including
// the style embeddings used for similarity lookups.
package portfolio

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"github.com/atelier-ai/server/internal/vlt"
)

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// creates the vector extension and required tables if they don't exist
func (r *Repository) Initialize(ctx context.Context) error {
	_, err := r.db.Exec(ctx, queryCreateTable)
	return err
}

// InsertRecords stores a batch of analysis records for the user. Records
// without embeddings are stored with a NULL vector and simply excluded from
// similarity lookups.
func (r *Repository) InsertRecords(ctx context.Context, userID string, specs []vlt.Spec) error {
	batch := &pgx.Batch{}

	for _, spec := range specs {
		var embedding interface{}
		if len(spec.Embedding) > 0 {
			embedding = pgvector.NewVector(spec.Embedding)
		}

		batch.Queue(queryInsert, userID, spec.ImageID, analysisJSON(spec), embedding)
	}

	results := r.db.SendBatch(ctx, batch)
	defer results.Close()

	for range specs {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to insert portfolio record: %w", err)
		}
	}

	return nil
}

// ListByUser returns the user's analysis records in upload order
func (r *Repository) ListByUser(ctx context.Context, userID string) ([]vlt.Spec, error) {
	rows, err := r.db.Query(ctx, queryListByUser, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list portfolio records: %w", err)
	}

	defer rows.Close()
	var specs []vlt.Spec

	for rows.Next() {
		var (
			rec      Record
			analysis analysisJSON
		)

		err := rows.Scan(&rec.ID, &rec.UserID, &rec.ImageID, &analysis, &rec.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan portfolio record: %w", err)
		}

		specs = append(specs, vlt.Spec(analysis))
	}

	return specs, rows.Err()
}

// Similar returns the user's nearest portfolio images by embedding distance
func (r *Repository) Similar(ctx context.Context, userID string, embedding []float32, limit int) ([]SimilarImage, error) {
	rows, err := r.db.Query(ctx, querySimilar, userID, pgvector.NewVector(embedding), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query similar images: %w", err)
	}

	defer rows.Close()
	var matches []SimilarImage

	for rows.Next() {
		var (
			m        SimilarImage
			analysis analysisJSON
		)

		err := rows.Scan(&m.ImageID, &m.UserID, &analysis, &m.Distance)
		if err != nil {
			return nil, fmt.Errorf("failed to scan similar image: %w", err)
		}

		m.Analysis = vlt.Spec(analysis)
		matches = append(matches, m)
	}

	return matches, rows.Err()
}
