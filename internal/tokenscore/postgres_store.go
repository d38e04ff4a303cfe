package tokenscore

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	createTableSQL = `
		CREATE TABLE IF NOT EXISTS token_scores (
			user_id TEXT NOT NULL,
			token TEXT NOT NULL,
			score DOUBLE PRECISION NOT NULL,
			observation_count INTEGER NOT NULL DEFAULT 0,
			last_updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			PRIMARY KEY (user_id, token)
		);
		CREATE INDEX IF NOT EXISTS idx_token_scores_user_id ON token_scores(user_id);
	`

	// the EMA blend runs inside the statement so concurrent feedback events
	// on the same (user, token) row cannot lose updates
	applySQL = `
		INSERT INTO token_scores (user_id, token, score, observation_count, last_updated_at)
		VALUES ($1, $2, LEAST(1.0, GREATEST(0.0, $3 + $4 * $5 * ($6 - $3))), 1, NOW())
		ON CONFLICT (user_id, token) DO UPDATE SET
			score = LEAST(1.0, GREATEST(0.0,
				token_scores.score + $4 * $5 * ($6 - token_scores.score))),
			observation_count = token_scores.observation_count + 1,
			last_updated_at = NOW()
		RETURNING user_id, token, score, observation_count, last_updated_at
	`

	scoresSQL = `
		SELECT user_id, token, score, observation_count, last_updated_at
		FROM token_scores
		WHERE user_id = $1
	`
)

// PostgresStore implements Store using PostgreSQL
type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// creates the required tables if they don't exist
func (s *PostgresStore) Initialize(ctx context.Context) error {
	_, err := s.db.Exec(ctx, createTableSQL)
	return err
}

func (s *PostgresStore) Scores(ctx context.Context, userID string) ([]Score, error) {
	rows, err := s.db.Query(ctx, scoresSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load token scores: %w", err)
	}

	defer rows.Close()
	var scores []Score

	for rows.Next() {
		var sc Score

		err := rows.Scan(&sc.UserID, &sc.Token, &sc.Score, &sc.ObservationCount, &sc.LastUpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan token score: %w", err)
		}

		scores = append(scores, sc)
	}

	return scores, rows.Err()
}

func (s *PostgresStore) Apply(ctx context.Context, userID, token string, reward, multiplier float64) (Score, error) {
	var sc Score

	err := s.db.QueryRow(ctx, applySQL,
		userID,
		token,
		Baseline,
		Alpha,
		multiplier,
		reward,
	).Scan(&sc.UserID, &sc.Token, &sc.Score, &sc.ObservationCount, &sc.LastUpdatedAt)

	if err != nil {
		return Score{}, fmt.Errorf("failed to apply token score update: %w", err)
	}

	return sc, nil
}

// the pool is owned by the caller
func (s *PostgresStore) Close() error {
	return nil
}
