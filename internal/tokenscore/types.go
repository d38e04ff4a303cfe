// Package tokenscore stores per-user desirability scores for prompt tokens.
// Scores are learned online: each feedback event blends a reward into the
// stored score via an exponential moving average. Updates must be atomic per
// (user, token) pair so concurrent feedback events cannot lose writes.
package tokenscore

import (
	"context"
	"time"
)

const (
	// EMA blend factor
	Alpha = 0.1

	// score assigned to a token the first time it is observed
	Baseline = 0.5

	// delta multiplier for tokens surfaced through exploration
	DiscoveryBonus = 1.5

	// multiplier for ordinary (exploited) tokens
	NoBonus = 1.0
)

// Score is the learned desirability of one token for one user
type Score struct {
	UserID           string    `json:"user_id"`
	Token            string    `json:"token"`
	Score            float64   `json:"score"`
	ObservationCount int       `json:"observation_count"`
	LastUpdatedAt    time.Time `json:"last_updated_at"`
}

// Store is the persistence contract for token scores. Apply must perform the
// read-modify-write atomically per (user, token).
type Store interface {
	// returns every score recorded for the user
	Scores(ctx context.Context, userID string) ([]Score, error)

	// blends reward into the token's score via the EMA and returns the
	// updated row; creates the token at the baseline when first seen
	Apply(ctx context.Context, userID, token string, reward, multiplier float64) (Score, error)

	Close() error
}

// blends a reward into an existing score and clamps the result to [0, 1]
func blend(old, reward, multiplier float64) float64 {
	next := old + Alpha*multiplier*(reward-old)

	if next > 1 {
		return 1
	}

	if next < 0 {
		return 0
	}

	return next
}
