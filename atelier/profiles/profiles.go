// Package profiles persists versioned style profiles. Profiles are replaced
// wholesale on re-analysis; prior versions are never mutated.
package profiles

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atelier-ai/server/internal/styleprofile"
)

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// creates the required tables if they don't exist
func (r *Repository) Initialize(ctx context.Context) error {
	_, err := r.db.Exec(ctx, queryCreateTable)
	return err
}

// SaveVersion persists p as the next version for its user and returns the
// version assigned
func (r *Repository) SaveVersion(ctx context.Context, p *styleprofile.Profile) (int, error) {
	var version int

	err := r.db.QueryRow(ctx, querySaveVersion,
		p.UserID,
		ClusterList(p.Clusters),
		p.DominantStyle,
		signatureJSON(p.SignatureElements),
		p.Confidence,
		p.ImagesAnalyzed,
		statisticsJSON(p.Statistics),
	).Scan(&version, &p.CreatedAt)

	if err != nil {
		return 0, fmt.Errorf("failed to save profile version: %w", err)
	}

	p.Version = version

	return version, nil
}

// Latest returns the newest profile for the user, or (nil, nil) when the
// user has never been analyzed
func (r *Repository) Latest(ctx context.Context, userID string) (*styleprofile.Profile, error) {
	profile, err := r.scanProfile(r.db.QueryRow(ctx, queryLatest, userID))
	if err != nil {
		return nil, fmt.Errorf("failed to load latest profile: %w", err)
	}

	return profile, nil
}

// Version returns one historical profile version, or (nil, nil) when the
// user has no such version
func (r *Repository) Version(ctx context.Context, userID string, version int) (*styleprofile.Profile, error) {
	profile, err := r.scanProfile(r.db.QueryRow(ctx, queryByVersion, userID, version))
	if err != nil {
		return nil, fmt.Errorf("failed to load profile version %d: %w", version, err)
	}

	return profile, nil
}

func (r *Repository) scanProfile(row pgx.Row) (*styleprofile.Profile, error) {
	var (
		p          styleprofile.Profile
		clusters   ClusterList
		signature  signatureJSON
		statistics statisticsJSON
	)

	err := row.Scan(
		&p.UserID,
		&p.Version,
		&clusters,
		&p.DominantStyle,
		&signature,
		&p.Confidence,
		&p.ImagesAnalyzed,
		&statistics,
		&p.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	p.Clusters = clusters
	p.SignatureElements = styleprofile.SignatureElements(signature)
	p.Statistics = styleprofile.Statistics(statistics)

	return &p, nil
}
