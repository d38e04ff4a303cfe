package profiles

const (
	queryCreateTable = `
		CREATE TABLE IF NOT EXISTS style_profiles (
			id BIGSERIAL PRIMARY KEY,
			user_id TEXT NOT NULL,
			version INTEGER NOT NULL,
			clusters JSONB NOT NULL DEFAULT '[]',
			dominant_style TEXT NOT NULL DEFAULT '',
			signature_elements JSONB NOT NULL DEFAULT '{}',
			confidence DOUBLE PRECISION NOT NULL DEFAULT 0,
			images_analyzed INTEGER NOT NULL DEFAULT 0,
			statistics JSONB NOT NULL DEFAULT '{}',
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			UNIQUE (user_id, version)
		);
		CREATE INDEX IF NOT EXISTS idx_style_profiles_user_id ON style_profiles(user_id);
	`

	// the version subquery and the unique constraint together make version
	// assignment safe under the rare concurrent re-analysis
	querySaveVersion = `
		INSERT INTO style_profiles (
			user_id, version, clusters, dominant_style, signature_elements,
			confidence, images_analyzed, statistics
		)
		VALUES (
			$1,
			(SELECT COALESCE(MAX(version), 0) + 1 FROM style_profiles WHERE user_id = $1),
			$2, $3, $4, $5, $6, $7
		)
		RETURNING version, created_at
	`

	queryLatest = `
		SELECT user_id, version, clusters, dominant_style, signature_elements,
		       confidence, images_analyzed, statistics, created_at
		FROM style_profiles
		WHERE user_id = $1
		ORDER BY version DESC
		LIMIT 1
	`

	queryByVersion = `
		SELECT user_id, version, clusters, dominant_style, signature_elements,
		       confidence, images_analyzed, statistics, created_at
		FROM style_profiles
		WHERE user_id = $1 AND version = $2
	`
)
