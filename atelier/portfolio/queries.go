package portfolio

const (
	queryCreateTable = `
		CREATE EXTENSION IF NOT EXISTS vector;
		CREATE TABLE IF NOT EXISTS portfolio_images (
			id BIGSERIAL PRIMARY KEY,
			user_id TEXT NOT NULL,
			image_id TEXT NOT NULL,
			analysis JSONB NOT NULL DEFAULT '{}',
			embedding vector(512),
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			UNIQUE (user_id, image_id)
		);
		CREATE INDEX IF NOT EXISTS idx_portfolio_images_user_id ON portfolio_images(user_id);
	`

	// re-uploading the same image replaces its analysis
	queryInsert = `
		INSERT INTO portfolio_images (user_id, image_id, analysis, embedding)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, image_id) DO UPDATE SET
			analysis = EXCLUDED.analysis,
			embedding = EXCLUDED.embedding,
			created_at = NOW()
	`

	queryListByUser = `
		SELECT id, user_id, image_id, analysis, created_at
		FROM portfolio_images
		WHERE user_id = $1
		ORDER BY created_at ASC
	`

	querySimilar = `
		SELECT image_id, user_id, analysis, embedding <=> $2 AS distance
		FROM portfolio_images
		WHERE user_id = $1 AND embedding IS NOT NULL
		ORDER BY embedding <=> $2
		LIMIT $3
	`
)
