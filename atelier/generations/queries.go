package generations

const (
	queryCreateTable = `
		CREATE TABLE IF NOT EXISTS generations (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			template_id TEXT NOT NULL,
			main_prompt TEXT NOT NULL,
			negative_prompt TEXT NOT NULL DEFAULT '',
			explore_mode BOOLEAN NOT NULL DEFAULT FALSE,
			segments JSONB NOT NULL DEFAULT '{}',
			image_url TEXT NOT NULL DEFAULT '',
			provider TEXT NOT NULL DEFAULT '',
			model TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_generations_user_id ON generations(user_id);
	`

	queryInsert = `
		INSERT INTO generations (
			id, user_id, template_id, main_prompt, negative_prompt,
			explore_mode, segments, image_url, provider, model
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at
	`

	queryGet = `
		SELECT id, user_id, template_id, main_prompt, negative_prompt,
		       explore_mode, segments, image_url, provider, model, created_at
		FROM generations
		WHERE id = $1 AND user_id = $2
	`

	queryList = `
		SELECT id, user_id, template_id, main_prompt, negative_prompt,
		       explore_mode, segments, image_url, provider, model, created_at
		FROM generations
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
)
