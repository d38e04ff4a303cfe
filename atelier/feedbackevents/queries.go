package feedbackevents

const (
	queryCreateTable = `
		CREATE TABLE IF NOT EXISTS feedback_events (
			id BIGSERIAL PRIMARY KEY,
			generation_id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			feedback_type TEXT NOT NULL,
			reward DOUBLE PRECISION NOT NULL,
			time_viewed_seconds DOUBLE PRECISION NOT NULL DEFAULT 0,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			UNIQUE (generation_id, feedback_type)
		);
		CREATE INDEX IF NOT EXISTS idx_feedback_events_user_id ON feedback_events(user_id);
	`

	// client retries of the same reaction are absorbed by the unique
	// constraint; repeat submissions are not a signal
	queryInsert = `
		INSERT INTO feedback_events (
			generation_id, user_id, feedback_type, reward, time_viewed_seconds
		)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (generation_id, feedback_type) DO NOTHING
		RETURNING id, created_at
	`

	// compensation path: releases the dedup key when score application
	// fails after the insert, so a client retry can run the full pass again
	queryDelete = `
		DELETE FROM feedback_events
		WHERE generation_id = $1 AND feedback_type = $2
	`

	queryListByGeneration = `
		SELECT id, generation_id, user_id, feedback_type, reward, time_viewed_seconds, created_at
		FROM feedback_events
		WHERE generation_id = $1
		ORDER BY created_at ASC
	`
)
