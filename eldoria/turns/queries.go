package turns

const (
	queryAppendTurn = `
		INSERT INTO turns (user_id, message, role)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	queryGetSummary = `
		SELECT COALESCE(summary, '')
		FROM users
		WHERE id = $1
	`

	querySetSummary = `
		UPDATE users
		SET summary = $1
		WHERE id = $2
	`

	queryListAllTurns = `
		SELECT id, user_id, message, role, created_at
		FROM turns
		WHERE user_id = $1
		ORDER BY id ASC
	`

	queryListLatestTurn = `
		SELECT id, user_id, message, role, created_at
		FROM turns
		WHERE user_id = $1
		ORDER BY id DESC
		LIMIT 1
	`
)
