package users

const (
	queryCreateUser = `
		INSERT INTO users (username, password_hash, summary)
		VALUES ($1, $2, '')
		RETURNING id, username, created_at
	`

	querySeedOpeningScene = `
		INSERT INTO turns (user_id, message, role)
		VALUES ($1, $2, 'ai')
	`

	queryFindByUsername = `
		SELECT id, username, password_hash, COALESCE(summary, ''), created_at
		FROM users
		WHERE username = $1
	`

	queryFindByID = `
		SELECT id, username, COALESCE(summary, ''), created_at
		FROM users
		WHERE id = $1
	`
)
