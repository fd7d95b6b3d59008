package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrUsernameTaken = errors.New("username already taken")

// the fixed narrative every new adventurer wakes up to. Seeded as the
// first AI turn at signup so the first generation call has context.
const OpeningScene = "A chill wind howls through the desolate spires of Eldoria, a city now nothing more than a rain-slicked tomb. Above, the sky weeps a perpetual drizzle, mirroring the despair of its few remaining souls.Suddenly, a figure emerges from the gloom: Elara, the Whisperwind, her crimson cloak a lone splash of color against the gray. She stands before the city's gates, her hand on her dagger, her emerald eyes scanning for any sign of hope.From the city's depths, a guttural roar tears through the air. Lord Kaelen, the Shadowbinder, stalks forward, his obsidian armor a void of malevolent power. In his grasp, a helpless citizen struggles, a cruel trophy in Kaelen's dark parade.Elara tenses, her jaw set. This is a scene she knows well, but tonight is different. A new presence shimmers on the edge of her sight, a glimmer of light that defies the eternal gloom. The prophesied hero has arrived."

// unique_violation
const pgUniqueViolationCode = "23505"

// creates a new user repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// creates a new user with an empty rolling summary and seeds the opening
// scene as their first turn. Both writes happen in one transaction so a
// user never exists without an opening scene.
func (r *Repository) Create(ctx context.Context, username, passwordHash string) (*User, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	var user User

	err = tx.QueryRow(ctx, queryCreateUser, username, passwordHash).Scan(
		&user.ID,
		&user.Username,
		&user.CreatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolationCode {
			return nil, ErrUsernameTaken
		}

		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if _, err := tx.Exec(ctx, querySeedOpeningScene, user.ID, OpeningScene); err != nil {
		return nil, fmt.Errorf("failed to seed opening scene: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &user, nil
}

// finds a user by username, including the password hash for signin
func (r *Repository) FindByUsername(ctx context.Context, username string) (*User, error) {
	var user User

	err := r.db.QueryRow(ctx, queryFindByUsername, username).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.Summary,
		&user.CreatedAt,
	)

	if err != nil {
		return nil, err
	}

	return &user, nil
}

// finds a user by their ID
func (r *Repository) FindByID(ctx context.Context, userID int64) (*User, error) {
	var user User

	err := r.db.QueryRow(ctx, queryFindByID, userID).Scan(
		&user.ID,
		&user.Username,
		&user.Summary,
		&user.CreatedAt,
	)

	if err != nil {
		return nil, err
	}

	return &user, nil
}
