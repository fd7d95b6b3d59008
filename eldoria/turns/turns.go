package turns

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// creates a new turn repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// appends a turn for the user and returns its store-assigned ID
func (r *Repository) AppendTurn(ctx context.Context, userID int64, message, role string) (int64, error) {
	var id int64

	err := r.db.QueryRow(ctx, queryAppendTurn, userID, message, role).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to append turn: %w", err)
	}

	return id, nil
}

// returns the user's current rolling summary, empty if none exists yet
func (r *Repository) GetSummary(ctx context.Context, userID int64) (string, error) {
	var summary string

	err := r.db.QueryRow(ctx, queryGetSummary, userID).Scan(&summary)
	if err != nil {
		return "", fmt.Errorf("failed to read summary: %w", err)
	}

	return summary, nil
}

// overwrites the user's rolling summary
func (r *Repository) SetSummary(ctx context.Context, userID int64, summary string) error {
	tag, err := r.db.Exec(ctx, querySetSummary, summary, userID)
	if err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("no user row for id %d", userID)
	}

	return nil
}

// returns the user's turns. ListModeAll returns the full transcript in
// ascending append order; ListModeLatest returns only the single most
// recent turn irrespective of role.
func (r *Repository) ListTurns(ctx context.Context, userID int64, mode string) ([]Turn, error) {
	query := queryListLatestTurn
	if mode == ListModeAll {
		query = queryListAllTurns
	}

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list turns: %w", err)
	}

	defer rows.Close()

	turnRows, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Turn, error) {
		var t Turn
		err := row.Scan(&t.ID, &t.UserID, &t.Message, &t.Role, &t.CreatedAt)
		return t, err
	})

	if err != nil {
		return nil, fmt.Errorf("failed to scan turns: %w", err)
	}

	return turnRows, nil
}
