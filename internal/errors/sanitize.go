package errors

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// returns an error message safe to expose to clients.
// In production, database and infrastructure details are replaced with
// generic descriptions; in development the raw message passes through.
func Sanitize(err error) string {
	if err == nil {
		return ""
	}

	if os.Getenv("ENVIRONMENT") != "production" {
		return err.Error()
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return "database operation failed"
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return "resource not found"
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return "request timed out"
	}

	if errors.Is(err, context.Canceled) {
		return "request canceled"
	}

	// fallback to string matching for unknown error types
	msg := strings.ToLower(err.Error())

	switch {
	case strings.Contains(msg, "timeout") || strings.Contains(msg, "deadline"):
		return "request timed out"
	case strings.Contains(msg, "database") || strings.Contains(msg, "sql") ||
		strings.Contains(msg, "pgx"):
		return "database operation failed"
	case strings.Contains(msg, "connection") || strings.Contains(msg, "dial"):
		return "connection error occurred"
	case strings.Contains(msg, "not found") || strings.Contains(msg, "no rows"):
		return "resource not found"
	default:
		return "an error occurred"
	}
}
