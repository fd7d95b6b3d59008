package users

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// represents a registered adventurer
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Summary      string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// provides access to user rows
type Repository struct {
	db *pgxpool.Pool
}
