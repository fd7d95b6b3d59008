package turns

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// turn roles
const (
	RolePlayer = "player"
	RoleAI     = "ai"
)

// list modes for the transcript query
const (
	ListModeAll    = "all"
	ListModeLatest = "latest"
)

// represents one persisted turn of a user's adventure.
// Ordering is defined by the store-assigned ID, not by timestamp.
type Turn struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Message   string    `json:"message"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// provides access to turn rows and the per-user rolling summary
type Repository struct {
	db *pgxpool.Pool
}
