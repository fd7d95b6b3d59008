package auth

import (
	"context"

	"codeberg.org/eldoria/server/eldoria/users"
)

type SignupRequest struct {
	Username string `json:"username" binding:"required,min=3,max=20"`
	Password string `json:"password" binding:"required,min=8"`
}

type SignupResponse struct {
	UserID int64 `json:"user_id"`
}

type SigninRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type SigninResponse struct {
	Token string `json:"token"`
}

// the user persistence surface the handlers need; implemented by
// users.Repository, faked in tests
type UserStore interface {
	Create(ctx context.Context, username, passwordHash string) (*users.User, error)
	FindByUsername(ctx context.Context, username string) (*users.User, error)
}
