package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// represents JWT claims for an adventurer
type Claims struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}
