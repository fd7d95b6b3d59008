package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"codeberg.org/eldoria/server/eldoria/users"
	"codeberg.org/eldoria/server/internal/auth"
	"codeberg.org/eldoria/server/internal/errors"
)

// registers a new adventurer. The opening scene is seeded as their first
// turn so the adventure has context before the first action.
func SignupHandler(userStore UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SignupRequest

		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			errors.InternalError(c, "failed to process password", err)
			return
		}

		user, err := userStore.Create(c.Request.Context(), req.Username, string(hash))
		if err != nil {
			if err == users.ErrUsernameTaken {
				errors.Conflict(c, "username already taken")
				return
			}

			errors.InternalError(c, "failed to create user", err)
			return
		}

		c.JSON(http.StatusOK, SignupResponse{UserID: user.ID})
	}
}

// exchanges a username and password for a signed token
func SigninHandler(userStore UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SigninRequest

		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		user, err := userStore.FindByUsername(c.Request.Context(), req.Username)
		if err != nil {
			// same response as a wrong password; do not reveal which failed
			errors.Unauthorized(c, "invalid credentials")
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
			errors.Unauthorized(c, "invalid credentials")
			return
		}

		token, err := auth.GenerateJWT(user.ID, user.Username)
		if err != nil {
			errors.InternalError(c, "failed to generate token", err)
			return
		}

		c.JSON(http.StatusOK, SigninResponse{Token: token})
	}
}
