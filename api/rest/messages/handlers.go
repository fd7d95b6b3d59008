package messages

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"codeberg.org/eldoria/server/eldoria/turns"
	"codeberg.org/eldoria/server/internal/auth"
	"codeberg.org/eldoria/server/internal/errors"
)

// returns the authenticated user's transcript. mode=all returns every
// turn in ascending append order; anything else returns only the single
// most recent turn, which is enough to resume a session without replay.
func GetMessagesHandler(turnStore TurnLister) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		mode := turns.ListModeLatest
		if c.Query("mode") == turns.ListModeAll {
			mode = turns.ListModeAll
		}

		turnRows, err := turnStore.ListTurns(c.Request.Context(), userID, mode)
		if err != nil {
			errors.InternalError(c, "failed to fetch messages", err)
			return
		}

		if turnRows == nil {
			turnRows = []turns.Turn{}
		}

		c.JSON(http.StatusOK, MessagesResponse{Messages: turnRows})
	}
}
