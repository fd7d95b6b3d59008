package websocket

import (
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"codeberg.org/eldoria/server/internal/auth"
	"codeberg.org/eldoria/server/internal/errors"
	"codeberg.org/eldoria/server/internal/gateway"
	"codeberg.org/eldoria/server/internal/logger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     gateway.CheckOrigin,
}

// handles adventure WebSocket connections. The credential travels as a
// query parameter; an invalid or missing token refuses the connection
// before any session state exists.
func AdventureHandler(gw *gateway.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		var params ConnectParams
		if err := c.ShouldBindQuery(&params); err != nil {
			errors.BadRequest(c, "invalid parameters", err)
			return
		}

		if params.Token == "" {
			errors.Unauthorized(c, "token required")
			return
		}

		claims, err := auth.ValidateJWT(params.Token)
		if err != nil {
			errors.Unauthorized(c, "invalid or expired token")
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.ErrorErr(err, "failed to upgrade connection",
				"user_id", claims.UserID,
				"ip", c.ClientIP(),
			)

			return
		}

		gw.Accept(claims.UserID, conn)

		logger.Info("adventure connection established",
			"user_id", claims.UserID,
			"username", claims.Username,
			"ip", c.ClientIP(),
		)
	}
}
