package messages

import (
	"github.com/gin-gonic/gin"

	"codeberg.org/eldoria/server/internal/auth"
)

func RegisterRoutes(router *gin.RouterGroup, turnStore TurnLister) {
	router.GET("/messages", auth.AuthMiddleware(), GetMessagesHandler(turnStore))
}
