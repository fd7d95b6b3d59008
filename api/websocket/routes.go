package websocket

import (
	"github.com/gin-gonic/gin"

	"codeberg.org/eldoria/server/internal/gateway"
)

func RegisterRoutes(router *gin.RouterGroup, gw *gateway.Gateway) {
	router.GET("/ws", AdventureHandler(gw))
}
