package auth

import (
	"github.com/gin-gonic/gin"
	limiter "github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	memorystore "github.com/ulule/limiter/v3/drivers/store/memory"

	"codeberg.org/eldoria/server/internal/logger"
)

// credential endpoints are brute-force targets; cap attempts per IP
const authRateLimit = "10-M"

func RegisterRoutes(router *gin.RouterGroup, userStore UserStore) {
	rate, err := limiter.NewRateFromFormatted(authRateLimit)
	if err != nil {
		logger.Fatal("invalid auth rate limit", "limit", authRateLimit, "error", err)
	}

	rateMiddleware := mgin.NewMiddleware(limiter.New(memorystore.NewStore(), rate))

	group := router.Group("/auth")
	group.Use(rateMiddleware)

	{
		group.POST("/signup", SignupHandler(userStore))
		group.POST("/signin", SigninHandler(userStore))
	}
}
