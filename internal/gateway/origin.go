package gateway

import (
	"net/http"
	"os"
	"slices"
	"strings"

	"codeberg.org/eldoria/server/internal/logger"
)

func allowedOrigins() []string {
	if envOrigins := os.Getenv("ALLOWED_ORIGINS"); envOrigins != "" {
		origins := strings.Split(envOrigins, ",")

		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}

		return origins
	}

	return []string{}
}

// validates the Origin header of an upgrade request.
// Development allows everything; production requires ALLOWED_ORIGINS.
func CheckOrigin(r *http.Request) bool {
	if os.Getenv("ENVIRONMENT") != "production" {
		return true
	}

	origin := r.Header.Get("Origin")
	if origin == "" {
		logger.Warn("websocket connection with no origin header")
		return false
	}

	allowed := allowedOrigins()

	if len(allowed) == 0 {
		logger.Warn("websocket origin rejected - ALLOWED_ORIGINS not configured",
			"origin", origin,
		)
		return false
	}

	if slices.Contains(allowed, origin) {
		return true
	}

	logger.Warn("websocket origin rejected - not in allowed origins",
		"origin", origin,
	)

	return false
}
