package main

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"codeberg.org/eldoria/server/eldoria/turns"
	"codeberg.org/eldoria/server/eldoria/users"
	"codeberg.org/eldoria/server/internal/config"
	"codeberg.org/eldoria/server/internal/gateway"
	"codeberg.org/eldoria/server/internal/narrator"
)

// holds all dependencies and state for the API server
type Server struct {
	db       *pgxpool.Pool
	config   *config.Config
	userRepo *users.Repository
	turnRepo *turns.Repository
	narrator *narrator.Client
	gateway  *gateway.Gateway
	router   *gin.Engine
}
