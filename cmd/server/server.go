package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"codeberg.org/eldoria/server/eldoria/turns"
	"codeberg.org/eldoria/server/eldoria/users"
	"codeberg.org/eldoria/server/internal/config"
	"codeberg.org/eldoria/server/internal/gateway"
	"codeberg.org/eldoria/server/internal/narrator"
)

// creates and configures a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	ctx := context.Background()

	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	poolConfig.MaxConns = 10
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = 30 * time.Minute
	poolConfig.MaxConnIdleTime = 5 * time.Minute
	poolConfig.HealthCheckPeriod = 1 * time.Minute

	db, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create database pool: %w", err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	userRepo := users.NewRepository(db)
	turnRepo := turns.NewRepository(db)

	narratorClient := narrator.NewClient(cfg.NarratorURL, cfg.NarratorTimeout)

	gw := gateway.New(turnRepo, narratorClient, cfg.NarratorTimeout)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	server := &Server{
		db:       db,
		config:   cfg,
		userRepo: userRepo,
		turnRepo: turnRepo,
		narrator: narratorClient,
		gateway:  gw,
		router:   router,
	}

	RegisterRoutes(router, server)

	return server, nil
}
