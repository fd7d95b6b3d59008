package config

import "time"

// holds all server configuration loaded from the environment
type Config struct {
	DatabaseURL     string
	JWTSecret       string
	NarratorURL     string
	NarratorTimeout time.Duration
	Environment     string
	Port            string
}
