package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const defaultNarratorTimeout = 30 * time.Second

// loads configuration from environment variables
func LoadEnvironmentVariables() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		_ = err // not an error - production environments may not have a .env file
	}

	databaseURL := os.Getenv("DATABASE_URL")
	jwtSecret := os.Getenv("JWT_SECRET")
	narratorURL := os.Getenv("NARRATOR_URL")
	environment := os.Getenv("ENVIRONMENT")
	port := os.Getenv("PORT")

	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	if narratorURL == "" {
		return nil, fmt.Errorf("NARRATOR_URL environment variable is required")
	}

	if environment == "" {
		environment = "development"
	}

	if port == "" {
		port = "8080"
	}

	narratorTimeout := defaultNarratorTimeout

	if timeoutStr := os.Getenv("NARRATOR_TIMEOUT_SECONDS"); timeoutStr != "" {
		seconds, err := strconv.Atoi(timeoutStr)
		if err != nil || seconds <= 0 {
			return nil, fmt.Errorf("NARRATOR_TIMEOUT_SECONDS must be a positive integer")
		}

		narratorTimeout = time.Duration(seconds) * time.Second
	}

	return &Config{
		DatabaseURL:     databaseURL,
		JWTSecret:       jwtSecret,
		NarratorURL:     narratorURL,
		NarratorTimeout: narratorTimeout,
		Environment:     environment,
		Port:            port,
	}, nil
}
