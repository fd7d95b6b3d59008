package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"codeberg.org/eldoria/server/eldoria/users"
	"codeberg.org/eldoria/server/internal/auth"
)

// creates (or reuses) a test adventurer and prints a JWT for manual testing
func main() {
	// load environment
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	dbConnString := os.Getenv("DATABASE_URL")
	if dbConnString == "" {
		log.Fatal("DATABASE_URL not set")
	}

	dbPool, err := pgxpool.New(context.Background(), dbConnString)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbPool.Close()

	ctx := context.Background()
	repo := users.NewRepository(dbPool)

	testUsername := "test-adventurer"
	testPassword := "test-password-123"

	user, err := repo.FindByUsername(ctx, testUsername)
	if err != nil {
		// create the test user, opening scene included
		hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}

		user, err = repo.Create(ctx, testUsername, string(hash))
		if err != nil {
			log.Fatalf("Failed to create test user: %v", err)
		}

		fmt.Printf("✅ Created test user: %s (ID: %d)\n", testUsername, user.ID)
	} else {
		fmt.Printf("✅ Using existing test user (ID: %d)\n", user.ID)
	}

	token, err := auth.GenerateJWT(user.ID, user.Username)
	if err != nil {
		log.Fatalf("Failed to generate JWT: %v", err)
	}

	fmt.Printf("\n🔑 Test JWT Token:\n%s\n\n", token)
	fmt.Printf("Export this token for testing:\nexport TEST_TOKEN=\"%s\"\n", token)
}
