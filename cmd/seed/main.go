package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/directoriodominicano/backend/internal/adapters/database"
	"github.com/directoriodominicano/backend/internal/domain/entities"
	"github.com/directoriodominicano/backend/internal/domain/repositories"
	"github.com/directoriodominicano/backend/internal/infrastructure/clients/postgres"
	"github.com/directoriodominicano/backend/pkg/config"
	apperrors "github.com/directoriodominicano/backend/pkg/errors"
)

// Seeds the demo data set: one owner account per sample business, a
// moderation account, and the sample businesses themselves. Safe to run
// repeatedly; existing rows are skipped.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize PostgreSQL client: %v", err)
	}
	defer pgClient.Close()

	password := os.Getenv("SEED_PASSWORD")
	if password == "" {
		password = "cambiame-ya"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cfg.Auth.BCryptCost)
	if err != nil {
		log.Fatalf("Failed to hash seed password: %v", err)
	}

	users := database.NewUserAdapter(pgClient)
	businesses := database.NewBusinessAdapter(pgClient)

	now := time.Now().UTC()
	created := 0

	admin := &entities.User{
		ID:           "admin",
		Email:        "admin@directoriodominicano.example",
		FullName:     "Administración",
		PasswordHash: string(hash),
		Role:         entities.RoleAdmin,
		City:         cfg.Directory.DefaultCity,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if seedUser(ctx, users, admin) {
		created++
	}

	for i, business := range entities.SampleBusinesses() {
		role := entities.RoleNegocioGratis
		if business.IsPremium {
			role = entities.RoleNegocioPremium
		}
		owner := &entities.User{
			ID:           business.OwnerID,
			Email:        fmt.Sprintf("owner%d@directoriodominicano.example", i+1),
			FullName:     business.Name,
			PasswordHash: string(hash),
			Role:         role,
			City:         business.City,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if seedUser(ctx, users, owner) {
			created++
		}

		if err := businesses.Create(ctx, business); err != nil {
			if apperrors.IsType(err, apperrors.ErrorTypeConflict) {
				log.Printf("Business %s already exists, skipping", business.Slug)
				continue
			}
			log.Fatalf("Failed to seed business %s: %v", business.Slug, err)
		}
		created++
		log.Printf("Seeded %s", business.Slug)
	}

	log.Printf("Seeding complete. %d rows created.", created)
}

func seedUser(ctx context.Context, repo repositories.UserRepository, user *entities.User) bool {
	if err := repo.Create(ctx, user); err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeConflict) {
			log.Printf("User %s already exists, skipping", user.Email)
			return false
		}
		log.Fatalf("Failed to seed user %s: %v", user.Email, err)
	}
	log.Printf("Seeded user %s", user.Email)
	return true
}
