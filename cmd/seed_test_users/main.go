package main

import (
	"log"

	"github.com/plateful/backend/config"
	"github.com/plateful/backend/internal/database"
	"github.com/plateful/backend/internal/service"
)

// Seeds a development admin and a regular user for local testing.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	auth := service.NewAuthService(db, cfg.JWTSecret, cfg.AdminInvite)

	accounts := []struct {
		email    string
		password string
		invite   string
	}{
		{"admin@example.com", "adminpassword123", cfg.AdminInvite},
		{"user@example.com", "userpassword123", ""},
	}

	for _, a := range accounts {
		user, err := auth.Register(a.email, a.password, a.invite)
		if err != nil {
			log.Printf("Skipping %s: %v", a.email, err)
			continue
		}
		log.Printf("Created %s (%s)", user.Email, user.Role)
	}
}
