package main

import (
	"context"
	"errors"
	"log"
	"strings"

	"curtaincrm/internal/config"
	"curtaincrm/internal/database"
	"curtaincrm/internal/domain"
	"curtaincrm/internal/modules/auth"
	"curtaincrm/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("load config: ", err)
	}

	email := strings.TrimSpace(cfg.Seed.AdminEmail)
	if email == "" || cfg.Seed.AdminPassword == "" {
		log.Fatal("SEED_ADMIN_EMAIL and SEED_ADMIN_PASSWORD are required")
	}

	db, err := database.Connect(cfg.Database.URL, database.Options{})
	if err != nil {
		log.Fatal("DB connection failed: ", err)
	}
	defer database.Close(db)

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db, repository.Models()...); err != nil {
		log.Fatal("AutoMigrate failed: ", err)
	}

	ctx := context.Background()
	users := repository.NewUserRepository(db)

	if _, err := users.GetByEmail(ctx, email); err == nil {
		log.Printf("admin %s already exists, nothing to do", email)
		return
	} else if !errors.Is(err, repository.ErrNotFound) {
		log.Fatal("lookup admin: ", err)
	}

	hash, err := auth.HashPassword(cfg.Seed.AdminPassword, cfg.Auth.BcryptCost)
	if err != nil {
		log.Fatal("hash password: ", err)
	}

	admin := &domain.User{
		FirstName:    "Admin",
		LastName:     "CRM",
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		IsActive:     true,
	}
	if err := users.Create(ctx, admin); err != nil {
		log.Fatal("create admin: ", err)
	}
	log.Printf("admin %s created with id %d", admin.Email, admin.ID)
}
