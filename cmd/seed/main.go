// Command seed creates the initial admin account and default gym. Running
// it again leaves existing rows untouched.
package main

import (
	"context"
	"errors"
	"log"
	"os"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"aiptrack/backend/internal/config"
	"aiptrack/backend/internal/model"
	"aiptrack/backend/internal/repository"
	"aiptrack/backend/pkg/crypto"
	"aiptrack/backend/pkg/logger"
)

func main() {
	configPath := "config.yaml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	zl, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	db, err := config.NewPostgresDB(cfg.Database.Postgres, zl)
	if err != nil {
		zl.Fatal("failed to connect to postgres", zap.Error(err))
	}
	if err := model.AutoMigrate(db); err != nil {
		zl.Fatal("failed to auto-migrate", zap.Error(err))
	}

	ctx := context.Background()
	if err := seedGym(ctx, repository.NewPGGymRepository(db), cfg.Seed, zl); err != nil {
		zl.Fatal("failed to seed gym", zap.Error(err))
	}
	if err := seedAdmin(ctx, repository.NewPGUserRepository(db), cfg.Seed, cfg.Auth.BcryptCost, zl); err != nil {
		zl.Fatal("failed to seed admin", zap.Error(err))
	}
	zl.Info("database seeded")
}

func seedGym(ctx context.Context, gyms repository.GymRepository, seed config.SeedConfig, zl *zap.Logger) error {
	if seed.GymName == "" {
		return nil
	}
	_, err := gyms.GetByName(ctx, seed.GymName)
	if err == nil {
		zl.Info("gym already present", zap.String("name", seed.GymName))
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	gym := &model.Gym{Name: seed.GymName}
	if seed.GymAddress != "" {
		addr := seed.GymAddress
		gym.Address = &addr
	}
	if err := gyms.Create(ctx, gym); err != nil {
		return err
	}
	zl.Info("gym created", zap.String("id", gym.ID.String()), zap.String("name", gym.Name))
	return nil
}

func seedAdmin(ctx context.Context, users repository.UserRepository, seed config.SeedConfig, cost int, zl *zap.Logger) error {
	if seed.AdminEmail == "" {
		return nil
	}
	_, err := users.GetByEmail(ctx, seed.AdminEmail)
	if err == nil {
		zl.Info("admin already present", zap.String("email", seed.AdminEmail))
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if len(seed.AdminPassword) < crypto.MinPasswordLength {
		return errors.New("seed.admin_password must be set and at least 8 characters")
	}

	hash, err := crypto.HashPassword(seed.AdminPassword, cost)
	if err != nil {
		return err
	}
	admin := &model.User{
		Email:        seed.AdminEmail,
		PasswordHash: &hash,
		FirstName:    "Admin",
		LastName:     "User",
		Status:       model.AccountStatusActive,
		IsAdmin:      true,
	}
	if err := users.Create(ctx, admin); err != nil {
		return err
	}
	zl.Info("admin created", zap.String("id", admin.ID.String()), zap.String("email", admin.Email))
	return nil
}
