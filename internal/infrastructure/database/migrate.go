package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/bukusaku/bukusaku-api/internal/config"
	"github.com/bukusaku/bukusaku-api/internal/domain/entity"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB, log *zap.Logger) error {
	log.Info("running database migrations")

	err := db.AutoMigrate(
		&entity.Product{},
		&entity.Transaction{},
		&entity.TransactionItem{},
		&entity.Note{},
		&entity.StoreProfile{},
		&entity.IdempotencyKey{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("database migrations completed")
	return nil
}

// SeedDefaultData creates the store profile from configuration when the
// database has none yet. An existing profile is never overwritten.
func SeedDefaultData(ctx context.Context, db *gorm.DB, store *config.StoreConfig, log *zap.Logger) error {
	var existing entity.StoreProfile
	err := db.WithContext(ctx).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to load store profile: %w", err)
	}

	profile := &entity.StoreProfile{
		Name:       store.Name,
		Tagline:    store.Tagline,
		Address:    store.Address,
		Services:   store.Services,
		ThankYou:   store.ThankYou,
		Notice:     store.Notice,
		PaperWidth: store.PaperWidth,
	}
	if err := db.WithContext(ctx).Create(profile).Error; err != nil {
		return fmt.Errorf("failed to seed store profile: %w", err)
	}
	log.Info("seeded store profile", zap.String("store", profile.Name))
	return nil
}
