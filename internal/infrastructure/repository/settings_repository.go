package repository

import (
	"context"
	"errors"

	"github.com/bukusaku/bukusaku-api/internal/domain/entity"
	"github.com/bukusaku/bukusaku-api/internal/domain/repository"
	"gorm.io/gorm"
)

type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *gorm.DB) repository.SettingsRepository {
	return &settingsRepository{db: db}
}

// Get returns the oldest profile row.
func (r *settingsRepository) Get(ctx context.Context) (*entity.StoreProfile, error) {
	var profile entity.StoreProfile
	err := r.db.WithContext(ctx).Order("created_at ASC").First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &profile, err
}

func (r *settingsRepository) Create(ctx context.Context, profile *entity.StoreProfile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

func (r *settingsRepository) Update(ctx context.Context, profile *entity.StoreProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}
