package repository

import (
	"context"

	"github.com/bukusaku/bukusaku-api/internal/domain/entity"
)

// SettingsRepository stores the single store profile row
type SettingsRepository interface {
	// Get returns the profile, or nil when none has been saved yet.
	Get(ctx context.Context) (*entity.StoreProfile, error)
	Create(ctx context.Context, profile *entity.StoreProfile) error
	Update(ctx context.Context, profile *entity.StoreProfile) error
}
