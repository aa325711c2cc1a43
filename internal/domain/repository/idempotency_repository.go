package repository

import (
	"context"

	"github.com/bukusaku/bukusaku-api/internal/domain/entity"
)

// IdempotencyRepository defines the interface for idempotency key operations
type IdempotencyRepository interface {
	// GetByKey retrieves a stored response by key within a scope
	GetByKey(ctx context.Context, key, scope string) (*entity.IdempotencyKey, error)
	Create(ctx context.Context, ikey *entity.IdempotencyKey) error
	// DeleteExpired removes expired keys and reports how many were deleted
	DeleteExpired(ctx context.Context) (int64, error)
}
