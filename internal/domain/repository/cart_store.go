package repository

import (
	"context"

	"github.com/bukusaku/bukusaku-api/internal/domain/cart"
	"github.com/google/uuid"
)

// CartStore keeps open carts between requests
type CartStore interface {
	// Get returns nil when the cart does not exist or has expired.
	Get(ctx context.Context, id uuid.UUID) (*cart.Cart, error)
	Save(ctx context.Context, id uuid.UUID, c *cart.Cart) error
	Delete(ctx context.Context, id uuid.UUID) error
}
