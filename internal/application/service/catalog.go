package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/bukusaku/bukusaku-api/internal/domain/entity"
	"github.com/bukusaku/bukusaku-api/internal/domain/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Catalog is the cashier's snapshot of the product list. Cart operations
// read from it instead of the database; it is re-fetched after every sale
// and inventory change and on a timer.
type Catalog struct {
	repo repository.ProductRepository
	log  *zap.Logger

	loadMu   sync.Mutex
	mu       sync.RWMutex
	products []entity.Product
	loaded   bool
	loadedAt time.Time
}

// NewCatalog creates an empty catalog; the first read loads it.
func NewCatalog(repo repository.ProductRepository, log *zap.Logger) *Catalog {
	return &Catalog{repo: repo, log: log}
}

// Refresh replaces the snapshot with the current product list.
func (c *Catalog) Refresh(ctx context.Context) error {
	c.loadMu.Lock()
	defer c.loadMu.Unlock()
	return c.load(ctx)
}

func (c *Catalog) load(ctx context.Context) error {
	products, err := c.repo.List(ctx, nil)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.products = products
	c.loaded = true
	c.loadedAt = time.Now()
	c.mu.Unlock()
	return nil
}

func (c *Catalog) ensure(ctx context.Context) error {
	c.mu.RLock()
	loaded := c.loaded
	c.mu.RUnlock()
	if loaded {
		return nil
	}

	c.loadMu.Lock()
	defer c.loadMu.Unlock()
	c.mu.RLock()
	loaded = c.loaded
	c.mu.RUnlock()
	if loaded {
		return nil
	}
	return c.load(ctx)
}

// Products returns a copy of the snapshot ordered by name.
func (c *Catalog) Products(ctx context.Context) ([]entity.Product, error) {
	if err := c.ensure(ctx); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]entity.Product, len(c.products))
	copy(out, c.products)
	return out, nil
}

// Get looks a product up by id.
func (c *Catalog) Get(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	return c.find(ctx, func(p *entity.Product) bool { return p.ID == id })
}

// FindBySKU is an exact, case-insensitive SKU match, the path taken by a
// barcode scan.
func (c *Catalog) FindBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return nil, nil
	}
	return c.find(ctx, func(p *entity.Product) bool { return strings.EqualFold(p.SKUValue(), sku) })
}

func (c *Catalog) find(ctx context.Context, match func(*entity.Product) bool) (*entity.Product, error) {
	if err := c.ensure(ctx); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	for i := range c.products {
		if match(&c.products[i]) {
			p := c.products[i]
			return &p, nil
		}
	}
	return nil, nil
}

// Search filters the snapshot by a name or SKU substring.
func (c *Catalog) Search(ctx context.Context, term string) ([]entity.Product, error) {
	all, err := c.Products(ctx)
	if err != nil {
		return nil, err
	}
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return all, nil
	}
	out := make([]entity.Product, 0, len(all))
	for _, p := range all {
		if strings.Contains(strings.ToLower(p.Name), term) || strings.Contains(strings.ToLower(p.SKUValue()), term) {
			out = append(out, p)
		}
	}
	return out, nil
}

// LoadedAt is when the snapshot was last fetched.
func (c *Catalog) LoadedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loadedAt
}

// Run re-fetches the snapshot every interval until ctx is done.
func (c *Catalog) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := c.Refresh(ctx); err != nil && ctx.Err() == nil {
				c.log.Warn("catalog refresh failed", zap.Error(err))
			}
		}
	}
}

// refreshAfterWrite re-fetches the snapshot and only logs a failure; the
// write that triggered it has already succeeded.
func (c *Catalog) refreshAfterWrite(ctx context.Context) {
	if err := c.Refresh(ctx); err != nil {
		c.log.Warn("catalog refresh after write failed", zap.Error(err))
	}
}
