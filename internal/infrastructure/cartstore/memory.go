// Package cartstore keeps open cashier carts between requests.
package cartstore

import (
	"context"
	"sync"
	"time"

	"github.com/bukusaku/bukusaku-api/internal/domain/cart"
	"github.com/bukusaku/bukusaku-api/internal/domain/repository"
	"github.com/google/uuid"
)

type memoryEntry struct {
	cart      cart.Cart
	expiresAt time.Time
}

// MemoryStore keeps carts in process. Carts are lost on restart.
type MemoryStore struct {
	mu    sync.Mutex
	ttl   time.Duration
	carts map[uuid.UUID]memoryEntry
	now   func() time.Time
}

// NewMemoryStore creates an in-process store. A zero ttl keeps carts forever.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:   ttl,
		carts: make(map[uuid.UUID]memoryEntry),
		now:   time.Now,
	}
}

var _ repository.CartStore = (*MemoryStore)(nil)

func (s *MemoryStore) Get(_ context.Context, id uuid.UUID) (*cart.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.carts[id]
	if !ok {
		return nil, nil
	}
	if s.ttl > 0 && s.now().After(e.expiresAt) {
		delete(s.carts, id)
		return nil, nil
	}
	c := cart.Cart{Items: e.cart.Lines()}
	return &c, nil
}

// Save stores a copy of c and restarts its expiry.
func (s *MemoryStore) Save(_ context.Context, id uuid.UUID, c *cart.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.carts[id] = memoryEntry{
		cart:      cart.Cart{Items: c.Lines()},
		expiresAt: s.now().Add(s.ttl),
	}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	delete(s.carts, id)
	s.mu.Unlock()
	return nil
}

// Sweep drops expired carts and returns how many were removed.
func (s *MemoryStore) Sweep() int {
	if s.ttl <= 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	now := s.now()
	for id, e := range s.carts {
		if now.After(e.expiresAt) {
			delete(s.carts, id)
			n++
		}
	}
	return n
}
