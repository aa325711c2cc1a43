package cartstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bukusaku/bukusaku-api/internal/domain/cart"
	"github.com/bukusaku/bukusaku-api/internal/domain/repository"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "bukusaku:cart:"

// RedisStore keeps carts as JSON values so several API instances can share
// a till session.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisStore connects to addr and verifies the connection with a ping.
func NewRedisStore(ctx context.Context, addr, password string, db int, ttl time.Duration) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("cartstore: redis ping: %w", err)
	}
	return &RedisStore{rdb: rdb, ttl: ttl}, nil
}

var _ repository.CartStore = (*RedisStore)(nil)

func key(id uuid.UUID) string {
	return keyPrefix + id.String()
}

func (s *RedisStore) Get(ctx context.Context, id uuid.UUID) (*cart.Cart, error) {
	val, err := s.rdb.Get(ctx, key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cartstore: get: %w", err)
	}

	c := cart.New()
	if err := json.Unmarshal(val, c); err != nil {
		return nil, fmt.Errorf("cartstore: decode: %w", err)
	}
	if c.Items == nil {
		c.Items = []cart.Line{}
	}
	return c, nil
}

func (s *RedisStore) Save(ctx context.Context, id uuid.UUID, c *cart.Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, key(id), data, s.ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, id uuid.UUID) error {
	return s.rdb.Del(ctx, key(id)).Err()
}

func (s *RedisStore) Close() error {
	return s.rdb.Close()
}
