package cartstore

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/bukusaku/bukusaku-api/internal/domain/cart"
	"github.com/bukusaku/bukusaku-api/internal/domain/entity"
	"github.com/bukusaku/bukusaku-api/internal/domain/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCart(t *testing.T) *cart.Cart {
	t.Helper()
	c := cart.New()
	kopi := entity.Product{ID: uuid.New(), Name: "Kopi", SellPrice: 5000, Stock: 10}
	require.NoError(t, c.Add(kopi))
	require.NoError(t, c.Add(kopi))
	require.NoError(t, c.Add(entity.Product{ID: uuid.New(), Name: "Gula", SellPrice: 3000, Stock: 4}))
	return c
}

func exerciseStore(t *testing.T, store repository.CartStore) {
	ctx := context.Background()
	id := uuid.New()

	got, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, got)

	c := sampleCart(t)
	require.NoError(t, store.Save(ctx, id, c))

	got, err = store.Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(13000), got.Total())
	assert.Equal(t, 2, got.Len())
	assert.Equal(t, "Kopi", got.Items[0].Product.Name)

	require.NoError(t, store.Delete(ctx, id))
	got, err = store.Get(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore(time.Hour))
}

func TestMemoryStoreCopiesOnSave(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(0)
	id := uuid.New()
	c := sampleCart(t)
	require.NoError(t, store.Save(ctx, id, c))

	c.Clear()
	got, _ := store.Get(ctx, id)
	assert.Equal(t, 2, got.Len())
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Minute)
	now := time.Now()
	store.now = func() time.Time { return now }

	a, b := uuid.New(), uuid.New()
	require.NoError(t, store.Save(ctx, a, sampleCart(t)))
	require.NoError(t, store.Save(ctx, b, sampleCart(t)))

	now = now.Add(2 * time.Minute)
	got, err := store.Get(ctx, a)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, 1, store.Sweep())
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	store, err := NewRedisStore(context.Background(), mr.Addr(), "", 0, time.Hour)
	require.NoError(t, err)
	defer store.Close()

	exerciseStore(t, store)
}

func TestRedisStoreTTL(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()
	store, err := NewRedisStore(ctx, mr.Addr(), "", 0, time.Minute)
	require.NoError(t, err)
	defer store.Close()

	id := uuid.New()
	require.NoError(t, store.Save(ctx, id, sampleCart(t)))
	assert.True(t, mr.Exists(keyPrefix+id.String()))

	mr.FastForward(2 * time.Minute)
	got, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestNewRedisStoreFailsWhenUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewRedisStore(context.Background(), addr, "", 0, time.Minute)
	assert.Error(t, err)
}
