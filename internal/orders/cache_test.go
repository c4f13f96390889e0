package orders

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logitrack-app/backend/internal/inventory"
	"github.com/logitrack-app/backend/pkg/db"
	pkgredis "github.com/logitrack-app/backend/pkg/redis"
)

type fakeCacheStore struct {
	values map[string]string
	sets   int
	dels   []string
}

func newFakeCacheStore() *fakeCacheStore {
	return &fakeCacheStore{values: map[string]string{}}
}

func (f *fakeCacheStore) Get(ctx context.Context, key string) (string, error) {
	if value, ok := f.values[key]; ok {
		return value, nil
	}
	return "", pkgredis.ErrCacheMiss
}

func (f *fakeCacheStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	f.sets++
	switch v := value.(type) {
	case []byte:
		f.values[key] = string(v)
	case string:
		f.values[key] = v
	}
	return nil
}

func (f *fakeCacheStore) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.values, key)
		f.dels = append(f.dels, key)
	}
	return nil
}

func (f *fakeCacheStore) CacheKey(parts ...string) string {
	return "lt:cache:" + strings.Join(parts, ":")
}

func setupCachedEngine(t *testing.T) (Service, *fakeCacheStore, func(qty int) uint) {
	t.Helper()

	conn := setupOrdersTestDB(t)
	store := newFakeCacheStore()
	svc, err := NewService(ServiceParams{
		Repo:      NewRepository(conn),
		Inventory: inventory.NewRepository(conn),
		Tx:        db.FromGorm(conn),
		Cache:     store,
		CacheTTL:  time.Minute,
	})
	require.NoError(t, err)

	stock := func(qty int) uint {
		return mustStockItem(t, conn, "Pallet Jack", qty)
	}
	return svc, store, stock
}

func TestListPopulatesAndServesCache(t *testing.T) {
	svc, store, stock := setupCachedEngine(t)
	itemID := stock(12)
	ctx := context.Background()

	_, err := svc.Insert(ctx, InsertOrderInput{
		CustomerName: "Acme Logistics",
		Items:        []OrderLineInput{{InventoryItemID: itemID, Quantity: 3}},
	})
	require.NoError(t, err)

	orders, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Contains(t, store.values, "lt:cache:orders:list")

	// second read is served from the cache without another Set
	setsAfterFirst := store.sets
	again, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, orders, again)
	assert.Equal(t, setsAfterFirst, store.sets)
}

func TestWritesInvalidateCachedReads(t *testing.T) {
	svc, store, stock := setupCachedEngine(t)
	itemID := stock(12)
	ctx := context.Background()

	order, err := svc.Insert(ctx, InsertOrderInput{
		CustomerName: "Acme Logistics",
		Items:        []OrderLineInput{{InventoryItemID: itemID, Quantity: 3}},
	})
	require.NoError(t, err)

	_, err = svc.List(ctx)
	require.NoError(t, err)
	_, err = svc.Get(ctx, order.ID)
	require.NoError(t, err)
	require.Contains(t, store.values, "lt:cache:orders:list")

	_, err = svc.Update(ctx, UpdateOrderInput{
		ID:           order.ID,
		CustomerName: "Acme Freight",
		Items:        []OrderLineInput{{InventoryItemID: itemID, Quantity: 1}},
	})
	require.NoError(t, err)

	assert.NotContains(t, store.values, "lt:cache:orders:list")
	assert.Contains(t, store.dels, "lt:cache:orders:list")

	// the next read observes the committed update, not the stale entry
	got, err := svc.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Freight", got.CustomerName)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 1, got.Items[0].OrderedQuantity)
}

func TestRemoveInvalidatesDetailKey(t *testing.T) {
	svc, store, stock := setupCachedEngine(t)
	itemID := stock(12)
	ctx := context.Background()

	order, err := svc.Insert(ctx, InsertOrderInput{
		CustomerName: "Acme Logistics",
		Items:        []OrderLineInput{{InventoryItemID: itemID, Quantity: 3}},
	})
	require.NoError(t, err)

	_, err = svc.Get(ctx, order.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Remove(ctx, order.ID))

	for key := range store.values {
		assert.NotContains(t, key, "orders:detail")
	}
}
