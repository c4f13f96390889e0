package inventory

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/logitrack-app/backend/pkg/db/models"
)

func setupInventoryTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:inventory_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	ddl := []string{
		`CREATE TABLE IF NOT EXISTS inventory_items (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  quantity INTEGER NOT NULL DEFAULT 0,
  price NUMERIC NOT NULL DEFAULT 0,
  location TEXT NOT NULL DEFAULT '',
  last_updated DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS order_items (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  order_id INTEGER NOT NULL,
  inventory_item_id INTEGER NOT NULL,
  ordered_quantity INTEGER NOT NULL,
  UNIQUE (order_id, inventory_item_id)
);`,
	}
	for _, stmt := range ddl {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

func TestRepositoryCreateAndList(t *testing.T) {
	db := setupInventoryTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, &models.InventoryItem{
		Name:     "Pallet Jack",
		Quantity: 12,
		Price:    decimal.NewFromFloat(249.99),
		Location: "A1",
	})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &models.InventoryItem{
		Name:     "Forklift",
		Quantity: 5,
		Price:    decimal.NewFromInt(18500),
		Location: "Dock 2",
	})
	require.NoError(t, err)

	items, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Pallet Jack", items[0].Name)
	assert.Equal(t, "Forklift", items[1].Name)
	assert.Equal(t, 12, items[0].Quantity)
}

func TestRepositoryFindByIDs(t *testing.T) {
	db := setupInventoryTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	first, err := repo.Create(ctx, &models.InventoryItem{Name: "Hand Truck", Quantity: 20})
	require.NoError(t, err)
	second, err := repo.Create(ctx, &models.InventoryItem{Name: "Stretch Wrap", Quantity: 140})
	require.NoError(t, err)

	items, err := repo.FindByIDs(ctx, []uint{first.ID, second.ID})
	require.NoError(t, err)
	assert.Len(t, items, 2)

	none, err := repo.FindByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestRepositoryCountReservations(t *testing.T) {
	db := setupInventoryTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	item, err := repo.Create(ctx, &models.InventoryItem{Name: "Pallet Jack", Quantity: 12})
	require.NoError(t, err)

	require.NoError(t, db.Exec(
		`INSERT INTO order_items (order_id, inventory_item_id, ordered_quantity) VALUES (1, ?, 3), (2, ?, 4)`,
		item.ID, item.ID).Error)

	count, err := repo.CountReservations(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	count, err = repo.CountReservations(ctx, item.ID+99)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestRepositoryDelete(t *testing.T) {
	db := setupInventoryTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	item, err := repo.Create(ctx, &models.InventoryItem{Name: "Shrink Gun", Quantity: 6})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, item.ID))

	_, err = repo.FindByID(ctx, item.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
