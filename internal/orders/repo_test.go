package orders

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/logitrack-app/backend/pkg/db/models"
)

func TestRepositoryCreatePersistsItems(t *testing.T) {
	conn := setupOrdersTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	order, err := repo.Create(ctx, &models.Order{
		CustomerName: "Acme Logistics",
		Status:       models.DefaultOrderStatus,
		Items: []models.OrderItem{
			{InventoryItemID: 1, OrderedQuantity: 3},
			{InventoryItemID: 2, OrderedQuantity: 1},
		},
	})
	require.NoError(t, err)
	require.NotZero(t, order.ID)

	loaded, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Len(t, loaded.Items, 2)
	assert.Equal(t, order.ID, loaded.Items[0].OrderID)
}

func TestRepositoryRejectsDuplicateReservationRows(t *testing.T) {
	conn := setupOrdersTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	order, err := repo.Create(ctx, &models.Order{
		CustomerName: "Acme Logistics",
		Status:       models.DefaultOrderStatus,
		Items:        []models.OrderItem{{InventoryItemID: 1, OrderedQuantity: 3}},
	})
	require.NoError(t, err)

	err = repo.CreateItems(ctx, []models.OrderItem{
		{OrderID: order.ID, InventoryItemID: 1, OrderedQuantity: 2},
	})
	require.Error(t, err)

	loaded, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Len(t, loaded.Items, 1)
}

func TestRepositoryExists(t *testing.T) {
	conn := setupOrdersTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	order, err := repo.Create(ctx, &models.Order{CustomerName: "Acme Logistics"})
	require.NoError(t, err)

	exists, err := repo.Exists(ctx, order.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.Exists(ctx, order.ID+1)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRepositoryUpdateFields(t *testing.T) {
	conn := setupOrdersTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	order, err := repo.Create(ctx, &models.Order{CustomerName: "Acme Logistics"})
	require.NoError(t, err)

	now := time.Now().UTC()
	err = repo.UpdateFields(ctx, order.ID, map[string]any{
		"customer_name": "Acme Freight",
		"status":        "Shipped",
		"last_updated":  now,
	})
	require.NoError(t, err)

	loaded, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Freight", loaded.CustomerName)
	assert.Equal(t, "Shipped", loaded.Status)
}

func TestRepositoryDeleteOrderRemovesItems(t *testing.T) {
	conn := setupOrdersTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	order, err := repo.Create(ctx, &models.Order{
		CustomerName: "Acme Logistics",
		Items:        []models.OrderItem{{InventoryItemID: 1, OrderedQuantity: 3}},
	})
	require.NoError(t, err)

	require.NoError(t, repo.DeleteOrder(ctx, order.ID))

	_, err = repo.FindByID(ctx, order.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var itemCount int64
	require.NoError(t, conn.Model(&models.OrderItem{}).Where("order_id = ?", order.ID).Count(&itemCount).Error)
	assert.Zero(t, itemCount)
}
