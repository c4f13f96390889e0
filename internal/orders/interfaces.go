package orders

import (
	"context"

	"gorm.io/gorm"

	"github.com/logitrack-app/backend/pkg/db/models"
)

// Repository defines persistence operations for orders and their reservations.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	ListAll(ctx context.Context) ([]models.Order, error)
	FindByID(ctx context.Context, id uint) (*models.Order, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	UpdateFields(ctx context.Context, id uint, updates map[string]any) error
	CreateItems(ctx context.Context, items []models.OrderItem) error
	UpdateItemQuantity(ctx context.Context, itemID uint, quantity int) error
	DeleteItem(ctx context.Context, orderID, inventoryItemID uint) error
	DeleteOrder(ctx context.Context, id uint) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// stockAdjuster moves quantity-on-hand inside the caller's transaction. Take
// must fail, without writing, when the remaining quantity would go negative.
type stockAdjuster interface {
	Take(ctx context.Context, tx *gorm.DB, itemID uint, qty int) error
	Return(ctx context.Context, tx *gorm.DB, itemID uint, qty int) error
}
