package orders

import (
	"context"

	"gorm.io/gorm"

	pkgerrors "github.com/logitrack-app/backend/pkg/errors"
)

// stockAdjusterImpl applies conditional quantity updates so that two
// concurrent transactions can never both drive an item below zero.
type stockAdjusterImpl struct{}

// NewStockAdjuster returns the conditional-update stock mover used by the
// order engine.
func NewStockAdjuster() stockAdjuster {
	return stockAdjusterImpl{}
}

func (stockAdjusterImpl) Take(ctx context.Context, tx *gorm.DB, itemID uint, qty int) error {
	if qty <= 0 {
		return pkgerrors.Newf(pkgerrors.CodeValidation, "take quantity must be positive, got %d", qty)
	}
	if tx == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "transaction required for stock adjustment")
	}

	res := tx.WithContext(ctx).Exec(`
		UPDATE inventory_items
		SET quantity = quantity - ?,
			last_updated = CURRENT_TIMESTAMP
		WHERE id = ? AND quantity >= ?
	`, qty, itemID, qty)
	if res.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, res.Error, "take stock")
	}
	if res.RowsAffected == 0 {
		return pkgerrors.Newf(pkgerrors.CodeInsufficientStock,
			"insufficient stock for inventory item %d", itemID)
	}
	return nil
}

func (stockAdjusterImpl) Return(ctx context.Context, tx *gorm.DB, itemID uint, qty int) error {
	if qty <= 0 {
		return pkgerrors.Newf(pkgerrors.CodeValidation, "return quantity must be positive, got %d", qty)
	}
	if tx == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "transaction required for stock adjustment")
	}

	res := tx.WithContext(ctx).Exec(`
		UPDATE inventory_items
		SET quantity = quantity + ?,
			last_updated = CURRENT_TIMESTAMP
		WHERE id = ?
	`, qty, itemID)
	if res.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, res.Error, "return stock")
	}
	if res.RowsAffected == 0 {
		return pkgerrors.Newf(pkgerrors.CodeNotFound, "inventory item %d not found", itemID)
	}
	return nil
}
