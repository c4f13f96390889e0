package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem is the live quantity-on-hand record for one stocked item.
// Quantity already excludes every active order reservation; only the order
// engine (and direct admin edits) may change it, and it never goes negative.
type InventoryItem struct {
	ID          uint            `gorm:"column:id;primaryKey" json:"id"`
	Name        string          `gorm:"column:name;not null" json:"name"`
	Description string          `gorm:"column:description;not null;default:''" json:"description"`
	Quantity    int             `gorm:"column:quantity;not null;default:0" json:"quantity"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null;default:0" json:"price"`
	Location    string          `gorm:"column:location;not null;default:''" json:"location"`
	LastUpdated time.Time       `gorm:"column:last_updated;autoUpdateTime" json:"last_updated"`
}
