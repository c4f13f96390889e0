package inventory

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/logitrack-app/backend/pkg/db/models"
)

// ItemDTO is the transport shape for an inventory item.
type ItemDTO struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Location    string          `json:"location"`
	LastUpdated time.Time       `json:"last_updated"`
}

// CreateItemInput carries the fields accepted when stocking a new item.
type CreateItemInput struct {
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity" validate:"min=0"`
	Price       decimal.Decimal `json:"price"`
	Location    string          `json:"location"`
}

// UpdateItemInput carries a full administrative replacement of an item's fields.
type UpdateItemInput struct {
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity" validate:"min=0"`
	Price       decimal.Decimal `json:"price"`
	Location    string          `json:"location"`
}

func FromModel(item *models.InventoryItem) *ItemDTO {
	if item == nil {
		return nil
	}
	return &ItemDTO{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Quantity:    item.Quantity,
		Price:       item.Price,
		Location:    item.Location,
		LastUpdated: item.LastUpdated,
	}
}

func FromModels(items []models.InventoryItem) []ItemDTO {
	out := make([]ItemDTO, 0, len(items))
	for i := range items {
		out = append(out, *FromModel(&items[i]))
	}
	return out
}

func (c CreateItemInput) ToModel() *models.InventoryItem {
	return &models.InventoryItem{
		Name:        c.Name,
		Description: c.Description,
		Quantity:    c.Quantity,
		Price:       c.Price,
		Location:    c.Location,
	}
}
