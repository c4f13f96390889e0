package orders

import (
	"time"

	"github.com/logitrack-app/backend/pkg/db/models"
)

// OrderLineDTO exposes one reservation on an order.
type OrderLineDTO struct {
	ID              uint `json:"id"`
	InventoryItemID uint `json:"inventory_item_id"`
	OrderedQuantity int  `json:"ordered_quantity"`
}

// OrderDTO is the transport shape for an order and its reservations.
type OrderDTO struct {
	ID           uint           `json:"id"`
	CustomerName string         `json:"customer_name"`
	Status       string         `json:"status"`
	DatePlaced   time.Time      `json:"date_placed"`
	LastUpdated  time.Time      `json:"last_updated"`
	Items        []OrderLineDTO `json:"items"`
}

// OrderLineInput is one requested reservation line.
type OrderLineInput struct {
	InventoryItemID uint `json:"inventory_item_id" validate:"required"`
	Quantity        int  `json:"quantity" validate:"required,min=1"`
}

// InsertOrderInput carries a new order. ID may be supplied by callers that
// manage their own identities; zero means the store assigns one.
type InsertOrderInput struct {
	ID           uint             `json:"id,omitempty"`
	CustomerName string           `json:"customer_name" validate:"required"`
	Status       string           `json:"status,omitempty"`
	Items        []OrderLineInput `json:"items" validate:"required,min=1,dive"`
}

// UpdateOrderInput carries a full replacement of an order's fields and lines.
type UpdateOrderInput struct {
	ID           uint             `json:"id" validate:"required"`
	CustomerName string           `json:"customer_name" validate:"required"`
	Status       string           `json:"status,omitempty"`
	Items        []OrderLineInput `json:"items" validate:"required,min=1,dive"`
}

func FromModel(order *models.Order) *OrderDTO {
	if order == nil {
		return nil
	}
	lines := make([]OrderLineDTO, 0, len(order.Items))
	for _, item := range order.Items {
		lines = append(lines, OrderLineDTO{
			ID:              item.ID,
			InventoryItemID: item.InventoryItemID,
			OrderedQuantity: item.OrderedQuantity,
		})
	}
	return &OrderDTO{
		ID:           order.ID,
		CustomerName: order.CustomerName,
		Status:       order.Status,
		DatePlaced:   order.DatePlaced,
		LastUpdated:  order.LastUpdated,
		Items:        lines,
	}
}

func FromModels(orders []models.Order) []OrderDTO {
	out := make([]OrderDTO, 0, len(orders))
	for i := range orders {
		out = append(out, *FromModel(&orders[i]))
	}
	return out
}
