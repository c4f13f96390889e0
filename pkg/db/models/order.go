package models

import "time"

// DefaultOrderStatus is assigned to newly placed orders.
const DefaultOrderStatus = "Pending"

// Order is a customer order owning a set of reservations.
type Order struct {
	ID           uint        `gorm:"column:id;primaryKey" json:"id"`
	CustomerName string      `gorm:"column:customer_name;not null" json:"customer_name"`
	Status       string      `gorm:"column:status;not null;default:'Pending'" json:"status"`
	DatePlaced   time.Time   `gorm:"column:date_placed;autoCreateTime" json:"date_placed"`
	LastUpdated  time.Time   `gorm:"column:last_updated;autoUpdateTime" json:"last_updated"`
	Items        []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
}
