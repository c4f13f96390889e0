package models

// OrderItem is one reservation: OrderedQuantity units already subtracted
// from the referenced inventory item's quantity-on-hand. It holds a lookup
// key to the inventory item, never an owned copy of its row.
type OrderItem struct {
	ID              uint `gorm:"column:id;primaryKey" json:"id"`
	OrderID         uint `gorm:"column:order_id;not null;index" json:"order_id"`
	InventoryItemID uint `gorm:"column:inventory_item_id;not null;index" json:"inventory_item_id"`
	OrderedQuantity int  `gorm:"column:ordered_quantity;not null" json:"ordered_quantity"`
}
