package models

import "time"

// ShoppingListItem is one line of a user's shopping list.
type ShoppingListItem struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:50;not null;index" json:"username"`
	ItemName     string    `gorm:"size:255;not null" json:"item_name"`
	ItemQuantity int       `gorm:"not null;default:1" json:"item_quantity"`
	CreatedAt    time.Time `json:"created_at"`
}
