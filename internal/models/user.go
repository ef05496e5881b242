// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// MaxUsernameLength bounds the user handle, which is also the primary key.
const MaxUsernameLength = 50

// User represents an account in the recipebox application.
type User struct {
	Username            string    `gorm:"primaryKey;size:50" json:"username"`
	Password            string    `gorm:"not null" json:"-"`
	DietaryRestrictions TagList   `gorm:"type:text" json:"dietary_restrictions"`
	Allergies           TagList   `gorm:"type:text" json:"allergies"`
	Points              int       `gorm:"not null;default:0;check:points >= 0" json:"points"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`

	// Owned rows; deleting the user removes them.
	Recipes           []Recipe           `gorm:"foreignKey:Username;references:Username;constraint:OnDelete:CASCADE" json:"-"`
	Reviews           []Review           `gorm:"foreignKey:Username;references:Username;constraint:OnDelete:CASCADE" json:"-"`
	Vouchers          []Voucher          `gorm:"foreignKey:Username;references:Username;constraint:OnDelete:CASCADE" json:"-"`
	Favourites        []Favourite        `gorm:"foreignKey:Username;references:Username;constraint:OnDelete:CASCADE" json:"-"`
	ShoppingListItems []ShoppingListItem `gorm:"foreignKey:Username;references:Username;constraint:OnDelete:CASCADE" json:"-"`
}
