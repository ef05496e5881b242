package database

import "recipebox/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
// Order matters: referenced tables come first.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Recipe{},
		&models.Review{},
		&models.Voucher{},
		&models.Favourite{},
		&models.ShoppingListItem{},
	}
}
