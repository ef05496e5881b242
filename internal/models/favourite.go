package models

import "time"

// Favourite is a recipe saved by a user. RecipeID holds either a local recipe
// id or the id of a recipe from the external search provider.
type Favourite struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Username   string    `gorm:"size:50;not null;uniqueIndex:idx_favourites_owner_recipe" json:"username"`
	RecipeID   string    `gorm:"size:255;not null;uniqueIndex:idx_favourites_owner_recipe" json:"recipe_id"`
	IsExternal bool      `gorm:"not null;default:false;uniqueIndex:idx_favourites_owner_recipe" json:"is_external"`
	CreatedAt  time.Time `json:"created_at"`
}
