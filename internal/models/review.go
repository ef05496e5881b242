package models

import "time"

// Rating bounds accepted by the rating ledger.
const (
	MinRating = 1
	MaxRating = 5
)

// Review ties one rater to one recipe. At most one per (username, recipe_id).
type Review struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Username    string    `gorm:"size:50;not null;uniqueIndex:idx_reviews_rater_recipe" json:"username"`
	RecipeID    uint      `gorm:"not null;uniqueIndex:idx_reviews_rater_recipe;index" json:"recipe_id"`
	Recipe      *Recipe   `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"-"`
	Rating      int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
}

// PointsForRating returns the points credited to a recipe owner for a rating.
func PointsForRating(rating int) int {
	switch rating {
	case 5:
		return 100
	case 4:
		return 50
	default:
		return 0
	}
}
