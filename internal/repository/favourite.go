package repository

import (
	"context"

	"recipebox/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FavouriteRepository defines persistence operations for saved recipes.
type FavouriteRepository interface {
	// Add saves the favourite; saving it again returns the existing row.
	Add(ctx context.Context, fav *models.Favourite) error
	List(ctx context.Context, username string) ([]models.Favourite, error)
	Remove(ctx context.Context, username, recipeID string, external bool) error
}

type favouriteRepository struct {
	db *gorm.DB
}

// NewFavouriteRepository creates a new FavouriteRepository
func NewFavouriteRepository(db *gorm.DB) FavouriteRepository {
	return &favouriteRepository{db: db}
}

func (r *favouriteRepository) Add(ctx context.Context, fav *models.Favourite) error {
	db := r.db.WithContext(ctx)
	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "username"}, {Name: "recipe_id"}, {Name: "is_external"}},
		DoNothing: true,
	}).Create(fav)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		if err := db.Where("username = ? AND recipe_id = ? AND is_external = ?",
			fav.Username, fav.RecipeID, fav.IsExternal).First(fav).Error; err != nil {
			return models.NewInternalError(err)
		}
	}
	return nil
}

func (r *favouriteRepository) List(ctx context.Context, username string) ([]models.Favourite, error) {
	favourites := []models.Favourite{}
	if err := r.db.WithContext(ctx).
		Where("username = ?", username).
		Order("created_at DESC, id DESC").
		Find(&favourites).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return favourites, nil
}

func (r *favouriteRepository) Remove(ctx context.Context, username, recipeID string, external bool) error {
	result := r.db.WithContext(ctx).
		Where("username = ? AND recipe_id = ? AND is_external = ?", username, recipeID, external).
		Delete(&models.Favourite{})
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Favourite", recipeID)
	}
	return nil
}
