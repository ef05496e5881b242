package repository

import (
	"context"

	"recipebox/internal/models"

	"gorm.io/gorm"
)

// ShoppingListRepository defines persistence operations for shopping list items.
type ShoppingListRepository interface {
	Add(ctx context.Context, item *models.ShoppingListItem) error
	List(ctx context.Context, username string) ([]models.ShoppingListItem, error)
	Remove(ctx context.Context, username string, id uint) error
}

type shoppingListRepository struct {
	db *gorm.DB
}

// NewShoppingListRepository creates a new ShoppingListRepository
func NewShoppingListRepository(db *gorm.DB) ShoppingListRepository {
	return &shoppingListRepository{db: db}
}

func (r *shoppingListRepository) Add(ctx context.Context, item *models.ShoppingListItem) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *shoppingListRepository) List(ctx context.Context, username string) ([]models.ShoppingListItem, error) {
	items := []models.ShoppingListItem{}
	if err := r.db.WithContext(ctx).
		Where("username = ?", username).
		Order("created_at ASC, id ASC").
		Find(&items).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return items, nil
}

func (r *shoppingListRepository) Remove(ctx context.Context, username string, id uint) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND username = ?", id, username).
		Delete(&models.ShoppingListItem{})
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Shopping list item", id)
	}
	return nil
}
