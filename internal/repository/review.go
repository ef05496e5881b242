package repository

import (
	"context"

	"recipebox/internal/models"

	"gorm.io/gorm"
)

// ReviewRepository defines persistence operations for reviews.
type ReviewRepository interface {
	// Create inserts a review; a second review for the same rater and recipe
	// fails with DUPLICATE_RATING.
	Create(ctx context.Context, review *models.Review) error
	Exists(ctx context.Context, username string, recipeID uint) (bool, error)
	// ListByRecipe returns reviews newest first.
	ListByRecipe(ctx context.Context, recipeID uint) ([]models.Review, error)
}

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a new ReviewRepository
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewDuplicateRatingError()
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *reviewRepository) Exists(ctx context.Context, username string, recipeID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Review{}).
		Where("username = ? AND recipe_id = ?", username, recipeID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *reviewRepository) ListByRecipe(ctx context.Context, recipeID uint) ([]models.Review, error) {
	reviews := []models.Review{}
	if err := r.db.WithContext(ctx).
		Where("recipe_id = ?", recipeID).
		Order("created_at DESC, id DESC").
		Find(&reviews).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return reviews, nil
}
