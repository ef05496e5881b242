package repository

import (
	"context"
	"strings"

	"recipebox/internal/models"

	"gorm.io/gorm"
)

// Leaderboard bounds.
const (
	DefaultTopRatedLimit = 10
	MaxTopRatedLimit     = 100
)

// RecipeRepository defines persistence operations for user-authored recipes.
// Every read returns recipes with their rating aggregates filled in.
type RecipeRepository interface {
	Create(ctx context.Context, recipe *models.Recipe) error
	GetByID(ctx context.Context, id uint) (*models.Recipe, error)
	// OwnerOf returns the owning username without aggregating reviews.
	OwnerOf(ctx context.Context, id uint) (string, error)
	List(ctx context.Context, limit, offset int) ([]models.Recipe, error)
	ListByUser(ctx context.Context, username string) ([]models.Recipe, error)
	Search(ctx context.Context, terms []string, byRating bool, limit, offset int) ([]models.Recipe, error)
	TopRated(ctx context.Context, limit int) ([]models.Recipe, error)
	// UpdateOwned applies fields to the recipe only when username owns it.
	UpdateOwned(ctx context.Context, id uint, username string, fields map[string]interface{}) error
	// DeleteOwned removes the recipe only when username owns it.
	DeleteOwned(ctx context.Context, id uint, username string) error
}

type recipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a new RecipeRepository
func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

const (
	ratedSelect = "r.*, CAST(COALESCE(AVG(rv.rating), 0) AS DOUBLE PRECISION) AS average_rating, COUNT(rv.id) AS rating_count"
	ratedOrder  = "average_rating DESC, rating_count DESC, r.id ASC"
	newestOrder = "r.created_at DESC, r.id DESC"
)

// rated selects recipes joined with their review aggregates.
func (r *recipeRepository) rated(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("recipes AS r").
		Select(ratedSelect).
		Joins("LEFT JOIN reviews rv ON rv.recipe_id = r.id").
		Group("r.id")
}

func (r *recipeRepository) Create(ctx context.Context, recipe *models.Recipe) error {
	if err := r.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *recipeRepository) GetByID(ctx context.Context, id uint) (*models.Recipe, error) {
	var recipes []models.Recipe
	if err := r.rated(ctx).Where("r.id = ?", id).Find(&recipes).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	if len(recipes) == 0 {
		return nil, models.NewNotFoundError("Recipe", id)
	}
	return &recipes[0], nil
}

func (r *recipeRepository) OwnerOf(ctx context.Context, id uint) (string, error) {
	var recipe models.Recipe
	if err := r.db.WithContext(ctx).Select("id", "username").First(&recipe, id).Error; err != nil {
		return "", wrapNotFound(err, "Recipe", id)
	}
	return recipe.Username, nil
}

func (r *recipeRepository) List(ctx context.Context, limit, offset int) ([]models.Recipe, error) {
	var recipes []models.Recipe
	if err := r.rated(ctx).Order(newestOrder).Limit(limit).Offset(offset).Find(&recipes).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return recipes, nil
}

func (r *recipeRepository) ListByUser(ctx context.Context, username string) ([]models.Recipe, error) {
	var recipes []models.Recipe
	if err := r.rated(ctx).Where("r.username = ?", username).Order(newestOrder).Find(&recipes).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return recipes, nil
}

func (r *recipeRepository) Search(ctx context.Context, terms []string, byRating bool, limit, offset int) ([]models.Recipe, error) {
	q := r.rated(ctx)

	var clauses []string
	var args []interface{}
	for _, term := range terms {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" {
			continue
		}
		pattern := "%" + term + "%"
		clauses = append(clauses, "(LOWER(r.name) LIKE ? OR LOWER(r.ingredients) LIKE ?)")
		args = append(args, pattern, pattern)
	}
	if len(clauses) > 0 {
		q = q.Where(strings.Join(clauses, " OR "), args...)
	}

	order := newestOrder
	if byRating {
		order = ratedOrder
	}

	var recipes []models.Recipe
	if err := q.Order(order).Limit(limit).Offset(offset).Find(&recipes).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return recipes, nil
}

// ClampTopRatedLimit applies the leaderboard default and ceiling.
func ClampTopRatedLimit(limit int) int {
	if limit <= 0 {
		return DefaultTopRatedLimit
	}
	if limit > MaxTopRatedLimit {
		return MaxTopRatedLimit
	}
	return limit
}

func (r *recipeRepository) TopRated(ctx context.Context, limit int) ([]models.Recipe, error) {
	var recipes []models.Recipe
	if err := r.rated(ctx).Order(ratedOrder).Limit(ClampTopRatedLimit(limit)).Find(&recipes).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return recipes, nil
}

func (r *recipeRepository) UpdateOwned(ctx context.Context, id uint, username string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		_, err := r.ownedExists(ctx, id, username)
		return err
	}
	result := r.db.WithContext(ctx).Model(&models.Recipe{}).
		Where("id = ? AND username = ?", id, username).
		Updates(fields)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Recipe", id)
	}
	return nil
}

func (r *recipeRepository) ownedExists(ctx context.Context, id uint, username string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Recipe{}).
		Where("id = ? AND username = ?", id, username).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	if count == 0 {
		return false, models.NewNotFoundError("Recipe", id)
	}
	return true, nil
}

func (r *recipeRepository) DeleteOwned(ctx context.Context, id uint, username string) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND username = ?", id, username).
		Delete(&models.Recipe{})
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Recipe", id)
	}
	return nil
}
