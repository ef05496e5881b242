package service

import (
	"context"
	"strings"

	"recipebox/internal/cache"
	"recipebox/internal/models"
	"recipebox/internal/repository"

	"github.com/redis/go-redis/v9"
)

const (
	maxRecipeNameLength = 255
	defaultPageSize     = 20
	maxPageSize         = 100
)

type RecipeService struct {
	recipeRepo repository.RecipeRepository
	rdb        *redis.Client
}

type CreateRecipeInput struct {
	Username    string
	Name        string
	PrepTime    string
	ServingSize int
	Steps       string
	Ingredients string
}

// UpdateRecipeInput changes only the fields that are non-nil.
type UpdateRecipeInput struct {
	Username    string
	RecipeID    uint
	Name        *string
	PrepTime    *string
	ServingSize *int
	Steps       *string
	Ingredients *string
}

type SearchRecipesInput struct {
	Query    string
	ByRating bool
	Limit    int
	Offset   int
}

func NewRecipeService(recipeRepo repository.RecipeRepository, rdb *redis.Client) *RecipeService {
	return &RecipeService{recipeRepo: recipeRepo, rdb: rdb}
}

func (s *RecipeService) CreateRecipe(ctx context.Context, in CreateRecipeInput) (*models.Recipe, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, models.NewValidationError("Name is required")
	}
	if len(name) > maxRecipeNameLength {
		return nil, models.NewValidationError("Name too long (max 255 characters)")
	}
	if in.ServingSize < 0 {
		return nil, models.NewValidationError("Serving size must not be negative")
	}

	recipe := &models.Recipe{
		Username:    in.Username,
		Name:        name,
		PrepTime:    models.FormatPrepTime(in.PrepTime),
		ServingSize: in.ServingSize,
		Steps:       in.Steps,
		Ingredients: in.Ingredients,
	}
	if err := s.recipeRepo.Create(ctx, recipe); err != nil {
		return nil, err
	}

	// A new recipe with no reviews can still enter a short leaderboard.
	cache.Invalidate(ctx, s.rdb, cache.LeaderboardKey)
	return s.recipeRepo.GetByID(ctx, recipe.ID)
}

func (s *RecipeService) GetRecipe(ctx context.Context, id uint) (*models.Recipe, error) {
	return s.recipeRepo.GetByID(ctx, id)
}

func (s *RecipeService) ListMine(ctx context.Context, username string) ([]models.Recipe, error) {
	return s.recipeRepo.ListByUser(ctx, username)
}

func (s *RecipeService) ListAll(ctx context.Context, limit, offset int) ([]models.Recipe, error) {
	limit, offset = normalizePage(limit, offset)
	return s.recipeRepo.List(ctx, limit, offset)
}

// SearchRecipes matches any comma-separated term against name or ingredients.
func (s *RecipeService) SearchRecipes(ctx context.Context, in SearchRecipesInput) ([]models.Recipe, error) {
	limit, offset := normalizePage(in.Limit, in.Offset)
	terms := models.ParseTagList(in.Query)
	return s.recipeRepo.Search(ctx, terms, in.ByRating, limit, offset)
}

func (s *RecipeService) UpdateRecipe(ctx context.Context, in UpdateRecipeInput) (*models.Recipe, error) {
	fields := map[string]interface{}{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, models.NewValidationError("Name must not be empty")
		}
		if len(name) > maxRecipeNameLength {
			return nil, models.NewValidationError("Name too long (max 255 characters)")
		}
		fields["name"] = name
	}
	if in.PrepTime != nil {
		fields["prep_time"] = models.FormatPrepTime(*in.PrepTime)
	}
	if in.ServingSize != nil {
		if *in.ServingSize < 0 {
			return nil, models.NewValidationError("Serving size must not be negative")
		}
		fields["serving_size"] = *in.ServingSize
	}
	if in.Steps != nil {
		fields["steps"] = *in.Steps
	}
	if in.Ingredients != nil {
		fields["ingredients"] = *in.Ingredients
	}

	if err := s.recipeRepo.UpdateOwned(ctx, in.RecipeID, in.Username, fields); err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		cache.Invalidate(ctx, s.rdb, cache.LeaderboardKey)
	}
	return s.recipeRepo.GetByID(ctx, in.RecipeID)
}

func (s *RecipeService) DeleteRecipe(ctx context.Context, username string, id uint) error {
	if err := s.recipeRepo.DeleteOwned(ctx, id, username); err != nil {
		return err
	}
	cache.InvalidateRatings(ctx, s.rdb, id)
	return nil
}

func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
