package service

import (
	"context"
	"log/slog"

	"recipebox/internal/cache"
	"recipebox/internal/featureflags"
	"recipebox/internal/middleware"
	"recipebox/internal/models"
	"recipebox/internal/observability"
	"recipebox/internal/repository"

	"github.com/redis/go-redis/v9"
)

// Leaderboard answers read-only ranking and review queries.
type Leaderboard struct {
	recipes repository.RecipeRepository
	reviews repository.ReviewRepository
	rdb     *redis.Client
	flags   *featureflags.Manager
}

// NewLeaderboard wires a Leaderboard. rdb and flags may be nil.
func NewLeaderboard(
	recipes repository.RecipeRepository,
	reviews repository.ReviewRepository,
	rdb *redis.Client,
	flags *featureflags.Manager,
) *Leaderboard {
	return &Leaderboard{recipes: recipes, reviews: reviews, rdb: rdb, flags: flags}
}

// TopRated returns up to limit recipes ordered by average rating then review
// count. Non-positive limits mean 10; limits above 100 are capped.
func (b *Leaderboard) TopRated(ctx context.Context, limit int) ([]models.Recipe, error) {
	limit = repository.ClampTopRatedLimit(limit)

	if b.rdb == nil || !b.flags.Enabled(featureflags.LeaderboardCache, "") {
		return b.recipes.TopRated(ctx, limit)
	}

	// The cache holds the full ranking; every limit is a prefix of it.
	var ranked []models.Recipe
	hit, err := cache.Aside(ctx, b.rdb, cache.LeaderboardKey, &ranked, cache.LeaderboardTTL, func() error {
		var err error
		ranked, err = b.recipes.TopRated(ctx, repository.MaxTopRatedLimit)
		return err
	})
	if err != nil {
		return nil, err
	}
	if hit {
		observability.LeaderboardCache.WithLabelValues("hit").Inc()
	} else {
		observability.LeaderboardCache.WithLabelValues("miss").Inc()
	}

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

// ReviewsFor returns every review of recipeID, newest first. Unknown recipes
// have no reviews.
func (b *Leaderboard) ReviewsFor(ctx context.Context, recipeID uint) ([]models.Review, error) {
	if b.rdb == nil {
		return b.reviews.ListByRecipe(ctx, recipeID)
	}

	var reviews []models.Review
	_, err := cache.Aside(ctx, b.rdb, cache.RecipeReviewsKey(recipeID), &reviews, cache.RecipeReviewsTTL, func() error {
		var err error
		reviews, err = b.reviews.ListByRecipe(ctx, recipeID)
		return err
	})
	if err != nil {
		middleware.Logger.DebugContext(ctx, "reviews lookup failed", slog.Uint64("recipe_id", uint64(recipeID)))
		return nil, err
	}
	if reviews == nil {
		reviews = []models.Review{}
	}
	return reviews, nil
}
