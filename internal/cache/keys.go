package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// LeaderboardKey holds the full ranked list; callers slice it to their limit.
	LeaderboardKey       = "leaderboard:top"
	RecipeReviewsPrefix  = "recipe:%d:reviews"
	TokenBlacklistPrefix = "blacklist:%s"
	WSTicketPrefix       = "ws_ticket:%s"
)

const (
	LeaderboardTTL   = 5 * time.Minute
	RecipeReviewsTTL = 2 * time.Minute
	WSTicketTTL      = 60 * time.Second
)

func RecipeReviewsKey(recipeID uint) string {
	return fmt.Sprintf(RecipeReviewsPrefix, recipeID)
}

func TokenBlacklistKey(jti string) string {
	return fmt.Sprintf(TokenBlacklistPrefix, jti)
}

func WSTicketKey(ticket string) string {
	return fmt.Sprintf(WSTicketPrefix, ticket)
}

// Invalidate deletes keys, ignoring a nil client.
func Invalidate(ctx context.Context, rdb *redis.Client, keys ...string) {
	if rdb != nil && len(keys) > 0 {
		rdb.Del(ctx, keys...)
	}
}

// InvalidateRatings drops every cached view derived from a recipe's reviews.
func InvalidateRatings(ctx context.Context, rdb *redis.Client, recipeID uint) {
	Invalidate(ctx, rdb, LeaderboardKey, RecipeReviewsKey(recipeID))
}
