// Package service holds the business workflows behind the HTTP handlers.
package service

import (
	"context"
	"log/slog"
	"strings"

	"recipebox/internal/cache"
	"recipebox/internal/featureflags"
	"recipebox/internal/middleware"
	"recipebox/internal/models"
	"recipebox/internal/notifications"
	"recipebox/internal/observability"
	"recipebox/internal/repository"

	"github.com/redis/go-redis/v9"
)

const maxReviewLength = 2000

// PointsPublisher delivers points_awarded events to recipe owners.
type PointsPublisher interface {
	PublishPointsAwarded(ctx context.Context, owner string, ev notifications.PointsAwarded) error
}

// RatingLedger records reviews and credits recipe owners.
type RatingLedger struct {
	tx        repository.TxRunner
	rdb       *redis.Client
	publisher PointsPublisher
	flags     *featureflags.Manager
}

// SubmitRatingInput is one rater's review of one recipe.
type SubmitRatingInput struct {
	Rater       string
	RecipeID    uint
	Rating      int
	Description string
}

// RatingResult is the stored review plus what it earned the recipe owner.
type RatingResult struct {
	Review        *models.Review `json:"review"`
	Owner         string         `json:"owner"`
	PointsAwarded int            `json:"points_awarded"`
}

// NewRatingLedger wires a RatingLedger. rdb, publisher and flags may be nil.
func NewRatingLedger(
	tx repository.TxRunner,
	rdb *redis.Client,
	publisher PointsPublisher,
	flags *featureflags.Manager,
) *RatingLedger {
	return &RatingLedger{tx: tx, rdb: rdb, publisher: publisher, flags: flags}
}

// SubmitRating stores the review and credits the owner in one transaction.
// It fails with NOT_FOUND, SELF_RATING_FORBIDDEN, DUPLICATE_RATING or
// VALIDATION_ERROR without writing anything.
func (l *RatingLedger) SubmitRating(ctx context.Context, in SubmitRatingInput) (_ *RatingResult, err error) {
	ctx, span := observability.StartSpan(ctx, "RatingLedger", "SubmitRating")
	defer func() { observability.EndSpan(span, err) }()

	if in.Rating < models.MinRating || in.Rating > models.MaxRating {
		observability.RatingsSubmitted.WithLabelValues("invalid").Inc()
		return nil, models.NewValidationError("Rating must be between 1 and 5")
	}
	description := strings.TrimSpace(in.Description)
	if len(description) > maxReviewLength {
		observability.RatingsSubmitted.WithLabelValues("invalid").Inc()
		return nil, models.NewValidationError("Review too long (max 2000 characters)")
	}

	result := &RatingResult{}
	err = l.tx.InTx(ctx, func(tx repository.Repos) error {
		owner, err := tx.Recipes.OwnerOf(ctx, in.RecipeID)
		if err != nil {
			return err
		}
		if owner == in.Rater {
			return models.NewSelfRatingError()
		}

		exists, err := tx.Reviews.Exists(ctx, in.Rater, in.RecipeID)
		if err != nil {
			return err
		}
		if exists {
			return models.NewDuplicateRatingError()
		}

		review := &models.Review{
			Username:    in.Rater,
			RecipeID:    in.RecipeID,
			Rating:      in.Rating,
			Description: description,
		}
		if err := tx.Reviews.Create(ctx, review); err != nil {
			return err
		}

		points := models.PointsForRating(in.Rating)
		if points > 0 {
			if err := tx.Users.CreditPoints(ctx, owner, points); err != nil {
				return err
			}
		}

		result.Review = review
		result.Owner = owner
		result.PointsAwarded = points
		return nil
	})
	if err != nil {
		observability.RatingsSubmitted.WithLabelValues(ratingOutcome(err)).Inc()
		return nil, err
	}

	observability.RatingsSubmitted.WithLabelValues("accepted").Inc()
	cache.InvalidateRatings(ctx, l.rdb, in.RecipeID)

	if result.PointsAwarded > 0 {
		observability.PointsAwarded.Add(float64(result.PointsAwarded))
		l.notifyOwner(ctx, result)
	}

	return result, nil
}

func (l *RatingLedger) notifyOwner(ctx context.Context, result *RatingResult) {
	if l.publisher == nil || !l.flags.Enabled(featureflags.PointsNotifications, result.Owner) {
		return
	}
	err := l.publisher.PublishPointsAwarded(ctx, result.Owner, notifications.PointsAwarded{
		RecipeID: result.Review.RecipeID,
		Rater:    result.Review.Username,
		Rating:   result.Review.Rating,
		Points:   result.PointsAwarded,
	})
	if err != nil {
		middleware.Logger.WarnContext(ctx, "failed to publish points notification",
			slog.String("owner", result.Owner), slog.String("error", err.Error()))
	}
}

func ratingOutcome(err error) string {
	switch {
	case models.HasCode(err, models.CodeNotFound):
		return "not_found"
	case models.HasCode(err, models.CodeSelfRatingForbidden):
		return "self_rating"
	case models.HasCode(err, models.CodeDuplicateRating):
		return "duplicate"
	default:
		return "error"
	}
}
