package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"recipebox/internal/models"
	"recipebox/internal/testutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewRepository_CreateDuplicate(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	testutil.CreateUser(t, db, "owner", 0)
	testutil.CreateUser(t, db, "rater", 0)
	recipe := testutil.CreateRecipe(t, db, "owner", "Pie")
	repo := NewReviewRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Review{Username: "rater", RecipeID: recipe.ID, Rating: 4}))

	err := repo.Create(ctx, &models.Review{Username: "rater", RecipeID: recipe.ID, Rating: 5})
	assert.True(t, models.HasCode(err, models.CodeDuplicateRating), "got %v", err)

	exists, err := repo.Exists(ctx, "rater", recipe.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.Exists(ctx, "owner", recipe.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestReviewRepository_RatingCheckConstraint(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	testutil.CreateUser(t, db, "owner", 0)
	testutil.CreateUser(t, db, "rater", 0)
	recipe := testutil.CreateRecipe(t, db, "owner", "Pie")
	repo := NewReviewRepository(db)

	err := repo.Create(context.Background(), &models.Review{Username: "rater", RecipeID: recipe.ID, Rating: 6})
	assert.True(t, models.HasCode(err, models.CodeInternal))
}

func TestReviewRepository_ListByRecipeNewestFirst(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	for _, u := range []string{"owner", "old", "tie-a", "tie-b", "new"} {
		testutil.CreateUser(t, db, u, 0)
	}
	recipe := testutil.CreateRecipe(t, db, "owner", "Pie")
	repo := NewReviewRepository(db)
	ctx := context.Background()

	now := time.Now()
	same := now.Add(-time.Minute)
	for _, rv := range []models.Review{
		{Username: "old", RecipeID: recipe.ID, Rating: 3, CreatedAt: now.Add(-time.Hour)},
		{Username: "tie-a", RecipeID: recipe.ID, Rating: 4, CreatedAt: same},
		{Username: "tie-b", RecipeID: recipe.ID, Rating: 5, CreatedAt: same},
		{Username: "new", RecipeID: recipe.ID, Rating: 1, CreatedAt: now},
	} {
		rv := rv
		require.NoError(t, repo.Create(ctx, &rv))
	}

	reviews, err := repo.ListByRecipe(ctx, recipe.ID)
	require.NoError(t, err)
	got := make([]string, 0, len(reviews))
	for _, rv := range reviews {
		got = append(got, rv.Username)
	}
	assert.Equal(t, []string{"new", "tie-b", "tie-a", "old"}, got)

	again, err := repo.ListByRecipe(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, reviews, again)

	empty, err := repo.ListByRecipe(ctx, 9999)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestReviewRepository_UnknownRater(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	testutil.CreateUser(t, db, "owner", 0)
	recipe := testutil.CreateRecipe(t, db, "owner", "Pie")
	repo := NewReviewRepository(db)
	ctx := context.Background()

	err := repo.Create(ctx, &models.Review{Username: "ghost", RecipeID: recipe.ID, Rating: 4})
	require.Error(t, err)

	exists, err := repo.Exists(ctx, "ghost", recipe.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestReviewRepository_ListByRecipe_SQL(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewReviewRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "reviews" WHERE recipe_id = $1 ORDER BY created_at DESC, id DESC`)).
		WithArgs(7).
		WillReturnError(errors.New("timeout"))

	_, err := repo.ListByRecipe(context.Background(), 7)
	assert.True(t, models.HasCode(err, models.CodeInternal))
	assert.NoError(t, mock.ExpectationsWereMet())

	rows := sqlmock.NewRows([]string{"id", "username", "recipe_id", "rating"}).AddRow(1, "anna", 7, 5)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "reviews" WHERE recipe_id = $1`)).WillReturnRows(rows)
	reviews, err := repo.ListByRecipe(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, 5, reviews[0].Rating)
}
