package testutil

import (
	"testing"

	"recipebox/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSQLiteDB_AcceptsFixtures(t *testing.T) {
	db := NewSQLiteDB(t)

	owner := CreateUser(t, db, "owner", 10)
	CreateUser(t, db, "rater", 0)
	recipe := CreateRecipe(t, db, owner.Username, "Soup")
	review := CreateReview(t, db, "rater", recipe.ID, 5)

	assert.NotZero(t, recipe.ID)
	assert.NotZero(t, review.ID)
}

func TestNewSQLiteDB_RejectsRowsForUnknownUsers(t *testing.T) {
	db := NewSQLiteDB(t)
	CreateUser(t, db, "owner", 0)
	recipe := CreateRecipe(t, db, "owner", "Soup")

	tests := []struct {
		name string
		row  interface{}
	}{
		{"recipe", &models.Recipe{Username: "ghost", Name: "Stew"}},
		{"review", &models.Review{Username: "ghost", RecipeID: recipe.ID, Rating: 4}},
		{"voucher", &models.Voucher{Username: "ghost", Points: 10}},
		{"favourite", &models.Favourite{Username: "ghost", RecipeID: "1"}},
		{"shopping list item", &models.ShoppingListItem{Username: "ghost", ItemName: "eggs", ItemQuantity: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, db.Create(tt.row).Error)
		})
	}
}

func TestNewSQLiteDB_DeletingUserCascades(t *testing.T) {
	db := NewSQLiteDB(t)
	CreateUser(t, db, "owner", 0)
	CreateUser(t, db, "rater", 0)
	recipe := CreateRecipe(t, db, "owner", "Soup")
	CreateReview(t, db, "rater", recipe.ID, 5)
	require.NoError(t, db.Create(&models.Voucher{Username: "rater", Points: 10}).Error)

	require.NoError(t, db.Delete(&models.User{Username: "rater"}).Error)

	var reviews, vouchers int64
	require.NoError(t, db.Model(&models.Review{}).Count(&reviews).Error)
	require.NoError(t, db.Model(&models.Voucher{}).Count(&vouchers).Error)
	assert.Zero(t, reviews)
	assert.Zero(t, vouchers)

	require.NoError(t, db.Delete(&models.User{Username: "owner"}).Error)
	var recipes int64
	require.NoError(t, db.Model(&models.Recipe{}).Count(&recipes).Error)
	assert.Zero(t, recipes)
}
