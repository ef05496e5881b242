// Package testutil provides shared fixtures for backend tests.
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"recipebox/internal/database"
	"recipebox/internal/models"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbSeq atomic.Int64

// NewSQLiteDB opens a private in-memory SQLite database with foreign keys
// enforced and every persistent model migrated.
func NewSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:recipebox_test_%d?mode=memory&cache=shared&_foreign_keys=on", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

// CreateUser inserts a user with the given balance and a bcrypt hash of "password123".
func CreateUser(t *testing.T, db *gorm.DB, username string, points int) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{Username: username, Password: string(hash), Points: points}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateRecipe inserts a recipe owned by username.
func CreateRecipe(t *testing.T, db *gorm.DB, username, name string) *models.Recipe {
	t.Helper()
	recipe := &models.Recipe{
		Username:    username,
		Name:        name,
		PrepTime:    "00:30",
		ServingSize: 2,
		Ingredients: "salt, pepper",
		Steps:       "mix",
	}
	require.NoError(t, db.Create(recipe).Error)
	return recipe
}

// CreateReview inserts a review directly, bypassing the rating ledger.
func CreateReview(t *testing.T, db *gorm.DB, username string, recipeID uint, rating int) *models.Review {
	t.Helper()
	review := &models.Review{Username: username, RecipeID: recipeID, Rating: rating}
	require.NoError(t, db.Create(review).Error)
	return review
}
