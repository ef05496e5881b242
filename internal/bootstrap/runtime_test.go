package bootstrap

import (
	"context"
	"testing"

	"recipebox/internal/config"
	"recipebox/internal/database"
	"recipebox/internal/models"
	"recipebox/internal/seed"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openBareSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func TestPrepare_AutoSchemaAndCuratedSeed(t *testing.T) {
	db := openBareSQLite(t)
	cfg := &config.Config{Env: "test", DBSchemaMode: database.SchemaModeAuto}

	require.NoError(t, Prepare(context.Background(), db, cfg, Options{ApplySchema: true, SeedCurated: true}))
	// Seeding twice must not duplicate the curated set.
	require.NoError(t, Prepare(context.Background(), db, cfg, Options{SeedCurated: true}))

	set, err := seed.CuratedRecipes()
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Recipe{}).Where("username = ?", set.Owner).Count(&count).Error)
	assert.Equal(t, int64(len(set.Recipes)), count)
}

func TestPrepare_RejectsUnsafeSchemaMode(t *testing.T) {
	db := openBareSQLite(t)
	cfg := &config.Config{Env: "production", DBSchemaMode: database.SchemaModeAuto}

	err := Prepare(context.Background(), db, cfg, Options{ApplySchema: true})
	assert.ErrorContains(t, err, "apply schema")
}

func TestPrepare_NoopOptions(t *testing.T) {
	assert.NoError(t, Prepare(context.Background(), nil, &config.Config{}, Options{}))
}
