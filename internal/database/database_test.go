package database

import (
	"context"
	"errors"
	"testing"

	"recipebox/internal/config"
	"recipebox/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestConfigurePool(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	cfg := &config.Config{
		DBMaxOpenConns:           10,
		DBMaxIdleConns:           5,
		DBConnMaxLifetimeMinutes: 15,
	}
	require.NoError(t, configurePool(db, cfg))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Equal(t, 10, sqlDB.Stats().MaxOpenConnections)
}

func TestDSN(t *testing.T) {
	cfg := &config.Config{DBHost: "db", DBPort: "5432", DBUser: "u", DBPassword: "p", DBName: "recipebox"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=recipebox sslmode=disable", DSN(cfg))

	cfg.DBSSLMode = "require"
	assert.Contains(t, DSN(cfg), "sslmode=require")
}

func TestRegisteredMigrations(t *testing.T) {
	all := GetMigrations()
	require.Len(t, all, 2)
	assert.Equal(t, 1, all[0].Version)
	assert.Equal(t, "init_schema", all[0].Name)
	assert.Equal(t, "000002_profile_lists", all[1].String())

	for _, m := range all {
		assert.NotEmpty(t, m.UpScript)
		assert.NotEmpty(t, m.DownScript)
	}
	assert.Contains(t, all[0].UpScript, "idx_reviews_rater_recipe")
	assert.Contains(t, all[0].UpScript, "CHECK (points >= 0)")

	assert.NotNil(t, GetMigrationByVersion(2))
	assert.Nil(t, GetMigrationByVersion(99))
}

func TestSchemaPolicy(t *testing.T) {
	tests := []struct {
		name        string
		mode        string
		env         string
		destructive bool
		runSQL      bool
		runAuto     bool
		wantErr     bool
	}{
		{"hybrid development", "hybrid", "development", false, true, true, false},
		{"hybrid production", "hybrid", "production", false, true, false, false},
		{"empty mode defaults to hybrid", "", "staging", false, true, false, false},
		{"sql only", "sql", "development", false, true, false, false},
		{"auto development", "auto", "development", false, false, true, false},
		{"auto production refused", "auto", "production", false, false, false, true},
		{"auto production allowed", "auto", "prod", true, false, true, false},
		{"unknown mode", "magic", "development", false, false, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{DBSchemaMode: tt.mode, Env: tt.env, DBAutoMigrateAllowDestructive: tt.destructive}
			plan, err := planSchema(cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.runSQL, plan.sql)
			assert.Equal(t, tt.runAuto, plan.auto)
		})
	}
}

func TestSchemaStatus_Pending(t *testing.T) {
	store := &fakeMigrationStore{applied: []int{1}}
	status, err := schemaStatus(context.Background(), store, schemaPlan{mode: SchemaModeSQL, env: "production", sql: true})
	require.NoError(t, err)

	assert.Equal(t, []int{1}, status.AppliedVersions)
	require.Len(t, status.PendingMigrations, len(GetMigrations())-1)
	assert.Equal(t, 2, status.PendingMigrations[0].Version)
	assert.False(t, status.WillRunAutoMigrate)

	status, err = schemaStatus(context.Background(), &fakeMigrationStore{}, schemaPlan{mode: SchemaModeAuto, auto: true})
	require.NoError(t, err)
	assert.Nil(t, status.PendingMigrations, "auto mode never consults the migration log")
}

func TestPendingMigrations(t *testing.T) {
	all := []Migration{{Version: 1}, {Version: 2}, {Version: 3}}
	assert.Empty(t, pendingMigrations(all, []int{1, 2, 3}))
	got := pendingMigrations(all, []int{2})
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].Version)
	assert.Equal(t, 3, got[1].Version)
}

type fakeMigrationStore struct {
	applied  []int
	ran      []int
	removed  []int
	applyErr error
}

func (f *fakeMigrationStore) GetAppliedMigrations(context.Context) ([]int, error) {
	return f.applied, nil
}

func (f *fakeMigrationStore) ApplyMigration(_ context.Context, version int, _, _ string) error {
	if f.applyErr != nil {
		return f.applyErr
	}
	f.ran = append(f.ran, version)
	f.applied = append(f.applied, version)
	return nil
}

func (f *fakeMigrationStore) RemoveMigration(_ context.Context, version int, _ string) error {
	f.removed = append(f.removed, version)
	return nil
}

func TestRunPending(t *testing.T) {
	registered := []Migration{{Version: 1, Name: "a"}, {Version: 2, Name: "b"}, {Version: 3, Name: "c"}}

	store := &fakeMigrationStore{applied: []int{1}}
	require.NoError(t, runPending(context.Background(), store, registered))
	assert.Equal(t, []int{2, 3}, store.ran)

	store = &fakeMigrationStore{applied: []int{1, 7}}
	err := runPending(context.Background(), store, registered)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "000007")

	store = &fakeMigrationStore{applyErr: errors.New("syntax error")}
	assert.Error(t, runPending(context.Background(), store, registered))
}

func TestRollback(t *testing.T) {
	m := &Migration{Version: 2, Name: "b", DownScript: "DROP TABLE b;"}

	store := &fakeMigrationStore{applied: []int{1}}
	assert.Error(t, rollback(context.Background(), store, m))

	store = &fakeMigrationStore{applied: []int{1, 2}}
	require.NoError(t, rollback(context.Background(), store, m))
	assert.Equal(t, []int{2}, store.removed)
}

func TestAutoMigrate_SQLite(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))

	for _, table := range []string{"users", "recipes", "reviews", "vouchers", "favourites", "shopping_list_items"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
	assert.True(t, db.Migrator().HasIndex(&models.Review{}, "idx_reviews_rater_recipe"))
	assert.False(t, db.Migrator().HasColumn(&models.Recipe{}, "average_rating"))

	var usersDDL string
	require.NoError(t, db.Raw("SELECT sql FROM sqlite_master WHERE type = 'table' AND name = 'users'").Scan(&usersDDL).Error)
	assert.NotContains(t, usersDDL, "REFERENCES", "users owns its children and references nothing")

	for table, fk := range map[string]string{
		"recipes":             "fk_users_recipes",
		"reviews":             "fk_users_reviews",
		"vouchers":            "fk_users_vouchers",
		"favourites":          "fk_users_favourites",
		"shopping_list_items": "fk_users_shopping_list_items",
	} {
		var ddl string
		require.NoError(t, db.Raw("SELECT sql FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&ddl).Error)
		assert.Contains(t, ddl, fk, table)
		assert.Contains(t, ddl, "ON DELETE CASCADE", table)
	}
}

func TestApplySchema_AutoOnSQLite(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	cfg := &config.Config{DBSchemaMode: SchemaModeAuto, Env: "test"}
	require.NoError(t, ApplySchema(context.Background(), db, cfg))
	assert.True(t, db.Migrator().HasTable("users"))

	status, err := GetSchemaStatus(context.Background(), db, cfg)
	require.NoError(t, err)
	assert.False(t, status.WillRunSQL)
	assert.True(t, status.WillRunAutoMigrate)
}
