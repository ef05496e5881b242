package database

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"recipebox/internal/config"
	"recipebox/internal/middleware"

	"gorm.io/gorm"
)

// Schema modes accepted by DB_SCHEMA_MODE.
const (
	SchemaModeHybrid = "hybrid"
	SchemaModeSQL    = "sql"
	SchemaModeAuto   = "auto"
)

// Environments where GORM must not alter tables on its own.
var protectedEnvs = map[string]bool{
	"production": true,
	"prod":       true,
	"staging":    true,
	"stage":      true,
}

// SchemaStatus describes what ApplySchema would do for a configuration.
type SchemaStatus struct {
	Mode               string
	Environment        string
	WillRunSQL         bool
	WillRunAutoMigrate bool
	AppliedVersions    []int
	PendingMigrations  []Migration
}

// schemaPlan is the resolved DB_SCHEMA_MODE for one environment.
type schemaPlan struct {
	mode        string
	env         string
	sql         bool
	auto        bool
	destructive bool
}

func planSchema(cfg *config.Config) (schemaPlan, error) {
	plan := schemaPlan{
		mode:        strings.ToLower(strings.TrimSpace(cfg.DBSchemaMode)),
		env:         cfg.Env,
		destructive: cfg.DBAutoMigrateAllowDestructive,
	}
	if plan.mode == "" {
		plan.mode = SchemaModeHybrid
	}
	protected := protectedEnvs[strings.ToLower(strings.TrimSpace(cfg.Env))]

	switch plan.mode {
	case SchemaModeSQL:
		plan.sql = true
	case SchemaModeHybrid:
		plan.sql, plan.auto = true, !protected
	case SchemaModeAuto:
		if protected && !plan.destructive {
			return plan, fmt.Errorf("refusing DB_SCHEMA_MODE=auto in %q without DB_AUTOMIGRATE_ALLOW_DESTRUCTIVE=true", cfg.Env)
		}
		plan.auto = true
	default:
		return plan, fmt.Errorf("unsupported DB_SCHEMA_MODE %q", plan.mode)
	}
	return plan, nil
}

// AutoMigrate creates or updates tables for every persistent model.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(PersistentModels()...)
}

// ApplySchema brings the schema up to date according to DB_SCHEMA_MODE.
// Versioned SQL always runs before AutoMigrate so named constraints exist first.
func ApplySchema(ctx context.Context, db *gorm.DB, cfg *config.Config) error {
	plan, err := planSchema(cfg)
	if err != nil {
		return err
	}

	if plan.sql {
		if err := RunMigrations(ctx, db); err != nil {
			return fmt.Errorf("run sql migrations: %w", err)
		}
	}
	if !plan.auto {
		return nil
	}

	if plan.mode == SchemaModeAuto && plan.destructive {
		middleware.Logger.Warn("auto schema mode with destructive changes allowed",
			slog.String("env", plan.env))
	}
	middleware.Logger.Info("Running GORM AutoMigrate", slog.String("mode", plan.mode), slog.String("env", plan.env))
	if err := AutoMigrate(db.WithContext(ctx)); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}

// GetSchemaStatus reports the schema policy and pending migrations without applying anything.
func GetSchemaStatus(ctx context.Context, db *gorm.DB, cfg *config.Config) (*SchemaStatus, error) {
	plan, err := planSchema(cfg)
	if err != nil {
		return nil, err
	}
	return schemaStatus(ctx, NewMigrationStore(db), plan)
}

func schemaStatus(ctx context.Context, store MigrationStore, plan schemaPlan) (*SchemaStatus, error) {
	status := &SchemaStatus{
		Mode:               plan.mode,
		Environment:        plan.env,
		WillRunSQL:         plan.sql,
		WillRunAutoMigrate: plan.auto,
	}
	if !plan.sql {
		return status, nil
	}

	applied, err := store.GetAppliedMigrations(ctx)
	if err != nil {
		return nil, fmt.Errorf("read applied migrations: %w", err)
	}
	status.AppliedVersions = applied
	status.PendingMigrations = pendingMigrations(GetMigrations(), applied)
	return status, nil
}

func pendingMigrations(all []Migration, applied []int) []Migration {
	done := make(map[int]struct{}, len(applied))
	for _, v := range applied {
		done[v] = struct{}{}
	}
	var pending []Migration
	for _, m := range all {
		if _, ok := done[m.Version]; !ok {
			pending = append(pending, m)
		}
	}
	return pending
}
