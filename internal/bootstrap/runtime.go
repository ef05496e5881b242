// Package bootstrap wires the process-wide runtime shared by the commands.
package bootstrap

import (
	"context"
	"fmt"

	"recipebox/internal/cache"
	"recipebox/internal/config"
	"recipebox/internal/database"
	"recipebox/internal/middleware"
	"recipebox/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	ApplySchema bool
	SeedCurated bool
}

// InitRuntime connects to the database and Redis, applies the schema policy
// and optionally seeds the curated recipes.
func InitRuntime(ctx context.Context, cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	// Redis is optional: a nil client disables caching, fan-out and revocation.
	cache.InitRedis(cfg.RedisURL)
	rdb := cache.GetClient()

	if err := Prepare(ctx, db, cfg, opts); err != nil {
		return nil, nil, err
	}
	return db, rdb, nil
}

// Prepare runs the schema and seed steps against an open database.
func Prepare(ctx context.Context, db *gorm.DB, cfg *config.Config, opts Options) error {
	if opts.ApplySchema {
		if err := database.ApplySchema(ctx, db, cfg); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}

	if opts.SeedCurated {
		recipes, err := seed.NewSeeder(db, seed.Options{}).SeedCurated(ctx)
		if err != nil {
			return fmt.Errorf("seed curated recipes: %w", err)
		}
		middleware.Logger.Info("curated recipes ensured", "created", len(recipes))
	}
	return nil
}
