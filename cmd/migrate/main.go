// Command migrate runs schema operations for the backend.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"recipebox/internal/config"
	"recipebox/internal/database"

	"github.com/urfave/cli/v3"
	"gorm.io/gorm"
)

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Apply, inspect or roll back the recipebox schema",
		Commands: []*cli.Command{
			{
				Name:  "up",
				Usage: "Apply pending SQL migrations",
				Action: withDB(func(ctx context.Context, _ *cli.Command, db *gorm.DB, _ *config.Config) error {
					if err := database.RunMigrations(ctx, db); err != nil {
						return fmt.Errorf("sql migrations failed: %w", err)
					}
					log.Println("sql migrations applied")
					return nil
				}),
			},
			{
				Name:  "auto",
				Usage: "Run GORM AutoMigrate for every model",
				Action: withDB(func(ctx context.Context, _ *cli.Command, db *gorm.DB, cfg *config.Config) error {
					cfg.DBSchemaMode = database.SchemaModeAuto
					if err := database.ApplySchema(ctx, db, cfg); err != nil {
						return fmt.Errorf("auto schema apply failed: %w", err)
					}
					log.Println("automigrations applied")
					return nil
				}),
			},
			{
				Name:  "status",
				Usage: "Show the schema policy and pending migrations",
				Action: withDB(func(ctx context.Context, _ *cli.Command, db *gorm.DB, cfg *config.Config) error {
					status, err := database.GetSchemaStatus(ctx, db, cfg)
					if err != nil {
						return fmt.Errorf("schema status failed: %w", err)
					}
					log.Printf("mode=%s env=%s run_sql=%t run_auto=%t applied=%d pending=%d",
						status.Mode, status.Environment, status.WillRunSQL, status.WillRunAutoMigrate,
						len(status.AppliedVersions), len(status.PendingMigrations))
					for _, m := range status.PendingMigrations {
						log.Printf("pending: %06d_%s", m.Version, m.Name)
					}
					return nil
				}),
			},
			{
				Name:      "down",
				Usage:     "Roll back one applied migration",
				ArgsUsage: "<version>",
				Action: withDB(func(ctx context.Context, cmd *cli.Command, db *gorm.DB, _ *config.Config) error {
					version, err := parseVersion(cmd.Args().First())
					if err != nil {
						return err
					}
					if err := database.RollbackMigration(ctx, db, version); err != nil {
						return fmt.Errorf("rollback failed: %w", err)
					}
					log.Printf("rolled back migration %d", version)
					return nil
				}),
			},
		},
	}
}

type dbAction func(ctx context.Context, cmd *cli.Command, db *gorm.DB, cfg *config.Config) error

// withDB loads the configuration and connects before running fn.
func withDB(fn dbAction) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		db, err := database.Connect(cfg)
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		return fn(ctx, cmd, db, cfg)
	}
}

func parseVersion(raw string) (int, error) {
	if raw == "" {
		return 0, fmt.Errorf("usage: migrate down <version>")
	}
	version, err := strconv.Atoi(raw)
	if err != nil || version <= 0 {
		return 0, fmt.Errorf("invalid version %q", raw)
	}
	return version, nil
}
