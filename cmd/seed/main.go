// Command seed populates the database with demo data.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"recipebox/internal/bootstrap"
	"recipebox/internal/config"
	"recipebox/internal/database"
	"recipebox/internal/seed"

	"github.com/urfave/cli/v3"
)

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "Populate the database with generated users, recipes and reviews",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "users", Value: 20, Usage: "Number of users to create"},
			&cli.IntFlag{Name: "recipes", Value: 60, Usage: "Number of recipes to create"},
			&cli.IntFlag{Name: "reviews", Value: 3, Usage: "Reviews per recipe"},
			&cli.BoolFlag{Name: "clean", Value: true, Usage: "Delete existing data before seeding"},
			&cli.BoolFlag{Name: "curated", Value: true, Usage: "Include the curated recipe fixtures"},
			&cli.BoolFlag{Name: "fast", Usage: "Hash passwords with the minimum bcrypt cost"},
		},
		Action: run,
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	if err := bootstrap.Prepare(ctx, db, cfg, bootstrap.Options{ApplySchema: true}); err != nil {
		return err
	}

	seeder := seed.NewSeeder(db, seed.Options{
		NumUsers:         int(cmd.Int("users")),
		NumRecipes:       int(cmd.Int("recipes")),
		ReviewsPerRecipe: int(cmd.Int("reviews")),
		SkipBcrypt:       cmd.Bool("fast"),
		Curated:          cmd.Bool("curated"),
	})

	if cmd.Bool("clean") {
		if err := seeder.ClearAll(ctx); err != nil {
			return fmt.Errorf("cleanup failed: %w", err)
		}
	}

	summary, err := seeder.Run(ctx)
	if err != nil {
		return err
	}

	log.Printf("created %d users, %d recipes, %d reviews", summary.Users, summary.Recipes, summary.Reviews)
	log.Printf("all seeded users have the password: %s", seed.DefaultPassword)
	return nil
}
