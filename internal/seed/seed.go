// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"recipebox/internal/middleware"
	"recipebox/internal/models"
	"recipebox/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultPassword is the password of every seeded account.
const DefaultPassword = "password123"

// Options configures the seeder.
type Options struct {
	NumUsers         int
	NumRecipes       int
	ReviewsPerRecipe int
	// SkipBcrypt hashes with the minimum cost, for tests and quick local runs.
	SkipBcrypt bool
	Curated    bool
}

// Seeder writes demo data through the repository layer so that every
// owner's balance equals the points awarded by the reviews seeded for them.
type Seeder struct {
	db    *gorm.DB
	repos repository.Repos
	tx    repository.TxRunner
	opts  Options
	rng   *rand.Rand
}

// NewSeeder creates a seeder bound to db.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	seed := time.Now().UnixNano()
	gofakeit.Seed(seed)
	return &Seeder{
		db:    db,
		repos: repository.NewRepos(db),
		tx:    repository.NewTxRunner(db),
		opts:  opts,
		//nolint:gosec // Weak random number generator is fine for seeding
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Summary counts what a Run created.
type Summary struct {
	Users   int
	Recipes int
	Reviews int
}

// Run seeds curated fixtures (when enabled) then generated users, recipes and reviews.
func (s *Seeder) Run(ctx context.Context) (*Summary, error) {
	middleware.Logger.Info("starting database seeding",
		"users", s.opts.NumUsers, "recipes", s.opts.NumRecipes, "reviews_per_recipe", s.opts.ReviewsPerRecipe)

	summary := &Summary{}
	var recipes []models.Recipe

	if s.opts.Curated {
		curated, err := s.SeedCurated(ctx)
		if err != nil {
			return nil, fmt.Errorf("seed curated recipes: %w", err)
		}
		recipes = append(recipes, curated...)
		summary.Recipes += len(curated)
	}

	users, err := s.SeedUsers(ctx, s.opts.NumUsers)
	if err != nil {
		return nil, fmt.Errorf("seed users: %w", err)
	}
	summary.Users = len(users)

	generated, err := s.SeedRecipes(ctx, users, s.opts.NumRecipes)
	if err != nil {
		return nil, fmt.Errorf("seed recipes: %w", err)
	}
	recipes = append(recipes, generated...)
	summary.Recipes += len(generated)

	reviews, err := s.SeedReviews(ctx, users, recipes, s.opts.ReviewsPerRecipe)
	if err != nil {
		return nil, fmt.Errorf("seed reviews: %w", err)
	}
	summary.Reviews = reviews

	middleware.Logger.Info("database seeding completed",
		"users", summary.Users, "recipes", summary.Recipes, "reviews", summary.Reviews)
	return summary, nil
}

// ClearAll deletes every row the application owns, children first.
func (s *Seeder) ClearAll(ctx context.Context) error {
	middleware.Logger.Info("clearing existing data")
	db := s.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true})
	for _, model := range []any{
		&models.Voucher{},
		&models.Review{},
		&models.Favourite{},
		&models.ShoppingListItem{},
		&models.Recipe{},
		&models.User{},
	} {
		if err := db.Delete(model).Error; err != nil {
			return fmt.Errorf("clear %T: %w", model, err)
		}
	}
	return nil
}

// SeedCurated inserts the embedded fixture recipes and their owner. It is
// idempotent: an existing owner is kept and recipes already present by name
// are skipped.
func (s *Seeder) SeedCurated(ctx context.Context) ([]models.Recipe, error) {
	set, err := CuratedRecipes()
	if err != nil {
		return nil, err
	}

	hash, err := s.hashPassword()
	if err != nil {
		return nil, err
	}
	owner := models.User{Username: set.Owner, Password: hash}
	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&owner).Error; err != nil {
		return nil, fmt.Errorf("create fixture owner: %w", err)
	}

	existing, err := s.repos.Recipes.ListByUser(ctx, set.Owner)
	if err != nil {
		return nil, err
	}
	have := make(map[string]bool, len(existing))
	for _, r := range existing {
		have[strings.ToLower(r.Name)] = true
	}

	created := make([]models.Recipe, 0, len(set.Recipes))
	for _, fixture := range set.Recipes {
		recipe := fixture.toModel(set.Owner)
		if have[strings.ToLower(recipe.Name)] {
			continue
		}
		if err := s.repos.Recipes.Create(ctx, recipe); err != nil {
			return nil, err
		}
		created = append(created, *recipe)
	}
	return created, nil
}

// SeedUsers creates n users with generated names and dietary preferences.
func (s *Seeder) SeedUsers(ctx context.Context, n int) ([]models.User, error) {
	hash, err := s.hashPassword()
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, n)
	for i := 0; i < n; i++ {
		user := models.User{
			Username:            fakeUsername(i),
			Password:            hash,
			DietaryRestrictions: s.pickLabels(models.DietLabels, 2),
			Allergies:           s.pickLabels(models.HealthLabels, 2),
		}
		if err := s.repos.Users.Create(ctx, &user); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

// SeedRecipes creates n recipes spread across users.
func (s *Seeder) SeedRecipes(ctx context.Context, users []models.User, n int) ([]models.Recipe, error) {
	if len(users) == 0 || n <= 0 {
		return nil, nil
	}

	recipes := make([]models.Recipe, 0, n)
	for i := 0; i < n; i++ {
		owner := users[s.rng.Intn(len(users))]
		recipe := BuildRecipe(owner.Username)
		if err := s.repos.Recipes.Create(ctx, recipe); err != nil {
			return nil, err
		}
		recipes = append(recipes, *recipe)
	}
	return recipes, nil
}

// SeedReviews adds up to perRecipe reviews to every recipe from distinct
// raters other than the owner, crediting the owner in the same transaction.
func (s *Seeder) SeedReviews(ctx context.Context, users []models.User, recipes []models.Recipe, perRecipe int) (int, error) {
	if perRecipe <= 0 {
		return 0, nil
	}

	total := 0
	for _, recipe := range recipes {
		raters := s.rng.Perm(len(users))
		added := 0
		for _, idx := range raters {
			if added == perRecipe {
				break
			}
			rater := users[idx].Username
			if rater == recipe.Username {
				continue
			}

			review := &models.Review{
				Username:    rater,
				RecipeID:    recipe.ID,
				Rating:      gofakeit.Number(models.MinRating, models.MaxRating),
				Description: gofakeit.Sentence(8),
			}
			err := s.tx.InTx(ctx, func(tx repository.Repos) error {
				if err := tx.Reviews.Create(ctx, review); err != nil {
					return err
				}
				return tx.Users.CreditPoints(ctx, recipe.Username, models.PointsForRating(review.Rating))
			})
			if err != nil {
				return total, err
			}
			added++
			total++
		}
	}
	return total, nil
}

// BuildRecipe returns an unsaved recipe with generated content.
func BuildRecipe(owner string) *models.Recipe {
	dish := gofakeit.RandomString([]string{
		gofakeit.Breakfast(), gofakeit.Lunch(), gofakeit.Dinner(), gofakeit.Dessert(),
	})

	ingredients := make([]string, 0, 6)
	for i := gofakeit.Number(3, 6); i > 0; i-- {
		if i%2 == 0 {
			ingredients = append(ingredients, strings.ToLower(gofakeit.Vegetable()))
		} else {
			ingredients = append(ingredients, strings.ToLower(gofakeit.Fruit()))
		}
	}

	steps := make([]string, 0, 4)
	for i := gofakeit.Number(2, 4); i > 0; i-- {
		steps = append(steps, gofakeit.Sentence(10))
	}

	name := dish
	if len(name) > 255 {
		name = name[:255]
	}

	return &models.Recipe{
		Username:    owner,
		Name:        name,
		PrepTime:    fmt.Sprintf("%02d:%02d", gofakeit.Number(0, 2), gofakeit.Number(0, 11)*5),
		ServingSize: gofakeit.Number(1, 8),
		Ingredients: strings.Join(ingredients, ", "),
		Steps:       strings.Join(steps, "\n"),
	}
}

// fakeUsername builds a unique username that passes signup validation.
func fakeUsername(i int) string {
	var b strings.Builder
	for _, r := range strings.ToLower(gofakeit.Username()) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
			b.WriteRune(r)
		}
	}
	base := b.String()
	if base == "" {
		base = "cook"
	}
	if len(base) > 40 {
		base = base[:40]
	}
	return fmt.Sprintf("%s_%d", base, i)
}

func (s *Seeder) pickLabels(labels []string, max int) models.TagList {
	out := models.TagList{}
	for _, idx := range s.rng.Perm(len(labels))[:s.rng.Intn(max+1)] {
		out = append(out, labels[idx])
	}
	return out
}

func (s *Seeder) hashPassword() (string, error) {
	cost := bcrypt.DefaultCost
	if s.opts.SkipBcrypt {
		cost = bcrypt.MinCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), cost)
	if err != nil {
		return "", fmt.Errorf("hash seed password: %w", err)
	}
	return string(hash), nil
}
