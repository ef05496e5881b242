package seed

import (
	_ "embed"
	"fmt"
	"strings"

	"recipebox/internal/models"

	"gopkg.in/yaml.v3"
)

//go:embed fixtures/recipes.yaml
var curatedRecipesYAML []byte

// FixtureRecipe is one curated recipe shipped with the seeder.
type FixtureRecipe struct {
	Name        string `yaml:"name"`
	PrepTime    string `yaml:"prep_time"`
	ServingSize int    `yaml:"serving_size"`
	Ingredients string `yaml:"ingredients"`
	Steps       string `yaml:"steps"`
}

// FixtureSet is the decoded fixture file: every recipe belongs to Owner.
type FixtureSet struct {
	Owner   string          `yaml:"owner"`
	Recipes []FixtureRecipe `yaml:"recipes"`
}

// CuratedRecipes decodes the embedded fixture file.
func CuratedRecipes() (*FixtureSet, error) {
	return ParseFixtures(curatedRecipesYAML)
}

// ParseFixtures decodes a fixture document and checks that it is usable.
func ParseFixtures(raw []byte) (*FixtureSet, error) {
	var set FixtureSet
	if err := yaml.Unmarshal(raw, &set); err != nil {
		return nil, fmt.Errorf("decode fixtures: %w", err)
	}
	set.Owner = strings.TrimSpace(set.Owner)
	if set.Owner == "" {
		return nil, fmt.Errorf("fixtures: owner is required")
	}
	for i, r := range set.Recipes {
		if strings.TrimSpace(r.Name) == "" {
			return nil, fmt.Errorf("fixtures: recipe %d has no name", i)
		}
	}
	return &set, nil
}

// toModel converts the fixture into a recipe owned by owner.
func (r FixtureRecipe) toModel(owner string) *models.Recipe {
	return &models.Recipe{
		Username:    owner,
		Name:        strings.TrimSpace(r.Name),
		PrepTime:    models.FormatPrepTime(r.PrepTime),
		ServingSize: r.ServingSize,
		Ingredients: strings.TrimSpace(r.Ingredients),
		Steps:       strings.TrimSpace(r.Steps),
	}
}
