package models

// HealthLabels are the health filters understood by the recipe search provider.
var HealthLabels = []string{
	"alcohol-free",
	"celery-free",
	"crustacean-free",
	"dairy-free",
	"egg-free",
	"fish-free",
	"gluten-free",
	"kidney-friendly",
	"kosher",
	"low-potassium",
	"lupine-free",
	"mustard-free",
	"no-oil-added",
	"no-sugar",
	"paleo",
	"peanut-free",
	"pescatarian",
	"pork-free",
	"red-meat-free",
	"sesame-free",
	"shellfish-free",
	"soy-free",
	"sugar-conscious",
	"tree-nut-free",
	"vegan",
	"vegetarian",
	"wheat-free",
}

// DietLabels are the diet filters understood by the recipe search provider.
var DietLabels = []string{
	"balanced",
	"high-fiber",
	"high-protein",
	"low-carb",
	"low-fat",
	"low-sodium",
}
