package server

import (
	"strconv"

	"recipebox/internal/service"

	"github.com/gofiber/fiber/v2"
)

type createRecipeRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	PrepTime    string `json:"prep_time" validate:"omitempty,prep_time"`
	ServingSize int    `json:"serving_size" validate:"gte=0"`
	Steps       string `json:"steps"`
	Ingredients string `json:"ingredients"`
}

type updateRecipeRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=255"`
	PrepTime    *string `json:"prep_time" validate:"omitempty,prep_time"`
	ServingSize *int    `json:"serving_size" validate:"omitempty,gte=0"`
	Steps       *string `json:"steps"`
	Ingredients *string `json:"ingredients"`
}

type reviewRequest struct {
	Rating      int    `json:"rating" validate:"gte=1,lte=5"`
	Description string `json:"description" validate:"max=2000"`
}

// GetRecipes handles GET /api/recipes
// @Summary List or search recipes
// @Description Without q, lists every recipe newest first. With q, matches any
// @Description comma-separated term against name or ingredients.
// @Tags recipes
// @Produce json
// @Param q query string false "Comma-separated search terms"
// @Param sort query string false "rating to order like the leaderboard"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset"
// @Success 200 {array} models.Recipe
// @Router /recipes [get]
func (s *Server) GetRecipes(c *fiber.Ctx) error {
	page := parsePagination(c, 20)

	ctx, cancel := requestContext(c)
	defer cancel()

	q := c.Query("q")
	if q == "" && c.Query("sort") != "rating" {
		recipes, err := s.recipes.ListAll(ctx, page.Limit, page.Offset)
		if err != nil {
			return mapServiceError(c, err)
		}
		return c.JSON(recipes)
	}

	recipes, err := s.recipes.SearchRecipes(ctx, service.SearchRecipesInput{
		Query:    q,
		ByRating: c.Query("sort") == "rating",
		Limit:    page.Limit,
		Offset:   page.Offset,
	})
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(recipes)
}

// GetTopRated handles GET /api/recipes/top-rated
// @Summary Leaderboard of recipes by average rating
// @Tags recipes
// @Produce json
// @Param limit query int false "Number of recipes (default 10, max 100)"
// @Success 200 {array} models.Recipe
// @Router /recipes/top-rated [get]
func (s *Server) GetTopRated(c *fiber.Ctx) error {
	// Non-numeric limits fall back to the default.
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil {
		limit = 0
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	recipes, err := s.leaderboard.TopRated(ctx, limit)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(recipes)
}

// GetRecipe handles GET /api/recipes/:id
// @Summary Get a recipe
// @Tags recipes
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 200 {object} models.Recipe
// @Failure 404 {object} models.ErrorResponse
// @Router /recipes/{id} [get]
func (s *Server) GetRecipe(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	recipe, err := s.recipes.GetRecipe(ctx, id)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(recipe)
}

// GetRecipeReviews handles GET /api/recipes/:id/reviews
// @Summary List reviews of a recipe, newest first
// @Tags reviews
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 200 {array} models.Review
// @Router /recipes/{id}/reviews [get]
func (s *Server) GetRecipeReviews(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	reviews, err := s.leaderboard.ReviewsFor(ctx, id)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(reviews)
}

// SubmitReview handles POST /api/recipes/:id/reviews
// @Summary Rate a recipe
// @Description Stores the review and credits the recipe owner 100 points for
// @Description a 5, 50 for a 4 and nothing otherwise.
// @Tags reviews
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Recipe ID"
// @Param request body reviewRequest true "Review"
// @Success 201 {object} service.RatingResult
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /recipes/{id}/reviews [post]
func (s *Server) SubmitReview(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	var req reviewRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	result, err := s.ledger.SubmitRating(ctx, service.SubmitRatingInput{
		Rater:       currentUsername(c),
		RecipeID:    id,
		Rating:      req.Rating,
		Description: req.Description,
	})
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

// GetMyRecipes handles GET /api/me/recipes
// @Summary List my recipes
// @Tags recipes
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.Recipe
// @Router /me/recipes [get]
func (s *Server) GetMyRecipes(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	recipes, err := s.recipes.ListMine(ctx, currentUsername(c))
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(recipes)
}

// CreateRecipe handles POST /api/recipes
// @Summary Create a recipe
// @Tags recipes
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body createRecipeRequest true "Recipe"
// @Success 201 {object} models.Recipe
// @Failure 400 {object} models.ErrorResponse
// @Router /recipes [post]
func (s *Server) CreateRecipe(c *fiber.Ctx) error {
	var req createRecipeRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	recipe, err := s.recipes.CreateRecipe(ctx, service.CreateRecipeInput{
		Username:    currentUsername(c),
		Name:        req.Name,
		PrepTime:    req.PrepTime,
		ServingSize: req.ServingSize,
		Steps:       req.Steps,
		Ingredients: req.Ingredients,
	})
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(recipe)
}

// UpdateRecipe handles PUT /api/recipes/:id
// @Summary Update my recipe
// @Description Only the fields present in the body change.
// @Tags recipes
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Recipe ID"
// @Param request body updateRecipeRequest true "Fields to change"
// @Success 200 {object} models.Recipe
// @Failure 404 {object} models.ErrorResponse
// @Router /recipes/{id} [put]
func (s *Server) UpdateRecipe(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	var req updateRecipeRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	recipe, err := s.recipes.UpdateRecipe(ctx, service.UpdateRecipeInput{
		Username:    currentUsername(c),
		RecipeID:    id,
		Name:        req.Name,
		PrepTime:    req.PrepTime,
		ServingSize: req.ServingSize,
		Steps:       req.Steps,
		Ingredients: req.Ingredients,
	})
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(recipe)
}

// DeleteRecipe handles DELETE /api/recipes/:id
// @Summary Delete my recipe and its reviews
// @Tags recipes
// @Security BearerAuth
// @Param id path int true "Recipe ID"
// @Success 204
// @Failure 404 {object} models.ErrorResponse
// @Router /recipes/{id} [delete]
func (s *Server) DeleteRecipe(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := s.recipes.DeleteRecipe(ctx, currentUsername(c), id); err != nil {
		return mapServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
