package server

import (
	"recipebox/internal/service"

	"github.com/gofiber/fiber/v2"
)

type favouriteRequest struct {
	RecipeID   string `json:"recipe_id" validate:"required,max=255"`
	IsExternal bool   `json:"is_external"`
}

type shoppingItemRequest struct {
	ItemName     string `json:"item_name" validate:"required,max=255"`
	ItemQuantity int    `json:"item_quantity" validate:"gte=0"`
}

// GetFavourites handles GET /api/me/favourites
// @Summary List my favourites
// @Tags favourites
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.Favourite
// @Router /me/favourites [get]
func (s *Server) GetFavourites(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	favourites, err := s.favourites.ListFavourites(ctx, currentUsername(c))
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(favourites)
}

// AddFavourite handles POST /api/me/favourites
// @Summary Save a recipe to my favourites
// @Tags favourites
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body favouriteRequest true "Favourite"
// @Success 201 {object} models.Favourite
// @Router /me/favourites [post]
func (s *Server) AddFavourite(c *fiber.Ctx) error {
	var req favouriteRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	fav, err := s.favourites.AddFavourite(ctx, service.AddFavouriteInput{
		Username:   currentUsername(c),
		RecipeID:   req.RecipeID,
		IsExternal: req.IsExternal,
	})
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fav)
}

// RemoveFavourite handles DELETE /api/me/favourites/:recipeId
// @Summary Remove a recipe from my favourites
// @Tags favourites
// @Security BearerAuth
// @Param recipeId path string true "Recipe ID"
// @Param external query bool false "Recipe comes from the search provider"
// @Success 204
// @Failure 404 {object} models.ErrorResponse
// @Router /me/favourites/{recipeId} [delete]
func (s *Server) RemoveFavourite(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	err := s.favourites.RemoveFavourite(ctx, currentUsername(c), c.Params("recipeId"), c.QueryBool("external", false))
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetShoppingList handles GET /api/me/shopping-list
// @Summary List my shopping list
// @Tags shopping-list
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.ShoppingListItem
// @Router /me/shopping-list [get]
func (s *Server) GetShoppingList(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	items, err := s.shoppingList.ListItems(ctx, currentUsername(c))
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(items)
}

// AddShoppingItem handles POST /api/me/shopping-list
// @Summary Add an item to my shopping list
// @Tags shopping-list
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body shoppingItemRequest true "Item"
// @Success 201 {object} models.ShoppingListItem
// @Router /me/shopping-list [post]
func (s *Server) AddShoppingItem(c *fiber.Ctx) error {
	var req shoppingItemRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	item, err := s.shoppingList.AddItem(ctx, service.AddShoppingItemInput{
		Username: currentUsername(c),
		ItemName: req.ItemName,
		Quantity: req.ItemQuantity,
	})
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// RemoveShoppingItem handles DELETE /api/me/shopping-list/:id
// @Summary Remove an item from my shopping list
// @Tags shopping-list
// @Security BearerAuth
// @Param id path int true "Item ID"
// @Success 204
// @Failure 404 {object} models.ErrorResponse
// @Router /me/shopping-list/{id} [delete]
func (s *Server) RemoveShoppingItem(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := s.shoppingList.RemoveItem(ctx, currentUsername(c), id); err != nil {
		return mapServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
