package service

import (
	"context"
	"strings"

	"recipebox/internal/models"
	"recipebox/internal/repository"
)

type FavouriteService struct {
	favouriteRepo repository.FavouriteRepository
}

type AddFavouriteInput struct {
	Username   string
	RecipeID   string
	IsExternal bool
}

func NewFavouriteService(favouriteRepo repository.FavouriteRepository) *FavouriteService {
	return &FavouriteService{favouriteRepo: favouriteRepo}
}

// AddFavourite saves a recipe for the user. Saving it twice is a no-op.
func (s *FavouriteService) AddFavourite(ctx context.Context, in AddFavouriteInput) (*models.Favourite, error) {
	recipeID := strings.TrimSpace(in.RecipeID)
	if recipeID == "" {
		return nil, models.NewValidationError("Recipe ID is required")
	}
	fav := &models.Favourite{Username: in.Username, RecipeID: recipeID, IsExternal: in.IsExternal}
	if err := s.favouriteRepo.Add(ctx, fav); err != nil {
		return nil, err
	}
	return fav, nil
}

func (s *FavouriteService) ListFavourites(ctx context.Context, username string) ([]models.Favourite, error) {
	return s.favouriteRepo.List(ctx, username)
}

func (s *FavouriteService) RemoveFavourite(ctx context.Context, username, recipeID string, external bool) error {
	return s.favouriteRepo.Remove(ctx, username, strings.TrimSpace(recipeID), external)
}

type ShoppingListService struct {
	itemRepo repository.ShoppingListRepository
}

type AddShoppingItemInput struct {
	Username string
	ItemName string
	Quantity int
}

func NewShoppingListService(itemRepo repository.ShoppingListRepository) *ShoppingListService {
	return &ShoppingListService{itemRepo: itemRepo}
}

func (s *ShoppingListService) AddItem(ctx context.Context, in AddShoppingItemInput) (*models.ShoppingListItem, error) {
	name := strings.TrimSpace(in.ItemName)
	if name == "" {
		return nil, models.NewValidationError("Item name is required")
	}
	quantity := in.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 1 {
		return nil, models.NewValidationError("Quantity must be at least 1")
	}

	item := &models.ShoppingListItem{Username: in.Username, ItemName: name, ItemQuantity: quantity}
	if err := s.itemRepo.Add(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *ShoppingListService) ListItems(ctx context.Context, username string) ([]models.ShoppingListItem, error) {
	return s.itemRepo.List(ctx, username)
}

func (s *ShoppingListService) RemoveItem(ctx context.Context, username string, id uint) error {
	return s.itemRepo.Remove(ctx, username, id)
}
