package service

import (
	"context"
	"fmt"

	"github.com/wanderly/travelmarket/internal/models"
	"github.com/wanderly/travelmarket/internal/repo"
)

type CartService struct {
	Repo *repo.GormRepo
}

func (s *CartService) GetCart(ctx context.Context, userID uint) ([]models.CartItem, error) {
	return s.Repo.GetCart(ctx, userID)
}

// AddToCart adds quantity of a listing to the owner's cart, incrementing an
// existing line item for the same listing.
func (s *CartService) AddToCart(ctx context.Context, userID, listingID uint, quantity uint) (*models.CartItem, error) {
	if listingID == 0 {
		return nil, fmt.Errorf("listing id required: %w", ErrValidation)
	}
	if quantity == 0 {
		quantity = 1
	}

	if _, err := s.Repo.GetListing(ctx, listingID); err != nil {
		return nil, err
	}

	item := &models.CartItem{
		UserID:    userID,
		ListingID: listingID,
		Quantity:  quantity,
	}
	if err := s.Repo.AddToCart(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *CartService) RemoveItem(ctx context.Context, userID, itemID uint) error {
	return s.Repo.RemoveCartItem(ctx, userID, itemID)
}

// UpdateQuantity overwrites the line item's quantity; zero or negative
// removes it. Returns nil item when the update was a removal.
func (s *CartService) UpdateQuantity(ctx context.Context, userID, itemID uint, quantity int) (*models.CartItem, error) {
	return s.Repo.SetCartItemQuantity(ctx, userID, itemID, quantity)
}

func (s *CartService) Clear(ctx context.Context, userID uint) error {
	return s.Repo.ClearCart(ctx, userID)
}
