package services

import (
	"context"

	"github.com/pirate444/food-order-app/database"
	apperrors "github.com/pirate444/food-order-app/errors"
	"github.com/pirate444/food-order-app/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartService owns the per-user cart mutation rules. Every mutating call
// returns the cart with food references expanded for direct client
// consumption.
type CartService struct {
	carts database.CartRepository
	foods database.FoodRepository
}

func NewCartService(carts database.CartRepository, foods database.FoodRepository) *CartService {
	return &CartService{carts: carts, foods: foods}
}

// GetCart returns the user's cart, lazily creating an empty one
func (s *CartService) GetCart(ctx context.Context, userID string) (*models.CartView, *apperrors.Error) {
	cart, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, storeError(err)
	}
	return s.expand(ctx, cart)
}

// AddItem merges quantity into an existing line for the food, or appends a
// new line. A cart is created on first add.
func (s *CartService) AddItem(ctx context.Context, userID, foodID string, quantity int) (*models.CartView, *apperrors.Error) {
	oid, err := primitive.ObjectIDFromHex(foodID)
	if err != nil || quantity < 1 {
		return nil, apperrors.Validation("Please provide valid food ID and quantity")
	}

	matched, err := s.carts.IncrementItem(ctx, userID, oid, quantity)
	if err != nil {
		return nil, storeError(err)
	}
	if !matched {
		if err := s.carts.PushItem(ctx, userID, oid, quantity); err != nil {
			return nil, storeError(err)
		}
	}

	cart, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, storeError(err)
	}
	return s.expand(ctx, cart)
}

// UpdateItemQuantity sets the line's quantity to the exact given value
func (s *CartService) UpdateItemQuantity(ctx context.Context, userID, foodID string, quantity int) (*models.CartView, *apperrors.Error) {
	oid, err := primitive.ObjectIDFromHex(foodID)
	if err != nil || quantity < 1 {
		return nil, apperrors.Validation("Please provide valid food ID and quantity")
	}

	cart, err := s.carts.Get(ctx, userID)
	if err != nil {
		return nil, storeError(err)
	}
	if cart == nil {
		return nil, apperrors.NotFound("Cart not found")
	}

	matched, err := s.carts.SetItemQuantity(ctx, userID, oid, quantity)
	if err != nil {
		return nil, storeError(err)
	}
	if !matched {
		return nil, apperrors.NotFound("Item not found in cart")
	}

	cart, err = s.carts.Get(ctx, userID)
	if err != nil {
		return nil, storeError(err)
	}
	return s.expand(ctx, cart)
}

// RemoveItem removes the matching line. Removing a line that was never added
// is a silent no-op; only a missing cart is an error.
func (s *CartService) RemoveItem(ctx context.Context, userID, foodID string) (*models.CartView, *apperrors.Error) {
	cart, err := s.carts.Get(ctx, userID)
	if err != nil {
		return nil, storeError(err)
	}
	if cart == nil {
		return nil, apperrors.NotFound("Cart not found")
	}

	if oid, err := primitive.ObjectIDFromHex(foodID); err == nil {
		if err := s.carts.PullItem(ctx, userID, oid); err != nil {
			return nil, storeError(err)
		}
		cart, err = s.carts.Get(ctx, userID)
		if err != nil {
			return nil, storeError(err)
		}
	}

	return s.expand(ctx, cart)
}

// ClearCart empties the line sequence. It upserts, so clearing an absent
// cart still yields an empty cart, and clearing twice is idempotent.
func (s *CartService) ClearCart(ctx context.Context, userID string) (*models.CartView, *apperrors.Error) {
	cart, err := s.carts.Clear(ctx, userID)
	if err != nil {
		return nil, storeError(err)
	}
	return s.expand(ctx, cart)
}

// expand is the read-side join of cart lines to full food documents
func (s *CartService) expand(ctx context.Context, cart *models.Cart) (*models.CartView, *apperrors.Error) {
	ids := make([]primitive.ObjectID, 0, len(cart.Items))
	for _, item := range cart.Items {
		ids = append(ids, item.FoodID)
	}

	foods, err := s.foods.FindByIDs(ctx, ids)
	if err != nil {
		return nil, storeError(err)
	}

	view := &models.CartView{
		ID:        cart.ID,
		UserID:    cart.UserID,
		Items:     make([]models.CartItemView, 0, len(cart.Items)),
		UpdatedAt: cart.UpdatedAt,
	}
	for _, item := range cart.Items {
		var food *models.Food
		if f, ok := foods[item.FoodID]; ok {
			f := f
			food = &f
		}
		view.Items = append(view.Items, models.CartItemView{Food: food, Quantity: item.Quantity})
	}
	return view, nil
}
