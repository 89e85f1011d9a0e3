package services

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pirate444/food-order-app/cache"
	"github.com/pirate444/food-order-app/database"
	apperrors "github.com/pirate444/food-order-app/errors"
	"github.com/pirate444/food-order-app/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FoodService owns catalog reads and writes
type FoodService struct {
	repo     database.FoodRepository
	cache    *cache.FoodCache
	validate *validator.Validate
}

func NewFoodService(repo database.FoodRepository, foodCache *cache.FoodCache) *FoodService {
	return &FoodService{
		repo:     repo,
		cache:    foodCache,
		validate: validator.New(),
	}
}

// CreateFoodRequest defines the expected structure for creating a food
type CreateFoodRequest struct {
	Name        string          `json:"name" validate:"required,max=100"`
	Description string          `json:"description" validate:"required,max=500"`
	Price       *float64        `json:"price" validate:"required,gte=0"`
	Category    models.Category `json:"category" validate:"required"`
	Image       string          `json:"image"`
	Available   *bool           `json:"available"`
	Rating      *float64        `json:"rating" validate:"omitempty,gte=0,lte=5"`
}

// UpdateFoodRequest carries a partial update; nil fields are left untouched
type UpdateFoodRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string          `json:"description" validate:"omitempty,min=1,max=500"`
	Price       *float64         `json:"price" validate:"omitempty,gte=0"`
	Category    *models.Category `json:"category"`
	Image       *string          `json:"image"`
	Available   *bool            `json:"available"`
	Rating      *float64         `json:"rating" validate:"omitempty,gte=0,lte=5"`
}

// List returns the catalog newest-first, filtered by exact category match
// when one is supplied.
func (s *FoodService) List(ctx context.Context, category string) ([]models.Food, *apperrors.Error) {
	cat := models.Category(category)

	if foods, ok := s.cache.GetList(ctx, cat); ok {
		return foods, nil
	}

	foods, err := s.repo.Find(ctx, cat)
	if err != nil {
		return nil, storeError(err)
	}

	s.cache.SetList(ctx, cat, foods)
	return foods, nil
}

func (s *FoodService) Get(ctx context.Context, id string) (*models.Food, *apperrors.Error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.NotFound("Food not found")
	}

	if food, ok := s.cache.GetFood(ctx, id); ok {
		return food, nil
	}

	food, err := s.repo.FindByID(ctx, oid)
	if errors.Is(err, database.ErrNotFound) {
		return nil, apperrors.NotFound("Food not found")
	}
	if err != nil {
		return nil, storeError(err)
	}

	s.cache.SetFood(ctx, id, food)
	return food, nil
}

func (s *FoodService) Create(ctx context.Context, req *CreateFoodRequest) (*models.Food, *apperrors.Error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.Validation(foodValidationMessage(err))
	}
	if !req.Category.Valid() {
		return nil, apperrors.Validation("Category must be one of Appetizer, Main Course, Dessert, Beverage, Sides")
	}

	food := &models.Food{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Price:       *req.Price,
		Category:    req.Category,
		Image:       req.Image,
		Available:   true,
	}
	if food.Image == "" {
		food.Image = models.DefaultFoodImage
	}
	if req.Available != nil {
		food.Available = *req.Available
	}
	if req.Rating != nil {
		food.Rating = *req.Rating
	}

	if err := s.repo.Create(ctx, food); err != nil {
		return nil, storeError(err)
	}

	s.cache.Invalidate(ctx, "")
	return food, nil
}

func (s *FoodService) Update(ctx context.Context, id string, req *UpdateFoodRequest) (*models.Food, *apperrors.Error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.NotFound("Food not found")
	}

	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.Validation(foodValidationMessage(err))
	}
	if req.Category != nil && !req.Category.Valid() {
		return nil, apperrors.Validation("Category must be one of Appetizer, Main Course, Dessert, Beverage, Sides")
	}

	updates := bson.M{}
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Image != nil {
		updates["image"] = *req.Image
	}
	if req.Available != nil {
		updates["available"] = *req.Available
	}
	if req.Rating != nil {
		updates["rating"] = *req.Rating
	}

	if len(updates) == 0 {
		food, err := s.repo.FindByID(ctx, oid)
		if errors.Is(err, database.ErrNotFound) {
			return nil, apperrors.NotFound("Food not found")
		}
		if err != nil {
			return nil, storeError(err)
		}
		return food, nil
	}

	food, err := s.repo.Update(ctx, oid, updates)
	if errors.Is(err, database.ErrNotFound) {
		return nil, apperrors.NotFound("Food not found")
	}
	if err != nil {
		return nil, storeError(err)
	}

	s.cache.Invalidate(ctx, id)
	return food, nil
}

func (s *FoodService) Delete(ctx context.Context, id string) *apperrors.Error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperrors.NotFound("Food not found")
	}

	err = s.repo.Delete(ctx, oid)
	if errors.Is(err, database.ErrNotFound) {
		return apperrors.NotFound("Food not found")
	}
	if err != nil {
		return storeError(err)
	}

	s.cache.Invalidate(ctx, id)
	return nil
}

// foodValidationMessage renders the first failing constraint as a client
// facing message.
func foodValidationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid food data"
	}

	fe := verrs[0]
	switch fe.Field() {
	case "Name":
		if fe.Tag() == "max" {
			return "Name must be at most 100 characters"
		}
		return "Please provide a food name"
	case "Description":
		if fe.Tag() == "max" {
			return "Description must be at most 500 characters"
		}
		return "Please provide a description"
	case "Price":
		if fe.Tag() == "required" {
			return "Please provide a price"
		}
		return "Price cannot be negative"
	case "Category":
		return "Please provide a category"
	case "Rating":
		return "Rating must be between 0 and 5"
	}
	return "Invalid food data"
}
