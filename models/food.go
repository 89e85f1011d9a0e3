package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category is the closed set of menu categories
type Category string

const (
	CategoryAppetizer  Category = "Appetizer"
	CategoryMainCourse Category = "Main Course"
	CategoryDessert    Category = "Dessert"
	CategoryBeverage   Category = "Beverage"
	CategorySides      Category = "Sides"
)

// Valid reports whether c is one of the known categories
func (c Category) Valid() bool {
	switch c {
	case CategoryAppetizer, CategoryMainCourse, CategoryDessert, CategoryBeverage, CategorySides:
		return true
	}
	return false
}

// DefaultFoodImage is used when no image is supplied
const DefaultFoodImage = "https://via.placeholder.com/300"

type Food struct {
	ID          primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description" bson:"description"`
	Price       float64            `json:"price" bson:"price"`
	Category    Category           `json:"category" bson:"category"`
	Image       string             `json:"image" bson:"image"`
	Available   bool               `json:"available" bson:"available"`
	Rating      float64            `json:"rating" bson:"rating"`
	CreatedAt   time.Time          `json:"createdAt" bson:"created_at"`
}
