package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem is a single line in a cart. At most one line exists per food.
type CartItem struct {
	FoodID   primitive.ObjectID `json:"food" bson:"food_id"`
	Quantity int                `json:"quantity" bson:"quantity"`
}

type Cart struct {
	ID        primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	UserID    string             `json:"user" bson:"user_id"`
	Items     []CartItem         `json:"items" bson:"items"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updated_at"`
}

// CartItemView is a cart line with its food reference expanded.
// Food is nil when the catalog entry has since been deleted.
type CartItemView struct {
	Food     *Food `json:"food"`
	Quantity int   `json:"quantity"`
}

type CartView struct {
	ID        primitive.ObjectID `json:"_id,omitempty"`
	UserID    string             `json:"user"`
	Items     []CartItemView     `json:"items"`
	UpdatedAt time.Time          `json:"updatedAt"`
}
