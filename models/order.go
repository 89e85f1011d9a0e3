package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStatus is the closed set of fulfillment states
type OrderStatus string

const (
	StatusPending    OrderStatus = "Pending"
	StatusProcessing OrderStatus = "Processing"
	StatusReady      OrderStatus = "Ready"
	StatusDelivered  OrderStatus = "Delivered"
	StatusCancelled  OrderStatus = "Cancelled"
)

// Valid reports whether s is one of the known statuses
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusReady, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// OrderItem captures the unit price at order time; later catalog price
// changes never touch it.
type OrderItem struct {
	FoodID   primitive.ObjectID `json:"food" bson:"food_id"`
	Quantity int                `json:"quantity" bson:"quantity"`
	Price    float64            `json:"price" bson:"price"`
}

type Order struct {
	ID              primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	UserID          string             `json:"user" bson:"user_id"`
	Items           []OrderItem        `json:"items" bson:"items"`
	TotalAmount     float64            `json:"totalAmount" bson:"total_amount"`
	Status          OrderStatus        `json:"status" bson:"status"`
	DeliveryAddress string             `json:"deliveryAddress" bson:"delivery_address"`
	Notes           string             `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt       time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt       time.Time          `json:"updatedAt" bson:"updated_at"`
}

// OrderItemView is an order line with its food reference expanded.
type OrderItemView struct {
	Food     *Food   `json:"food"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type OrderView struct {
	ID              primitive.ObjectID `json:"_id,omitempty"`
	UserID          string             `json:"user"`
	Items           []OrderItemView    `json:"items"`
	TotalAmount     float64            `json:"totalAmount"`
	Status          OrderStatus        `json:"status"`
	DeliveryAddress string             `json:"deliveryAddress"`
	Notes           string             `json:"notes,omitempty"`
	CreatedAt       time.Time          `json:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt"`
}
