package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/pirate444/food-order-app/database"
	apperrors "github.com/pirate444/food-order-app/errors"
	"github.com/pirate444/food-order-app/events"
	"github.com/pirate444/food-order-app/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// OrderService snapshots carts into immutable orders and manages their
// fulfillment status.
type OrderService struct {
	orders    database.OrderRepository
	foods     database.FoodRepository
	publisher events.OrderPublisher
}

func NewOrderService(orders database.OrderRepository, foods database.FoodRepository, publisher events.OrderPublisher) *OrderService {
	return &OrderService{
		orders:    orders,
		foods:     foods,
		publisher: publisher,
	}
}

type OrderItemRequest struct {
	FoodID   string  `json:"food"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type CreateOrderRequest struct {
	Items           []OrderItemRequest `json:"items"`
	TotalAmount     float64            `json:"totalAmount"`
	DeliveryAddress string             `json:"deliveryAddress"`
	Notes           string             `json:"notes"`
}

// Create persists an order owned by userID. Line prices and the total are
// taken from the caller as given; prices are captured here and never change
// afterwards.
func (s *OrderService) Create(ctx context.Context, userID string, req *CreateOrderRequest) (*models.OrderView, *apperrors.Error) {
	if len(req.Items) == 0 {
		return nil, apperrors.Validation("Order must contain at least one item")
	}
	if strings.TrimSpace(req.DeliveryAddress) == "" {
		return nil, apperrors.Validation("Please provide a delivery address")
	}
	if req.TotalAmount < 0 {
		return nil, apperrors.Validation("Total amount cannot be negative")
	}

	items := make([]models.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		oid, err := primitive.ObjectIDFromHex(item.FoodID)
		if err != nil {
			return nil, apperrors.Validation("Please provide valid order items")
		}
		if item.Quantity < 1 {
			return nil, apperrors.Validation("Item quantity must be at least 1")
		}
		if item.Price < 0 {
			return nil, apperrors.Validation("Item price cannot be negative")
		}
		items = append(items, models.OrderItem{
			FoodID:   oid,
			Quantity: item.Quantity,
			Price:    item.Price,
		})
	}

	order := &models.Order{
		UserID:          userID,
		Items:           items,
		TotalAmount:     req.TotalAmount,
		Status:          models.StatusPending,
		DeliveryAddress: strings.TrimSpace(req.DeliveryAddress),
		Notes:           req.Notes,
	}

	if err := s.orders.Insert(ctx, order); err != nil {
		return nil, storeError(err)
	}

	s.publishCreated(order)

	return s.expand(ctx, order)
}

// GetUserOrders returns all orders owned by userID, newest-first
func (s *OrderService) GetUserOrders(ctx context.Context, userID string) ([]models.OrderView, *apperrors.Error) {
	orders, err := s.orders.FindByUserID(ctx, userID)
	if err != nil {
		return nil, storeError(err)
	}
	return s.expandMany(ctx, orders)
}

// GetByID enforces row-level ownership: 404 when the order does not exist,
// 403 when it belongs to someone else.
func (s *OrderService) GetByID(ctx context.Context, userID, orderID string) (*models.OrderView, *apperrors.Error) {
	oid, err := primitive.ObjectIDFromHex(orderID)
	if err != nil {
		return nil, apperrors.NotFound("Order not found")
	}

	order, err := s.orders.FindByID(ctx, oid)
	if errors.Is(err, database.ErrNotFound) {
		return nil, apperrors.NotFound("Order not found")
	}
	if err != nil {
		return nil, storeError(err)
	}

	if order.UserID != userID {
		return nil, apperrors.Forbidden("Not authorized to view this order")
	}

	return s.expand(ctx, order)
}

// UpdateStatus sets the order's status to any of the closed enum values.
// Transitions are not restricted to forward-only.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID, status string) (*models.OrderView, *apperrors.Error) {
	st := models.OrderStatus(status)
	if !st.Valid() {
		return nil, apperrors.Validation("Invalid order status")
	}

	oid, err := primitive.ObjectIDFromHex(orderID)
	if err != nil {
		return nil, apperrors.NotFound("Order not found")
	}

	order, err := s.orders.UpdateStatus(ctx, oid, st)
	if errors.Is(err, database.ErrNotFound) {
		return nil, apperrors.NotFound("Order not found")
	}
	if err != nil {
		return nil, storeError(err)
	}

	return s.expand(ctx, order)
}

// ListAll returns every order across all users, newest-first. Administrative
// use only.
func (s *OrderService) ListAll(ctx context.Context) ([]models.OrderView, *apperrors.Error) {
	orders, err := s.orders.FindAll(ctx)
	if err != nil {
		return nil, storeError(err)
	}
	return s.expandMany(ctx, orders)
}

// publishCreated emits a best-effort order.created event. Failures are
// logged and never fail the originating request.
func (s *OrderService) publishCreated(order *models.Order) {
	if s.publisher == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	event := events.OrderCreatedEvent{
		Event:       "order.created",
		OrderID:     order.ID.Hex(),
		UserID:      order.UserID,
		TotalAmount: order.TotalAmount,
		Status:      string(order.Status),
		Timestamp:   time.Now().UTC(),
	}
	if err := s.publisher.SendOrderCreated(ctx, event); err != nil {
		zap.L().Warn("Failed to publish order.created event",
			zap.Error(err),
			zap.String("order_id", event.OrderID))
	}
}

func (s *OrderService) expand(ctx context.Context, order *models.Order) (*models.OrderView, *apperrors.Error) {
	views, err := s.expandMany(ctx, []models.Order{*order})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// expandMany joins order lines to food documents with a single batched
// lookup across all orders.
func (s *OrderService) expandMany(ctx context.Context, orders []models.Order) ([]models.OrderView, *apperrors.Error) {
	idSet := make(map[primitive.ObjectID]struct{})
	for _, order := range orders {
		for _, item := range order.Items {
			idSet[item.FoodID] = struct{}{}
		}
	}
	ids := make([]primitive.ObjectID, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	foods, err := s.foods.FindByIDs(ctx, ids)
	if err != nil {
		return nil, storeError(err)
	}

	views := make([]models.OrderView, 0, len(orders))
	for _, order := range orders {
		view := models.OrderView{
			ID:              order.ID,
			UserID:          order.UserID,
			Items:           make([]models.OrderItemView, 0, len(order.Items)),
			TotalAmount:     order.TotalAmount,
			Status:          order.Status,
			DeliveryAddress: order.DeliveryAddress,
			Notes:           order.Notes,
			CreatedAt:       order.CreatedAt,
			UpdatedAt:       order.UpdatedAt,
		}
		for _, item := range order.Items {
			var food *models.Food
			if f, ok := foods[item.FoodID]; ok {
				f := f
				food = &f
			}
			view.Items = append(view.Items, models.OrderItemView{
				Food:     food,
				Quantity: item.Quantity,
				Price:    item.Price,
			})
		}
		views = append(views, view)
	}
	return views, nil
}
