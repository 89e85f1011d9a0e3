package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/pirate444/food-order-app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func newOrderFixture(t *testing.T) (*OrderService, *fakeFoodRepo, *fakePublisher, models.Food) {
	t.Helper()

	foods := newFakeFoodRepo()
	pizza := models.Food{
		Name:        "Margherita Pizza",
		Description: "Classic pizza",
		Price:       12.99,
		Category:    models.CategoryMainCourse,
		Available:   true,
	}
	require.NoError(t, foods.Create(context.Background(), &pizza))

	publisher := &fakePublisher{}
	return NewOrderService(newFakeOrderRepo(), foods, publisher), foods, publisher, pizza
}

func orderRequest(pizza models.Food) *CreateOrderRequest {
	return &CreateOrderRequest{
		Items: []OrderItemRequest{
			{FoodID: pizza.ID.Hex(), Quantity: 1, Price: pizza.Price},
		},
		TotalAmount:     pizza.Price,
		DeliveryAddress: "42 Elm Street",
	}
}

func TestCreateOrder_RejectsEmptyItems(t *testing.T) {
	svc, _, _, _ := newOrderFixture(t)

	_, err := svc.Create(context.Background(), "user-1", &CreateOrderRequest{
		Items:           []OrderItemRequest{},
		DeliveryAddress: "42 Elm Street",
	})
	require.NotNil(t, err)
	assert.Equal(t, http.StatusBadRequest, err.Code)
	assert.Equal(t, "Order must contain at least one item", err.Message)
}

func TestCreateOrder_RejectsEmptyAddress(t *testing.T) {
	svc, _, _, pizza := newOrderFixture(t)

	req := orderRequest(pizza)
	req.DeliveryAddress = "   "
	_, err := svc.Create(context.Background(), "user-1", req)
	require.NotNil(t, err)
	assert.Equal(t, http.StatusBadRequest, err.Code)
}

func TestCreateOrder_RejectsBadLines(t *testing.T) {
	svc, _, _, pizza := newOrderFixture(t)
	ctx := context.Background()

	req := orderRequest(pizza)
	req.Items[0].Quantity = 0
	_, err := svc.Create(ctx, "user-1", req)
	require.NotNil(t, err)
	assert.Equal(t, http.StatusBadRequest, err.Code)

	req = orderRequest(pizza)
	req.Items[0].FoodID = "garbage"
	_, err = svc.Create(ctx, "user-1", req)
	require.NotNil(t, err)
	assert.Equal(t, http.StatusBadRequest, err.Code)

	req = orderRequest(pizza)
	req.TotalAmount = -1
	_, err = svc.Create(ctx, "user-1", req)
	require.NotNil(t, err)
	assert.Equal(t, http.StatusBadRequest, err.Code)
}

func TestCreateOrder_DefaultsToPendingAndPublishes(t *testing.T) {
	svc, _, publisher, pizza := newOrderFixture(t)

	order, err := svc.Create(context.Background(), "user-1", orderRequest(pizza))
	require.Nil(t, err)
	assert.Equal(t, models.StatusPending, order.Status)
	assert.Equal(t, "user-1", order.UserID)
	assert.False(t, order.ID.IsZero())

	require.Len(t, publisher.events, 1)
	assert.Equal(t, "order.created", publisher.events[0].Event)
	assert.Equal(t, order.ID.Hex(), publisher.events[0].OrderID)
}

func TestCreateOrder_PublishFailureDoesNotFailRequest(t *testing.T) {
	svc, _, publisher, pizza := newOrderFixture(t)
	publisher.err = assert.AnError

	order, err := svc.Create(context.Background(), "user-1", orderRequest(pizza))
	require.Nil(t, err)
	assert.Equal(t, models.StatusPending, order.Status)
}

func TestCreateOrder_PersistsCallerTotalAsGiven(t *testing.T) {
	svc, _, _, pizza := newOrderFixture(t)

	// The supplied total is trusted, not recomputed from the lines.
	req := orderRequest(pizza)
	req.TotalAmount = 1.00
	order, err := svc.Create(context.Background(), "user-1", req)
	require.Nil(t, err)
	assert.Equal(t, 1.00, order.TotalAmount)
}

func TestGetByID_EnforcesOwnership(t *testing.T) {
	svc, _, _, pizza := newOrderFixture(t)
	ctx := context.Background()

	order, appErr := svc.Create(ctx, "user-a", orderRequest(pizza))
	require.Nil(t, appErr)

	_, err := svc.GetByID(ctx, "user-b", order.ID.Hex())
	require.NotNil(t, err)
	assert.Equal(t, http.StatusForbidden, err.Code, "existing order of another user is forbidden, not missing")

	got, err := svc.GetByID(ctx, "user-a", order.ID.Hex())
	require.Nil(t, err)
	assert.Equal(t, order.ID, got.ID)
}

func TestGetByID_MissingOrder(t *testing.T) {
	svc, _, _, _ := newOrderFixture(t)

	_, err := svc.GetByID(context.Background(), "user-a", "64a000000000000000000000")
	require.NotNil(t, err)
	assert.Equal(t, http.StatusNotFound, err.Code)
}

func TestOrderLinePriceIsImmutable(t *testing.T) {
	svc, foods, _, pizza := newOrderFixture(t)
	ctx := context.Background()

	req := orderRequest(pizza)
	req.Items[0].Price = 9.99
	order, appErr := svc.Create(ctx, "user-1", req)
	require.Nil(t, appErr)

	_, err := foods.Update(ctx, pizza.ID, bson.M{"price": 15.49})
	require.NoError(t, err)

	got, appErr := svc.GetByID(ctx, "user-1", order.ID.Hex())
	require.Nil(t, appErr)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 9.99, got.Items[0].Price, "captured price must not follow catalog changes")
	require.NotNil(t, got.Items[0].Food)
	assert.Equal(t, 15.49, got.Items[0].Food.Price, "expanded food reflects the current catalog")
}

func TestUpdateStatus(t *testing.T) {
	svc, _, _, pizza := newOrderFixture(t)
	ctx := context.Background()

	order, appErr := svc.Create(ctx, "user-1", orderRequest(pizza))
	require.Nil(t, appErr)

	updated, appErr := svc.UpdateStatus(ctx, order.ID.Hex(), "Delivered")
	require.Nil(t, appErr)
	assert.Equal(t, models.StatusDelivered, updated.Status)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))

	_, err := svc.UpdateStatus(ctx, order.ID.Hex(), "Teleported")
	require.NotNil(t, err)
	assert.Equal(t, http.StatusBadRequest, err.Code)

	_, err = svc.UpdateStatus(ctx, "64a000000000000000000000", "Delivered")
	require.NotNil(t, err)
	assert.Equal(t, http.StatusNotFound, err.Code)
}

func TestGetUserOrders_NewestFirstAndScoped(t *testing.T) {
	svc, _, _, pizza := newOrderFixture(t)
	ctx := context.Background()

	first, appErr := svc.Create(ctx, "user-a", orderRequest(pizza))
	require.Nil(t, appErr)
	second, appErr := svc.Create(ctx, "user-a", orderRequest(pizza))
	require.Nil(t, appErr)
	_, appErr = svc.Create(ctx, "user-b", orderRequest(pizza))
	require.Nil(t, appErr)

	orders, appErr := svc.GetUserOrders(ctx, "user-a")
	require.Nil(t, appErr)
	require.Len(t, orders, 2)
	assert.Equal(t, second.ID, orders[0].ID)
	assert.Equal(t, first.ID, orders[1].ID)
}

func TestListAll_SpansUsers(t *testing.T) {
	svc, _, _, pizza := newOrderFixture(t)
	ctx := context.Background()

	_, appErr := svc.Create(ctx, "user-a", orderRequest(pizza))
	require.Nil(t, appErr)
	_, appErr = svc.Create(ctx, "user-b", orderRequest(pizza))
	require.Nil(t, appErr)

	orders, appErr := svc.ListAll(ctx)
	require.Nil(t, appErr)
	assert.Len(t, orders, 2)
}

// Full order lifecycle across the cart and order engines.
func TestOrderFlow(t *testing.T) {
	foods := newFakeFoodRepo()
	foodSvc := NewFoodService(foods, nil)
	cartSvc := NewCartService(newFakeCartRepo(), foods)
	orderSvc := NewOrderService(newFakeOrderRepo(), foods, nil)
	ctx := context.Background()

	price := 12.99
	pizza, appErr := foodSvc.Create(ctx, &CreateFoodRequest{
		Name:        "Pizza",
		Description: "Wood-fired",
		Price:       &price,
		Category:    models.CategoryMainCourse,
	})
	require.Nil(t, appErr)

	cart, appErr := cartSvc.AddItem(ctx, "user-1", pizza.ID.Hex(), 1)
	require.Nil(t, appErr)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 1, cart.Items[0].Quantity)
	require.NotNil(t, cart.Items[0].Food)
	assert.Equal(t, 12.99, cart.Items[0].Food.Price)

	order, appErr := orderSvc.Create(ctx, "user-1", &CreateOrderRequest{
		Items: []OrderItemRequest{
			{FoodID: pizza.ID.Hex(), Quantity: 1, Price: 12.99},
		},
		TotalAmount:     12.99,
		DeliveryAddress: "42 Elm Street",
	})
	require.Nil(t, appErr)
	assert.Equal(t, models.StatusPending, order.Status)

	_, appErr = orderSvc.UpdateStatus(ctx, order.ID.Hex(), "Delivered")
	require.Nil(t, appErr)

	orders, appErr := orderSvc.GetUserOrders(ctx, "user-1")
	require.Nil(t, appErr)
	require.Len(t, orders, 1)
	assert.Equal(t, models.StatusDelivered, orders[0].Status)
}
