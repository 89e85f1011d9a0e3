package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/pirate444/food-order-app/database"
	"github.com/pirate444/food-order-app/events"
	"github.com/pirate444/food-order-app/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory fakes implementing the repository interfaces with the same
// atomic semantics as the mongo implementations.

type fakeFoodRepo struct {
	mu    sync.Mutex
	foods map[primitive.ObjectID]models.Food
	clock time.Time
}

func newFakeFoodRepo() *fakeFoodRepo {
	return &fakeFoodRepo{
		foods: make(map[primitive.ObjectID]models.Food),
		clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (r *fakeFoodRepo) tick() time.Time {
	r.clock = r.clock.Add(time.Second)
	return r.clock
}

func (r *fakeFoodRepo) Find(ctx context.Context, category models.Category) ([]models.Food, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []models.Food{}
	for _, f := range r.foods {
		if category == "" || f.Category == category {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeFoodRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Food, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, ok := r.foods[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &f, nil
}

func (r *fakeFoodRepo) FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Food, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[primitive.ObjectID]models.Food, len(ids))
	for _, id := range ids {
		if f, ok := r.foods[id]; ok {
			out[id] = f
		}
	}
	return out, nil
}

func (r *fakeFoodRepo) Create(ctx context.Context, food *models.Food) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	food.ID = primitive.NewObjectID()
	food.CreatedAt = r.tick()
	r.foods[food.ID] = *food
	return nil
}

func (r *fakeFoodRepo) Update(ctx context.Context, id primitive.ObjectID, updates bson.M) (*models.Food, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, ok := r.foods[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	for k, v := range updates {
		switch k {
		case "name":
			f.Name = v.(string)
		case "description":
			f.Description = v.(string)
		case "price":
			f.Price = v.(float64)
		case "category":
			f.Category = v.(models.Category)
		case "image":
			f.Image = v.(string)
		case "available":
			f.Available = v.(bool)
		case "rating":
			f.Rating = v.(float64)
		}
	}
	r.foods[id] = f
	return &f, nil
}

func (r *fakeFoodRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.foods[id]; !ok {
		return database.ErrNotFound
	}
	delete(r.foods, id)
	return nil
}

type fakeCartRepo struct {
	mu    sync.Mutex
	carts map[string]*models.Cart
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: make(map[string]*models.Cart)}
}

func (r *fakeCartRepo) Get(ctx context.Context, userID string) (*models.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cart, ok := r.carts[userID]
	if !ok {
		return nil, nil
	}
	copied := *cart
	copied.Items = append([]models.CartItem(nil), cart.Items...)
	return &copied, nil
}

func (r *fakeCartRepo) GetOrCreate(ctx context.Context, userID string) (*models.Cart, error) {
	r.mu.Lock()
	if _, ok := r.carts[userID]; !ok {
		r.carts[userID] = &models.Cart{
			ID:        primitive.NewObjectID(),
			UserID:    userID,
			Items:     []models.CartItem{},
			UpdatedAt: time.Now().UTC(),
		}
	}
	r.mu.Unlock()
	return r.Get(ctx, userID)
}

func (r *fakeCartRepo) IncrementItem(ctx context.Context, userID string, foodID primitive.ObjectID, quantity int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cart, ok := r.carts[userID]
	if !ok {
		return false, nil
	}
	for i := range cart.Items {
		if cart.Items[i].FoodID == foodID {
			cart.Items[i].Quantity += quantity
			cart.UpdatedAt = time.Now().UTC()
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCartRepo) PushItem(ctx context.Context, userID string, foodID primitive.ObjectID, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cart, ok := r.carts[userID]
	if !ok {
		cart = &models.Cart{ID: primitive.NewObjectID(), UserID: userID, Items: []models.CartItem{}}
		r.carts[userID] = cart
	}
	cart.Items = append(cart.Items, models.CartItem{FoodID: foodID, Quantity: quantity})
	cart.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *fakeCartRepo) SetItemQuantity(ctx context.Context, userID string, foodID primitive.ObjectID, quantity int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cart, ok := r.carts[userID]
	if !ok {
		return false, nil
	}
	for i := range cart.Items {
		if cart.Items[i].FoodID == foodID {
			cart.Items[i].Quantity = quantity
			cart.UpdatedAt = time.Now().UTC()
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCartRepo) PullItem(ctx context.Context, userID string, foodID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cart, ok := r.carts[userID]
	if !ok {
		return nil
	}
	items := cart.Items[:0]
	for _, item := range cart.Items {
		if item.FoodID != foodID {
			items = append(items, item)
		}
	}
	cart.Items = items
	cart.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *fakeCartRepo) Clear(ctx context.Context, userID string) (*models.Cart, error) {
	r.mu.Lock()
	cart, ok := r.carts[userID]
	if !ok {
		cart = &models.Cart{ID: primitive.NewObjectID(), UserID: userID}
		r.carts[userID] = cart
	}
	cart.Items = []models.CartItem{}
	cart.UpdatedAt = time.Now().UTC()
	r.mu.Unlock()
	return r.Get(ctx, userID)
}

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[primitive.ObjectID]models.Order
	clock  time.Time
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{
		orders: make(map[primitive.ObjectID]models.Order),
		clock:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (r *fakeOrderRepo) tick() time.Time {
	r.clock = r.clock.Add(time.Second)
	return r.clock
}

func (r *fakeOrderRepo) Insert(ctx context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order.ID = primitive.NewObjectID()
	now := r.tick()
	order.CreatedAt = now
	order.UpdatedAt = now
	r.orders[order.ID] = *order
	return nil
}

func (r *fakeOrderRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &order, nil
}

func (r *fakeOrderRepo) FindByUserID(ctx context.Context, userID string) ([]models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []models.Order{}
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeOrderRepo) FindAll(ctx context.Context) ([]models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []models.Order{}
	for _, o := range r.orders {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeOrderRepo) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.OrderStatus) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	order.Status = status
	order.UpdatedAt = r.tick()
	r.orders[id] = order
	return &order, nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []events.OrderCreatedEvent
	err    error
}

func (p *fakePublisher) SendOrderCreated(ctx context.Context, event events.OrderCreatedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}
