package database

import (
	"context"
	"errors"
	"time"

	"github.com/pirate444/food-order-app/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// OrderRepository defines the interface for order data access
type OrderRepository interface {
	Insert(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	FindByUserID(ctx context.Context, userID string) ([]models.Order, error)
	FindAll(ctx context.Context) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.OrderStatus) (*models.Order, error)
}

// MongoOrderRepository implements OrderRepository on the orders collection
type MongoOrderRepository struct {
	collection *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *MongoOrderRepository {
	return &MongoOrderRepository{collection: db.Collection("orders")}
}

func (r *MongoOrderRepository) Insert(ctx context.Context, order *models.Order) error {
	now := time.Now().UTC()
	order.CreatedAt = now
	order.UpdatedAt = now

	res, err := r.collection.InsertOne(ctx, order)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		order.ID = oid
	}
	return nil
}

func (r *MongoOrderRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *MongoOrderRepository) FindByUserID(ctx context.Context, userID string) ([]models.Order, error) {
	return r.find(ctx, bson.M{"user_id": userID})
}

func (r *MongoOrderRepository) FindAll(ctx context.Context) ([]models.Order, error) {
	return r.find(ctx, bson.M{})
}

func (r *MongoOrderRepository) find(ctx context.Context, filter bson.M) ([]models.Order, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateStatus sets the fulfillment status and refreshes updated_at.
func (r *MongoOrderRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.OrderStatus) (*models.Order, error) {
	after := options.After
	opts := options.FindOneAndUpdate().SetReturnDocument(after)

	update := bson.M{
		"$set": bson.M{
			"status":     status,
			"updated_at": time.Now().UTC(),
		},
	}

	var order models.Order
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}
