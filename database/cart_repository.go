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

// CartRepository defines the interface for per-user cart data access.
// Mutations are expressed as single atomic update operations so concurrent
// requests for the same user cannot lose quantity updates.
type CartRepository interface {
	Get(ctx context.Context, userID string) (*models.Cart, error)
	GetOrCreate(ctx context.Context, userID string) (*models.Cart, error)
	IncrementItem(ctx context.Context, userID string, foodID primitive.ObjectID, quantity int) (bool, error)
	PushItem(ctx context.Context, userID string, foodID primitive.ObjectID, quantity int) error
	SetItemQuantity(ctx context.Context, userID string, foodID primitive.ObjectID, quantity int) (bool, error)
	PullItem(ctx context.Context, userID string, foodID primitive.ObjectID) error
	Clear(ctx context.Context, userID string) (*models.Cart, error)
}

// MongoCartRepository implements CartRepository on the carts collection,
// one document per user keyed by user_id.
type MongoCartRepository struct {
	collection *mongo.Collection
}

func NewCartRepository(db *mongo.Database) *MongoCartRepository {
	return &MongoCartRepository{collection: db.Collection("carts")}
}

// Get returns the user's cart, or nil when none exists yet.
func (r *MongoCartRepository) Get(ctx context.Context, userID string) (*models.Cart, error) {
	var cart models.Cart
	err := r.collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&cart)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// GetOrCreate returns the user's cart, lazily creating an empty one.
func (r *MongoCartRepository) GetOrCreate(ctx context.Context, userID string) (*models.Cart, error) {
	after := options.After
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(after)

	update := bson.M{
		"$setOnInsert": bson.M{
			"user_id":    userID,
			"items":      []models.CartItem{},
			"updated_at": time.Now().UTC(),
		},
	}

	var cart models.Cart
	if err := r.collection.FindOneAndUpdate(ctx, bson.M{"user_id": userID}, update, opts).Decode(&cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// IncrementItem adds quantity to an existing line. It reports false when the
// cart has no line for the food, in which case the caller falls back to
// PushItem.
func (r *MongoCartRepository) IncrementItem(ctx context.Context, userID string, foodID primitive.ObjectID, quantity int) (bool, error) {
	filter := bson.M{"user_id": userID, "items.food_id": foodID}
	update := bson.M{
		"$inc": bson.M{"items.$.quantity": quantity},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	}

	res, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

// PushItem appends a new line, upserting the cart document if absent.
func (r *MongoCartRepository) PushItem(ctx context.Context, userID string, foodID primitive.ObjectID, quantity int) error {
	filter := bson.M{"user_id": userID}
	update := bson.M{
		"$push": bson.M{"items": models.CartItem{FoodID: foodID, Quantity: quantity}},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	}

	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// SetItemQuantity replaces the quantity of an existing line. It reports
// false when no matching line exists.
func (r *MongoCartRepository) SetItemQuantity(ctx context.Context, userID string, foodID primitive.ObjectID, quantity int) (bool, error) {
	filter := bson.M{"user_id": userID, "items.food_id": foodID}
	update := bson.M{
		"$set": bson.M{
			"items.$.quantity": quantity,
			"updated_at":       time.Now().UTC(),
		},
	}

	res, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

// PullItem removes the line for the food. Removing a line that does not
// exist is a no-op.
func (r *MongoCartRepository) PullItem(ctx context.Context, userID string, foodID primitive.ObjectID) error {
	filter := bson.M{"user_id": userID}
	update := bson.M{
		"$pull": bson.M{"items": bson.M{"food_id": foodID}},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	}

	_, err := r.collection.UpdateOne(ctx, filter, update)
	return err
}

// Clear empties the cart via upsert, so it always yields an empty cart even
// when none existed before.
func (r *MongoCartRepository) Clear(ctx context.Context, userID string) (*models.Cart, error) {
	after := options.After
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(after)

	update := bson.M{
		"$set": bson.M{
			"items":      []models.CartItem{},
			"updated_at": time.Now().UTC(),
		},
		"$setOnInsert": bson.M{"user_id": userID},
	}

	var cart models.Cart
	if err := r.collection.FindOneAndUpdate(ctx, bson.M{"user_id": userID}, update, opts).Decode(&cart); err != nil {
		return nil, err
	}
	return &cart, nil
}
