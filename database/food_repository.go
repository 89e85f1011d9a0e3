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

// FoodRepository defines the interface for catalog data access
type FoodRepository interface {
	Find(ctx context.Context, category models.Category) ([]models.Food, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Food, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Food, error)
	Create(ctx context.Context, food *models.Food) error
	Update(ctx context.Context, id primitive.ObjectID, updates bson.M) (*models.Food, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// MongoFoodRepository implements FoodRepository on the foods collection
type MongoFoodRepository struct {
	collection *mongo.Collection
}

func NewFoodRepository(db *mongo.Database) *MongoFoodRepository {
	return &MongoFoodRepository{collection: db.Collection("foods")}
}

// Find returns foods newest-first, optionally filtered by exact category.
func (r *MongoFoodRepository) Find(ctx context.Context, category models.Category) ([]models.Food, error) {
	filter := bson.M{}
	if category != "" {
		filter["category"] = category
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	foods := []models.Food{}
	if err := cursor.All(ctx, &foods); err != nil {
		return nil, err
	}
	return foods, nil
}

func (r *MongoFoodRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Food, error) {
	var food models.Food
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&food)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &food, nil
}

// FindByIDs batch-loads foods for the read-side join on cart and order
// responses. Missing ids are simply absent from the result map.
func (r *MongoFoodRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Food, error) {
	result := make(map[primitive.ObjectID]models.Food, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var foods []models.Food
	if err := cursor.All(ctx, &foods); err != nil {
		return nil, err
	}
	for _, f := range foods {
		result[f.ID] = f
	}
	return result, nil
}

func (r *MongoFoodRepository) Create(ctx context.Context, food *models.Food) error {
	food.CreatedAt = time.Now().UTC()
	res, err := r.collection.InsertOne(ctx, food)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		food.ID = oid
	}
	return nil
}

func (r *MongoFoodRepository) Update(ctx context.Context, id primitive.ObjectID, updates bson.M) (*models.Food, error) {
	after := options.After
	opts := options.FindOneAndUpdate().SetReturnDocument(after)

	var food models.Food
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": updates}, opts).Decode(&food)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &food, nil
}

func (r *MongoFoodRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
