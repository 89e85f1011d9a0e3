package database

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// ErrNotFound is returned by repositories when the requested record is absent
var ErrNotFound = errors.New("record not found")

// Connect establishes the MongoDB connection and verifies it with a bounded
// ping. A ping failure is reported to the caller, which may choose to keep
// the client and serve in degraded mode.
func Connect(ctx context.Context, uri, dbName string) (*mongo.Client, *mongo.Database, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(5*time.Second).
		SetSocketTimeout(45*time.Second))
	if err != nil {
		return nil, nil, err
	}

	db := client.Database(dbName)

	pingCtx, cancelPing := context.WithTimeout(ctx, 5*time.Second)
	defer cancelPing()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		return client, db, err
	}

	return client, db, nil
}

// Disconnect closes the MongoDB connection
func Disconnect(ctx context.Context, client *mongo.Client) error {
	if client == nil {
		return nil
	}
	return client.Disconnect(ctx)
}
