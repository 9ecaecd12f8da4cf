// Package mongo backs client storage with a MongoDB collection.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

const (
	connectTimeout = 10 * time.Second

	// DefaultCollection holds one document per storage key.
	DefaultCollection = "client_storage"
)

type Config struct {
	URI        string
	Database   string
	Collection string
	// Timeout bounds connect and the initial ping.
	Timeout time.Duration
}

// Connect verifies the server and returns storage on the configured
// collection. Entries are written and read at majority. Close disconnects
// the client.
func Connect(ctx context.Context, cfg Config) (*MongoStorage, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = connectTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().
		ApplyURI(cfg.URI).
		SetAppName("vault42-console"))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	coll := client.Database(cfg.Database).Collection(collectionName(cfg.Collection), options.Collection().
		SetWriteConcern(writeconcern.Majority()).
		SetReadConcern(readconcern.Majority()))
	return NewStorage(coll), nil
}

func collectionName(name string) string {
	if name == "" {
		return DefaultCollection
	}
	return name
}
