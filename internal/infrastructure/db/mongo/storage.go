package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vault42/console/internal/api/metrics"
	"github.com/vault42/console/internal/core/domain"
	"github.com/vault42/console/internal/core/ports"
)

const driverName = "mongo"

type MongoStorage struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewStorage(coll *mongo.Collection) *MongoStorage {
	return &MongoStorage{coll: coll, now: time.Now}
}

var _ ports.ClientStorage = (*MongoStorage)(nil)

// storageEntry is the document stored per key.
type storageEntry struct {
	Key       string `bson:"_id"`
	Value     string `bson:"value"`
	UpdatedAt int64  `bson:"updated_at"`
}

func byKey(key string) bson.M {
	return bson.M{"_id": key}
}

func upsertEntry(value string, now time.Time) bson.M {
	return bson.M{"$set": bson.M{
		"value":      value,
		"updated_at": now.Unix(),
	}}
}

// findError maps a FindOne failure onto the storage contract.
func findError(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.ErrStorageKeyNotFound
	}
	return fmt.Errorf("find storage entry: %w", err)
}

func (r *MongoStorage) Get(ctx context.Context, key string) (string, error) {
	var e storageEntry
	if err := r.coll.FindOne(ctx, byKey(key)).Decode(&e); err != nil {
		err = findError(err)
		if !errors.Is(err, domain.ErrStorageKeyNotFound) {
			metrics.StorageErrorsTotal.WithLabelValues(driverName, "get").Inc()
		}
		return "", err
	}
	return e.Value, nil
}

func (r *MongoStorage) Set(ctx context.Context, key, value string) error {
	_, err := r.coll.UpdateOne(ctx, byKey(key), upsertEntry(value, r.now()), options.Update().SetUpsert(true))
	if err != nil {
		metrics.StorageErrorsTotal.WithLabelValues(driverName, "set").Inc()
		return fmt.Errorf("upsert storage entry: %w", err)
	}
	return nil
}

func (r *MongoStorage) Remove(ctx context.Context, key string) error {
	if _, err := r.coll.DeleteOne(ctx, byKey(key)); err != nil {
		metrics.StorageErrorsTotal.WithLabelValues(driverName, "remove").Inc()
		return fmt.Errorf("delete storage entry: %w", err)
	}
	return nil
}

func (r *MongoStorage) Ping(ctx context.Context) error {
	return r.coll.Database().Client().Ping(ctx, nil)
}

func (r *MongoStorage) Close(ctx context.Context) error {
	return r.coll.Database().Client().Disconnect(ctx)
}
