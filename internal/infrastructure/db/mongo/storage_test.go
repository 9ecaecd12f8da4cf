package mongo

import (
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/vault42/console/internal/core/domain"
)

func TestFindError(t *testing.T) {
	if err := findError(mongo.ErrNoDocuments); !errors.Is(err, domain.ErrStorageKeyNotFound) {
		t.Fatalf("expected ErrStorageKeyNotFound, got %v", err)
	}

	cause := errors.New("connection reset")
	err := findError(cause)
	if errors.Is(err, domain.ErrStorageKeyNotFound) || !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause, got %v", err)
	}
}

func TestStorageEntry_Document(t *testing.T) {
	raw, err := bson.Marshal(storageEntry{Key: domain.StorageKeySession, Value: `{"userId":"u1"}`, UpdatedAt: 1700000000})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if doc["_id"] != domain.StorageKeySession || doc["value"] != `{"userId":"u1"}` || doc["updated_at"] != int64(1700000000) {
		t.Fatalf("unexpected document %v", doc)
	}
}

func TestUpsertEntry(t *testing.T) {
	now := time.Unix(1700000000, 0)
	update := upsertEntry("v", now)

	set, ok := update["$set"].(bson.M)
	if !ok {
		t.Fatalf("expected $set, got %v", update)
	}
	if set["value"] != "v" || set["updated_at"] != int64(1700000000) {
		t.Fatalf("unexpected update %v", set)
	}
	if _, touchesKey := set["_id"]; touchesKey {
		t.Fatal("the key must not be rewritten")
	}
	if byKey("k")["_id"] != "k" {
		t.Fatal("unexpected filter")
	}
}

func TestCollectionName(t *testing.T) {
	if collectionName("") != DefaultCollection || collectionName("sessions") != "sessions" {
		t.Fatal("unexpected collection names")
	}
}
