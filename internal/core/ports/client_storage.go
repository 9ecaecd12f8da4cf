package ports

import "context"

// ClientStorage persists string blobs under well-known keys. Each Get, Set or
// Remove is atomic for a single key.
type ClientStorage interface {
	// Get returns domain.ErrStorageKeyNotFound when key is absent.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	// Remove succeeds when key is already absent.
	Remove(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}
