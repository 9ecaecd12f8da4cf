package service

import (
	"context"

	"github.com/vault42/console/internal/core/domain"
)

type sessionStoreKey struct{}

// WithSessionStore scopes ctx with the process session store.
func WithSessionStore(ctx context.Context, s *SessionStore) context.Context {
	return context.WithValue(ctx, sessionStoreKey{}, s)
}

// SessionStoreFrom returns the store scoped on ctx or domain.ErrContextMissing.
func SessionStoreFrom(ctx context.Context) (*SessionStore, error) {
	s, ok := ctx.Value(sessionStoreKey{}).(*SessionStore)
	if !ok || s == nil {
		return nil, domain.ErrContextMissing
	}
	return s, nil
}

// MustSessionStore panics with domain.ErrContextMissing when ctx has no store.
func MustSessionStore(ctx context.Context) *SessionStore {
	s, err := SessionStoreFrom(ctx)
	if err != nil {
		panic(err)
	}
	return s
}
