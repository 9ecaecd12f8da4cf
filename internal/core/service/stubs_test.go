package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vault42/console/internal/core/domain"
)

// memStorage is a ClientStorage with per-operation failure injection.
type memStorage struct {
	mu      sync.Mutex
	data    map[string]string
	getErr  error
	setErr  error
	removed []string
}

func newMemStorage() *memStorage {
	return &memStorage{data: make(map[string]string)}
}

func (m *memStorage) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return "", m.getErr
	}
	v, ok := m.data[key]
	if !ok {
		return "", domain.ErrStorageKeyNotFound
	}
	return v, nil
}

func (m *memStorage) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	return nil
}

func (m *memStorage) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.removed = append(m.removed, key)
	delete(m.data, key)
	return nil
}

func (m *memStorage) Ping(context.Context) error { return nil }

func (m *memStorage) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok
}

// routeRecorder is a Navigator that remembers every route.
type routeRecorder struct {
	routes []string
}

func (r *routeRecorder) Navigate(route string) { r.routes = append(r.routes, route) }

func (r *routeRecorder) last() string {
	if len(r.routes) == 0 {
		return ""
	}
	return r.routes[len(r.routes)-1]
}

// fakeSessions is a minimal ScopedSessions.
type fakeSessions struct {
	mu      sync.Mutex
	sess    *domain.Session
	gen     uint64
	loginFn func(ctx context.Context, token, email string) (string, error)
	updates []domain.SessionUpdate
}

func (f *fakeSessions) Login(ctx context.Context, token, email string) (string, error) {
	return f.loginFn(ctx, token, email)
}

func (f *fakeSessions) Logout(context.Context) {
	f.mu.Lock()
	f.sess = nil
	f.gen++
	f.mu.Unlock()
}

func (f *fakeSessions) Generation() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.gen
}

func (f *fakeSessions) Commit(gen uint64, write func() error) (bool, error) {
	if f.Generation() != gen {
		return false, nil
	}
	return true, write()
}

func (f *fakeSessions) UpdateUser(_ context.Context, u domain.SessionUpdate) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, u)
}

func (f *fakeSessions) Current() (domain.Session, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sess == nil {
		return domain.Session{}, false
	}
	return *f.sess, true
}

// mintToken signs an HS256 token. The key is irrelevant to the client, which
// never verifies signatures.
func mintToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return raw
}

func expiresIn(d time.Duration) int64 {
	return time.Now().Add(d).Unix()
}
