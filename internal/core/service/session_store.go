package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/vault42/console/internal/api/metrics"
	"github.com/vault42/console/internal/core/domain"
	"github.com/vault42/console/internal/core/ports"
)

// SessionListener is notified after every session change. ok is false once
// the session is gone.
type SessionListener func(s domain.Session, ok bool)

// SessionStore is the single source of truth for who is logged in. One store
// is built per process and handed to every consumer.
type SessionStore struct {
	storage ports.ClientStorage
	nav     ports.Navigator
	log     zerolog.Logger
	now     func() time.Time

	// wmu is held across mutate+persist by every writer, so storage never
	// lags behind a newer Login or Logout.
	wmu sync.Mutex

	mu         sync.RWMutex
	current    *domain.Session
	generation uint64
	listeners  map[int]SessionListener
	nextID     int
}

var _ ports.ScopedSessions = (*SessionStore)(nil)

// SessionOption customises a SessionStore.
type SessionOption func(*SessionStore)

// WithClock replaces the wall clock used for expiry checks.
func WithClock(now func() time.Time) SessionOption {
	return func(s *SessionStore) { s.now = now }
}

func NewSessionStore(storage ports.ClientStorage, nav ports.Navigator, log zerolog.Logger, opts ...SessionOption) *SessionStore {
	if nav == nil {
		nav = ports.NavigatorFunc(func(string) {})
	}
	s := &SessionStore{
		storage:   storage,
		nav:       nav,
		log:       log,
		now:       time.Now,
		listeners: make(map[int]SessionListener),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Restore loads the persisted session at startup. Any failure leaves the
// store unauthenticated; nothing is returned to the caller.
func (s *SessionStore) Restore(ctx context.Context) {
	s.wmu.Lock()
	sess := s.loadPersisted(ctx)
	s.swap(sess)
	s.wmu.Unlock()

	if sess != nil {
		metrics.SessionEventsTotal.WithLabelValues("restored").Inc()
	}
	s.notify()
}

func (s *SessionStore) loadPersisted(ctx context.Context) *domain.Session {
	raw, err := s.storage.Get(ctx, domain.StorageKeySession)
	if err != nil {
		if !errors.Is(err, domain.ErrStorageKeyNotFound) {
			s.log.Warn().Err(err).Msg("failed to read stored session")
		}
		return nil
	}

	var sess domain.Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		s.log.Warn().Err(err).Msg("failed to parse stored session")
		s.discard(ctx)
		return nil
	}
	if sess.UserID == "" || sess.Token == "" {
		s.log.Warn().Msg("stored session is incomplete")
		s.discard(ctx)
		return nil
	}

	claims, err := DecodeToken(sess.Token)
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to decode stored token")
		s.discard(ctx)
		return nil
	}
	if claims.Expired(s.now()) {
		s.log.Warn().Str("user_id", sess.UserID).Msg("session expired")
		metrics.SessionEventsTotal.WithLabelValues("expired").Inc()
		s.discard(ctx)
		return nil
	}

	sess.IsAuthenticated = true
	return &sess
}

func (s *SessionStore) discard(ctx context.Context) {
	if err := s.storage.Remove(ctx, domain.StorageKeySession); err != nil {
		s.log.Warn().Err(err).Msg("failed to clear stored session")
	}
}

// Login creates a session from an access token and returns the route the
// user was sent to. An undecodable token or one without a subject fails with
// domain.ErrInvalidToken and leaves storage untouched.
func (s *SessionStore) Login(ctx context.Context, token, email string) (string, error) {
	claims, err := DecodeToken(token)
	if err != nil {
		s.log.Error().Err(err).Msg("login rejected: undecodable token")
		return "", domain.ErrInvalidToken
	}
	if claims.Subject == "" {
		s.log.Error().Msg("login rejected: token has no subject")
		return "", domain.ErrInvalidToken
	}

	sess := domain.Session{
		UserID:          claims.Subject,
		Name:            localPart(email),
		Email:           email,
		Token:           strings.TrimSpace(token),
		Role:            claims.Role,
		IsAuthenticated: true,
	}

	s.wmu.Lock()
	if err := s.persist(ctx, sess); err != nil {
		s.wmu.Unlock()
		return "", err
	}
	s.swap(&sess)
	s.wmu.Unlock()

	route := domain.LandingRoute(sess.Role)
	s.log.Info().
		Str("user_id", sess.UserID).
		Str("role", string(sess.EffectiveRole())).
		Str("route", route).
		Msg("logged in")
	metrics.SessionEventsTotal.WithLabelValues("login").Inc()

	s.notify()
	s.nav.Navigate(route)
	return route, nil
}

// UpdateUser back-fills name and account number. Identity, token and role are
// never touched. Without a session it does nothing.
func (s *SessionStore) UpdateUser(ctx context.Context, update domain.SessionUpdate) {
	s.wmu.Lock()
	cur, ok := s.Current()
	if !ok {
		s.wmu.Unlock()
		return
	}
	if update.Name != nil {
		cur.Name = *update.Name
	}
	if update.AccountNo != nil {
		cur.AccountNo = *update.AccountNo
	}
	if err := s.persist(ctx, cur); err != nil {
		s.log.Error().Err(err).Msg("failed to persist session update")
	}
	s.mu.Lock()
	s.current = &cur
	s.mu.Unlock()
	s.wmu.Unlock()

	s.notify()
}

// Logout drops the session along with the chatbot transcript.
func (s *SessionStore) Logout(ctx context.Context) {
	s.wmu.Lock()
	s.swap(nil)
	for _, key := range []string{domain.StorageKeySession, domain.StorageKeyChatbotLog} {
		if err := s.storage.Remove(ctx, key); err != nil {
			s.log.Error().Err(err).Str("key", key).Msg("failed to clear storage on logout")
		}
	}
	s.wmu.Unlock()
	metrics.SessionEventsTotal.WithLabelValues("logout").Inc()

	s.notify()
	s.nav.Navigate(domain.RouteLogin)
}

// Current returns a copy of the live session.
func (s *SessionStore) Current() (domain.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return domain.Session{}, false
	}
	return *s.current, true
}

// Generation identifies the current session. It changes on every Login,
// Logout and Restore.
func (s *SessionStore) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

// Commit runs write while no other session writer can run, but only if the
// session is still generation gen. It reports whether write ran.
func (s *SessionStore) Commit(gen uint64, write func() error) (bool, error) {
	s.wmu.Lock()
	defer s.wmu.Unlock()
	if s.Generation() != gen {
		return false, nil
	}
	return true, write()
}

// swap replaces the session and starts a new generation. Callers hold wmu.
func (s *SessionStore) swap(sess *domain.Session) {
	s.mu.Lock()
	s.current = sess
	s.generation++
	s.mu.Unlock()
}

// Token implements ports.TokenProvider.
func (s *SessionStore) Token() (string, bool) {
	sess, ok := s.Current()
	if !ok || sess.Token == "" {
		return "", false
	}
	return sess.Token, true
}

// Subscribe registers fn for change notifications. The returned func
// unregisters it.
func (s *SessionStore) Subscribe(fn SessionListener) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

func (s *SessionStore) notify() {
	s.mu.RLock()
	var snapshot domain.Session
	ok := s.current != nil
	if ok {
		snapshot = *s.current
	}
	listeners := make([]SessionListener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.mu.RUnlock()

	for _, fn := range listeners {
		fn(snapshot, ok)
	}
}

func (s *SessionStore) persist(ctx context.Context, sess domain.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.storage.Set(ctx, domain.StorageKeySession, string(data)); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

func localPart(email string) string {
	if i := strings.IndexByte(email, '@'); i >= 0 {
		return email[:i]
	}
	return email
}
