package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/vault42/console/internal/api/handler"
	"github.com/vault42/console/internal/core/domain"
)

type stubSessions struct {
	sess *domain.Session
}

func (s *stubSessions) Login(context.Context, string, string) (string, error) { return "", nil }
func (s *stubSessions) Logout(context.Context)                               {}
func (s *stubSessions) UpdateUser(context.Context, domain.SessionUpdate)     {}
func (s *stubSessions) Current() (domain.Session, bool) {
	if s.sess == nil {
		return domain.Session{}, false
	}
	return *s.sess, true
}

func TestRequireSession_InjectsSession(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	stub := &stubSessions{sess: &domain.Session{UserID: "u1", Email: "alice@example.com", IsAuthenticated: true}}

	called := false
	h := RequireSession(stub)(func(c echo.Context) error {
		called = true
		sess, ok := c.Get(handler.ContextKeySession).(domain.Session)
		if !ok || sess.UserID != "u1" {
			t.Fatalf("session not injected: %+v", c.Get(handler.ContextKeySession))
		}
		return c.NoContent(http.StatusOK)
	})

	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequireSession_NoSession(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	h := RequireSession(&stubSessions{})(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := h(c); !errors.Is(err, domain.ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}
