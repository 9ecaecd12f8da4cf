package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/vault42/console/internal/core/domain"
)

type stubAuthService struct {
	signInFn   func(ctx context.Context, email, password string) (string, error)
	registerFn func(ctx context.Context, email, password, mobileNo string) (string, error)
	verifyFn   func(ctx context.Context, code, mode string) (string, error)
}

func (s *stubAuthService) SignIn(ctx context.Context, email, password string) (string, error) {
	return s.signInFn(ctx, email, password)
}

func (s *stubAuthService) Register(ctx context.Context, email, password, mobileNo string) (string, error) {
	return s.registerFn(ctx, email, password, mobileNo)
}

func (s *stubAuthService) VerifyOTP(ctx context.Context, code, mode string) (string, error) {
	return s.verifyFn(ctx, code, mode)
}

type stubSessions struct {
	sess    *domain.Session
	loginFn func(ctx context.Context, token, email string) (string, error)
	updates []domain.SessionUpdate
	logouts int
}

func (s *stubSessions) Login(ctx context.Context, token, email string) (string, error) {
	return s.loginFn(ctx, token, email)
}

func (s *stubSessions) Logout(context.Context) {
	s.logouts++
	s.sess = nil
}

func (s *stubSessions) UpdateUser(_ context.Context, u domain.SessionUpdate) {
	s.updates = append(s.updates, u)
	if s.sess != nil && u.Name != nil {
		s.sess.Name = *u.Name
	}
}

func (s *stubSessions) Current() (domain.Session, bool) {
	if s.sess == nil {
		return domain.Session{}, false
	}
	return *s.sess, true
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newEcho()
	sessions := &stubSessions{}
	stub := &stubAuthService{
		signInFn: func(ctx context.Context, email, password string) (string, error) {
			if email != "alice@example.com" || password != "secret" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			sessions.sess = &domain.Session{UserID: "u1", Email: email, IsAuthenticated: true}
			return domain.RouteDashboard, nil
		},
	}
	h := NewAuthHandler(stub, sessions)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/session/login", `{"email":"alice@example.com","password":"secret"}`), rec)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["redirect"] != domain.RouteDashboard {
		t.Fatalf("unexpected redirect %v", resp["redirect"])
	}
	sess, ok := resp["session"].(map[string]any)
	if !ok || sess["userId"] != "u1" {
		t.Fatalf("unexpected session payload: %+v", resp["session"])
	}
}

func TestAuthHandler_Login_InvalidEmail(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		signInFn: func(ctx context.Context, email, password string) (string, error) {
			t.Fatalf("should not be called")
			return "", nil
		},
	}
	h := NewAuthHandler(stub, &stubSessions{})

	c := e.NewContext(jsonRequest(http.MethodPost, "/session/login", `{"email":"not-an-email","password":"x"}`), httptest.NewRecorder())

	err := h.Login(c)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !strings.Contains(err.Error(), "email must be a valid email") {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestAuthHandler_Login_InvalidPayload(t *testing.T) {
	e := newEcho()
	h := NewAuthHandler(&stubAuthService{}, &stubSessions{})

	c := e.NewContext(jsonRequest(http.MethodPost, "/session/login", "{"), httptest.NewRecorder())

	if err := h.Login(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAuthHandler_LoginWithToken_InvalidToken(t *testing.T) {
	e := newEcho()
	sessions := &stubSessions{
		loginFn: func(ctx context.Context, token, email string) (string, error) {
			return "", domain.ErrInvalidToken
		},
	}
	h := NewAuthHandler(&stubAuthService{}, sessions)

	c := e.NewContext(jsonRequest(http.MethodPost, "/session/token", `{"token":"garbage","email":"a@example.com"}`), httptest.NewRecorder())

	if err := h.LoginWithToken(c); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestAuthHandler_Session(t *testing.T) {
	e := newEcho()

	h := NewAuthHandler(&stubAuthService{}, &stubSessions{})
	if err := h.Session(e.NewContext(httptest.NewRequest(http.MethodGet, "/session", nil), httptest.NewRecorder())); !errors.Is(err, domain.ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}

	h = NewAuthHandler(&stubAuthService{}, &stubSessions{sess: &domain.Session{UserID: "u1", IsAuthenticated: true}})
	rec := httptest.NewRecorder()
	if err := h.Session(e.NewContext(httptest.NewRequest(http.MethodGet, "/session", nil), rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"userId":"u1"`) {
		t.Fatalf("unexpected response %d %s", rec.Code, rec.Body.String())
	}
}

func TestAuthHandler_UpdateSession(t *testing.T) {
	e := newEcho()
	sessions := &stubSessions{sess: &domain.Session{UserID: "u1", Name: "alice", IsAuthenticated: true}}
	h := NewAuthHandler(&stubAuthService{}, sessions)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPatch, "/session", `{"name":"Alice Smith"}`), rec)
	if err := h.UpdateSession(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if len(sessions.updates) != 1 || sessions.updates[0].Name == nil || sessions.updates[0].AccountNo != nil {
		t.Fatalf("unexpected updates %+v", sessions.updates)
	}
	if !strings.Contains(rec.Body.String(), "Alice Smith") {
		t.Fatalf("expected updated name in body, got %s", rec.Body.String())
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	e := newEcho()
	sessions := &stubSessions{sess: &domain.Session{UserID: "u1", IsAuthenticated: true}}
	h := NewAuthHandler(&stubAuthService{}, sessions)

	rec := httptest.NewRecorder()
	if err := h.Logout(e.NewContext(httptest.NewRequest(http.MethodDelete, "/session", nil), rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if sessions.logouts != 1 {
		t.Fatalf("expected one logout, got %d", sessions.logouts)
	}
	if !strings.Contains(rec.Body.String(), `"redirect":"/login"`) {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestAuthHandler_Register_Success(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, email, password, mobileNo string) (string, error) {
			if email != "bob@example.com" || mobileNo != "9999999999" {
				t.Fatalf("unexpected args: %s %s", email, mobileNo)
			}
			return domain.RouteOTPAfterRegister, nil
		},
	}
	h := NewAuthHandler(stub, &stubSessions{})

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/register", `{"email":"bob@example.com","password":"longenough","mobile_no":"9999999999"}`), rec)

	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "mode=register") {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestAuthHandler_VerifyOTP_RejectsShortCode(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		verifyFn: func(ctx context.Context, code, mode string) (string, error) {
			t.Fatalf("should not be called")
			return "", nil
		},
	}
	h := NewAuthHandler(stub, &stubSessions{})

	c := e.NewContext(jsonRequest(http.MethodPost, "/otp/verify", `{"otp":"123"}`), httptest.NewRecorder())
	if err := h.VerifyOTP(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
