package ports

import (
	"context"

	"github.com/vault42/console/internal/core/domain"
)

// SessionService is the session store as seen by the transport layer.
type SessionService interface {
	Login(ctx context.Context, token, email string) (string, error)
	Logout(ctx context.Context)
	UpdateUser(ctx context.Context, update domain.SessionUpdate)
	Current() (domain.Session, bool)
}

// ScopedSessions adds a write guard to SessionService for data that belongs to
// one session, such as the chatbot transcript.
type ScopedSessions interface {
	SessionService
	// Generation changes whenever the session is replaced or ended.
	Generation() uint64
	// Commit runs write only while generation gen is still current, and
	// excludes Login, UpdateUser and Logout while it runs.
	Commit(gen uint64, write func() error) (bool, error)
}

// AuthService drives the credential-based sign-in, registration and OTP flows.
type AuthService interface {
	SignIn(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, email, password, mobileNo string) (string, error)
	VerifyOTP(ctx context.Context, code, mode string) (string, error)
}
