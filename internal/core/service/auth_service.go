package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/vault42/console/internal/core/domain"
	"github.com/vault42/console/internal/core/ports"
)

const (
	otpLength           = 6
	otpModeRegister     = "register"
	registrationFailed  = "Registration failed. Please try again."
	incompleteOTPPrompt = "Please enter the complete 6-digit code."
)

// AuthService implements sign-in, registration and OTP verification.
type AuthService struct {
	api      ports.AccountAPI
	sessions ports.SessionService
	nav      ports.Navigator
	log      zerolog.Logger
}

func NewAuthService(api ports.AccountAPI, sessions ports.SessionService, nav ports.Navigator, log zerolog.Logger) *AuthService {
	if nav == nil {
		nav = ports.NavigatorFunc(func(string) {})
	}
	return &AuthService{api: api, sessions: sessions, nav: nav, log: log}
}

var _ ports.AuthService = (*AuthService)(nil)

// SignIn exchanges credentials for an access token and opens a session.
// The landing route is returned.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", domain.Invalid("email and password are required")
	}

	resp, err := s.api.Login(ctx, email, password)
	if err != nil {
		s.log.Warn().Err(err).Str("email", email).Msg("login request failed")
		return "", err
	}
	if resp == nil || resp.AccessToken == "" {
		return "", domain.ErrInvalidToken
	}

	return s.sessions.Login(ctx, resp.AccessToken, email)
}

// Register creates a customer account and points the user at OTP entry.
func (s *AuthService) Register(ctx context.Context, email, password, mobileNo string) (string, error) {
	email = strings.TrimSpace(email)
	mobileNo = strings.TrimSpace(mobileNo)
	if email == "" || password == "" || mobileNo == "" {
		return "", domain.Invalid("email, password and mobile number are required")
	}

	if err := s.api.Register(ctx, email, password, mobileNo); err != nil {
		s.log.Warn().Err(err).Str("email", email).Msg("registration failed")
		var apiErr *domain.APIError
		if errors.As(err, &apiErr) && !apiErr.Structured {
			return "", &domain.APIError{Status: apiErr.Status, Message: registrationFailed}
		}
		return "", err
	}

	s.nav.Navigate(domain.RouteOTPAfterRegister)
	return domain.RouteOTPAfterRegister, nil
}

// VerifyOTP checks the code shape and routes onward. The code itself is not
// checked remotely; the API has no verification endpoint.
func (s *AuthService) VerifyOTP(_ context.Context, code, mode string) (string, error) {
	code = strings.TrimSpace(code)
	if len(code) != otpLength || !allDigits(code) {
		return "", domain.Invalid(incompleteOTPPrompt)
	}

	route := domain.RouteDashboard
	if mode == otpModeRegister {
		route = domain.RouteChatOnboarding
	}
	s.nav.Navigate(route)
	return route, nil
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
