package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vault42/console/internal/core/domain"
)

// accessClaims is the payload shape of tokens issued by the banking API.
type accessClaims struct {
	Role  string `json:"role,omitempty"`
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

var tokenParser = jwt.NewParser()

// DecodeToken reads the access token payload without verifying its signature.
// The signature is the API's concern; the client only needs sub, exp and role.
func DecodeToken(raw string) (domain.TokenClaims, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return domain.TokenClaims{}, fmt.Errorf("%w: empty token", domain.ErrInvalidToken)
	}

	claims := &accessClaims{}
	// ErrTokenUnverifiable only means the alg header names a method this
	// library does not implement; the payload has been decoded by then.
	if _, _, err := tokenParser.ParseUnverified(raw, claims); err != nil && !errors.Is(err, jwt.ErrTokenUnverifiable) {
		return domain.TokenClaims{}, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}

	out := domain.TokenClaims{
		Subject: claims.Subject,
		Role:    claims.Role,
		Email:   claims.Email,
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}
