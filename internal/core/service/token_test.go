package service

import (
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vault42/console/internal/core/domain"
)

func TestDecodeToken(t *testing.T) {
	exp := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	token := mintToken(t, jwt.MapClaims{
		"sub":   "u1",
		"role":  "care",
		"email": "c@example.com",
		"exp":   exp.Unix(),
	})

	claims, err := DecodeToken(" " + token + "\n")
	if err != nil {
		t.Fatalf("DecodeToken returned error: %v", err)
	}
	if claims.Subject != "u1" || claims.Role != "care" || claims.Email != "c@example.com" {
		t.Fatalf("unexpected claims %+v", claims)
	}
	if !claims.ExpiresAt.Equal(exp) {
		t.Fatalf("expected expiry %v, got %v", exp, claims.ExpiresAt)
	}
}

func TestDecodeToken_UnknownAlgorithm(t *testing.T) {
	enc := base64.RawURLEncoding
	raw := enc.EncodeToString([]byte(`{"alg":"XS512","typ":"JWT"}`)) + "." +
		enc.EncodeToString([]byte(`{"sub":"u9","exp":4102444800}`)) + ".c2ln"

	claims, err := DecodeToken(raw)
	if err != nil {
		t.Fatalf("payload should decode regardless of alg: %v", err)
	}
	if claims.Subject != "u9" {
		t.Fatalf("unexpected subject %q", claims.Subject)
	}
}

func TestDecodeToken_Invalid(t *testing.T) {
	for _, raw := range []string{"", "abc", "a.b.c", "x.eyJzdWIiOjF9.y"} {
		if _, err := DecodeToken(raw); !errors.Is(err, domain.ErrInvalidToken) {
			t.Fatalf("DecodeToken(%q): expected ErrInvalidToken, got %v", raw, err)
		}
	}
}

func TestTokenClaims_Expired(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		exp  time.Time
		want bool
	}{
		{"future", now.Add(time.Second), false},
		{"same millisecond", now.Add(500 * time.Microsecond), true},
		{"past", now.Add(-time.Hour), true},
		{"missing", time.Time{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := (domain.TokenClaims{ExpiresAt: tt.exp}).Expired(now); got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
