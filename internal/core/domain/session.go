package domain

import "time"

// Persisted client storage keys.
const (
	StorageKeySession    = "vault42_user"
	StorageKeyChatbotLog = "chatbot_messages"
)

// Session is the authenticated identity held by the client. Only Name and
// AccountNo change after creation.
type Session struct {
	UserID          string `json:"userId"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Token           string `json:"token"`
	Role            string `json:"role,omitempty"`
	AccountNo       string `json:"accountNo,omitempty"`
	IsAuthenticated bool   `json:"isAuthenticated"`
}

// EffectiveRole resolves the role claim, defaulting to customer.
func (s Session) EffectiveRole() RoleTag {
	return EffectiveRole(s.Role)
}

// SessionUpdate is the subset of Session fields that may be back-filled.
type SessionUpdate struct {
	Name      *string `json:"name,omitempty"`
	AccountNo *string `json:"account_no,omitempty"`
}

// TokenClaims are the access token payload fields the client relies on.
type TokenClaims struct {
	Subject   string
	Role      string
	Email     string
	ExpiresAt time.Time
}

// Expired compares the expiry claim with now at millisecond precision.
// A token without an expiry claim counts as expired.
func (c TokenClaims) Expired(now time.Time) bool {
	if c.ExpiresAt.IsZero() {
		return true
	}
	return c.ExpiresAt.UnixMilli() <= now.UnixMilli()
}
