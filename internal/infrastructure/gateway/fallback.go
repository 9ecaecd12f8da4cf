package gateway

import (
	"fmt"
	"strings"
)

// Offline modes accepted by ParseOfflineMode.
const (
	OfflineModeDemo = "demo"
	OfflineModeOff  = "off"
)

// FallbackRule substitutes Payload for any endpoint whose path contains Match
// when the request fails before a response arrives.
type FallbackRule struct {
	Match   string
	Payload []byte
}

// FallbackPolicy decides which endpoints get canned data when the API is
// unreachable. The zero value never substitutes anything.
type FallbackPolicy struct {
	rules []FallbackRule
}

func NewFallbackPolicy(rules ...FallbackRule) FallbackPolicy {
	return FallbackPolicy{rules: append([]FallbackRule(nil), rules...)}
}

// NoFallback propagates every network failure.
func NoFallback() FallbackPolicy {
	return FallbackPolicy{}
}

// DemoFallback keeps the dashboard overview, transaction history and chat
// usable without a reachable API. Every other endpoint still fails.
func DemoFallback() FallbackPolicy {
	return NewFallbackPolicy(
		FallbackRule{Match: "/customers/dashboard", Payload: mockOverview},
		FallbackRule{Match: "/transactions/account", Payload: mockTransactions},
		FallbackRule{Match: "/chatbot/chat", Payload: mockChatResponse},
	)
}

// ParseOfflineMode maps the OFFLINE_MODE setting to a policy.
func ParseOfflineMode(mode string) (FallbackPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", OfflineModeDemo:
		return DemoFallback(), nil
	case OfflineModeOff, "none", "disabled":
		return NoFallback(), nil
	default:
		return FallbackPolicy{}, fmt.Errorf("unknown offline mode %q (want %q or %q)", mode, OfflineModeDemo, OfflineModeOff)
	}
}

// Lookup returns the canned payload for path, first matching rule wins.
func (p FallbackPolicy) Lookup(path string) ([]byte, bool) {
	for _, r := range p.rules {
		if strings.Contains(path, r.Match) {
			return r.Payload, true
		}
	}
	return nil, false
}

func (p FallbackPolicy) Enabled() bool {
	return len(p.rules) > 0
}
