package domain

import "testing"

func TestResolveRole(t *testing.T) {
	tests := []struct {
		claim  string
		want   RoleTag
		wantOK bool
	}{
		{"4e4bda72-a7b9-416f-a554-ee7c8299feb5", RoleCare, true},
		{"B282E4E2-61F6-428D-B3EB-575EA6B90314", RoleAnalyst, true},
		{"f48feab3-510e-4c0f-b782-54c34b711650", RoleClerk, true},
		{"bb6d3348-0696-4edd-9445-03df9be95722", RoleCustomer, true},
		{"Analyst", RoleAnalyst, true},
		{" clerk ", RoleClerk, true},
		{"00000000-0000-0000-0000-000000000000", "", false},
		{"admin", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.claim, func(t *testing.T) {
			got, ok := ResolveRole(tt.claim)
			if got != tt.want || ok != tt.wantOK {
				t.Fatalf("ResolveRole(%q) = %q, %v; want %q, %v", tt.claim, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestLandingRoute(t *testing.T) {
	tests := map[string]string{
		"":        RouteDashboard,
		"care":    RouteCareDashboard,
		"analyst": RouteAnalystDashboard,
		"clerk":   RouteClerkDashboard,
		"unknown": RouteDashboard,
		Roles[RoleCustomer].ID.String(): RouteDashboard,
	}
	for claim, want := range tests {
		if got := LandingRoute(claim); got != want {
			t.Errorf("LandingRoute(%q) = %q, want %q", claim, got, want)
		}
	}
}

func TestCanAccess(t *testing.T) {
	analystID := Roles[RoleAnalyst].ID.String()
	tests := []struct {
		name          string
		authenticated bool
		claim         string
		route         string
		want          bool
	}{
		{"public login", false, "", RouteLogin, true},
		{"public otp with query", false, "", RouteOTPAfterRegister, true},
		{"anonymous dashboard", false, "", RouteDashboard, false},
		{"customer by default", true, "", RouteTransactions, true},
		{"customer chatbot onboarding", true, "customer", RouteChatOnboarding, true},
		{"customer kept out of analyst", true, "", RouteAnalystDashboard, false},
		{"analyst by uuid", true, analystID, RouteAnalystDashboard + "/alerts", true},
		{"analyst kept out of customer pages", true, analystID, RouteDashboard, false},
		{"care subtree", true, "care", RouteCareDashboard + "/", true},
		{"prefix is not a subtree", true, "care", "/dashboard/careers", false},
		{"unknown role grants nothing", true, "admin", RouteDashboard, false},
		{"clerk", true, "clerk", RouteClerkDashboard, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanAccess(tt.authenticated, tt.claim, tt.route); got != tt.want {
				t.Fatalf("CanAccess(%v, %q, %q) = %v, want %v", tt.authenticated, tt.claim, tt.route, got, tt.want)
			}
		})
	}
}

func TestChatbotWidgetVisible(t *testing.T) {
	visible := []string{RouteDashboard, RouteChatbot, RouteProfile, "/dashboard/careers"}
	hidden := []string{RouteCareDashboard, RouteAnalystDashboard + "?tab=alerts", RouteClerkDashboard + "/reports"}

	for _, r := range visible {
		if !ChatbotWidgetVisible(r) {
			t.Errorf("expected widget on %q", r)
		}
	}
	for _, r := range hidden {
		if ChatbotWidgetVisible(r) {
			t.Errorf("expected no widget on %q", r)
		}
	}
}

func TestSession_EffectiveRole(t *testing.T) {
	if got := (Session{}).EffectiveRole(); got != RoleCustomer {
		t.Fatalf("expected customer default, got %q", got)
	}
	if got := (Session{Role: "unknown"}).EffectiveRole(); got != RoleCustomer {
		t.Fatalf("expected customer fallback, got %q", got)
	}
	if got := (Session{Role: Roles[RoleCare].ID.String()}).EffectiveRole(); got != RoleCare {
		t.Fatalf("expected care, got %q", got)
	}
}
