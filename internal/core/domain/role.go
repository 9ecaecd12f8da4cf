package domain

import (
	"strings"

	"github.com/google/uuid"
)

// RoleTag identifies one of the fixed back-office or customer roles.
type RoleTag string

const (
	RoleCustomer RoleTag = "customer"
	RoleClerk    RoleTag = "clerk"
	RoleAnalyst  RoleTag = "analyst"
	RoleCare     RoleTag = "care"
)

// RoleDescriptor maps a role tag to the identifiers the API may put in the
// token's role claim, and to the dashboard the role lands on.
type RoleDescriptor struct {
	Tag       RoleTag
	ID        uuid.UUID
	Name      string
	Dashboard string
}

// Roles is the process-wide role table, read-only.
var Roles = map[RoleTag]RoleDescriptor{
	RoleCustomer: {
		Tag:       RoleCustomer,
		ID:        uuid.MustParse("bb6d3348-0696-4edd-9445-03df9be95722"),
		Name:      "customer",
		Dashboard: RouteDashboard,
	},
	RoleClerk: {
		Tag:       RoleClerk,
		ID:        uuid.MustParse("f48feab3-510e-4c0f-b782-54c34b711650"),
		Name:      "clerk",
		Dashboard: RouteClerkDashboard,
	},
	RoleAnalyst: {
		Tag:       RoleAnalyst,
		ID:        uuid.MustParse("b282e4e2-61f6-428d-b3eb-575ea6b90314"),
		Name:      "analyst",
		Dashboard: RouteAnalystDashboard,
	},
	RoleCare: {
		Tag:       RoleCare,
		ID:        uuid.MustParse("4e4bda72-a7b9-416f-a554-ee7c8299feb5"),
		Name:      "care",
		Dashboard: RouteCareDashboard,
	},
}

// rolePriority is the order in which a claim is matched against the table.
var rolePriority = []RoleTag{RoleCare, RoleAnalyst, RoleClerk, RoleCustomer}

// ResolveRole normalises a role claim carrying either a role UUID or a role
// name. It is the only place role identity is matched.
func ResolveRole(claim string) (RoleTag, bool) {
	claim = strings.TrimSpace(claim)
	if claim == "" {
		return "", false
	}

	id, idErr := uuid.Parse(claim)
	for _, tag := range rolePriority {
		d := Roles[tag]
		if idErr == nil && id == d.ID {
			return tag, true
		}
		if strings.EqualFold(claim, d.Name) {
			return tag, true
		}
	}
	return "", false
}

// EffectiveRole is ResolveRole with the customer default applied.
func EffectiveRole(claim string) RoleTag {
	if tag, ok := ResolveRole(claim); ok {
		return tag
	}
	return RoleCustomer
}

// LandingRoute is where a freshly authenticated user is sent.
func LandingRoute(claim string) string {
	if tag, ok := ResolveRole(claim); ok {
		return Roles[tag].Dashboard
	}
	return RouteDashboard
}

// grantedRole is the role used for gating. An absent claim is a plain
// customer; a claim that is present but unknown grants nothing.
func grantedRole(claim string) (RoleTag, bool) {
	if strings.TrimSpace(claim) == "" {
		return RoleCustomer, true
	}
	return ResolveRole(claim)
}

var publicRoutes = map[string]struct{}{
	"/":                  {},
	RouteLogin:           {},
	RouteRegister:        {},
	RouteOTPVerification: {},
}

// routeOwners lists dashboard subtrees that belong to a single back-office role.
var routeOwners = []struct {
	prefix string
	role   RoleTag
}{
	{RouteCareDashboard, RoleCare},
	{RouteAnalystDashboard, RoleAnalyst},
	{RouteClerkDashboard, RoleClerk},
}

// RequiredRole returns the role a route needs, or false for public routes.
func RequiredRole(route string) (RoleTag, bool) {
	path := stripQuery(route)
	if _, ok := publicRoutes[path]; ok {
		return "", false
	}
	for _, owner := range routeOwners {
		if hasRoutePrefix(path, owner.prefix) {
			return owner.role, true
		}
	}
	return RoleCustomer, true
}

// CanAccess is the route guard. authenticated reports whether a session exists.
func CanAccess(authenticated bool, claim, route string) bool {
	need, guarded := RequiredRole(route)
	if !guarded {
		return true
	}
	if !authenticated {
		return false
	}
	have, ok := grantedRole(claim)
	return ok && have == need
}

// ChatbotWidgetVisible reports whether the floating assistant is shown on route.
// Back-office dashboards hide it.
func ChatbotWidgetVisible(route string) bool {
	path := stripQuery(route)
	for _, owner := range routeOwners {
		if hasRoutePrefix(path, owner.prefix) {
			return false
		}
	}
	return true
}

func stripQuery(route string) string {
	if i := strings.IndexAny(route, "?#"); i >= 0 {
		route = route[:i]
	}
	if len(route) > 1 {
		route = strings.TrimRight(route, "/")
	}
	return route
}

func hasRoutePrefix(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}
