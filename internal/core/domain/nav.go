package domain

// NavLink is a sidebar entry gated by role.
type NavLink struct {
	Name  string    `json:"name"`
	Route string    `json:"route"`
	Icon  string    `json:"icon"`
	Roles []RoleTag `json:"-"`
}

var sidebarLinks = []NavLink{
	{Name: "Overview", Route: RouteDashboard, Icon: "layout-grid", Roles: []RoleTag{RoleCustomer}},
	{Name: "Transactions", Route: RouteTransactions, Icon: "arrow-right-left", Roles: []RoleTag{RoleCustomer}},
	{Name: "Deposit", Route: RouteDeposit, Icon: "piggy-bank", Roles: []RoleTag{RoleCustomer}},
	{Name: "AI Assistant", Route: RouteChatbot, Icon: "bot", Roles: []RoleTag{RoleCustomer}},
	{Name: "Care Dashboard", Route: RouteCareDashboard, Icon: "life-buoy", Roles: []RoleTag{RoleCare}},
	{Name: "Profile", Route: RouteProfile, Icon: "user", Roles: []RoleTag{RoleCustomer}},
	{Name: "Analyst Dashboard", Route: RouteAnalystDashboard, Icon: "shield-alert", Roles: []RoleTag{RoleAnalyst}},
	{Name: "Clerk Dashboard", Route: RouteClerkDashboard, Icon: "clipboard-list", Roles: []RoleTag{RoleClerk}},
}

// NavLinks returns the sidebar entries visible to the given role claim, in
// display order.
func NavLinks(claim string) []NavLink {
	role, ok := grantedRole(claim)
	if !ok {
		return []NavLink{}
	}

	out := make([]NavLink, 0, len(sidebarLinks))
	for _, link := range sidebarLinks {
		if link.allows(role) {
			out = append(out, link)
		}
	}
	return out
}

func (l NavLink) allows(role RoleTag) bool {
	if len(l.Roles) == 0 {
		return true
	}
	for _, r := range l.Roles {
		if r == role {
			return true
		}
	}
	return false
}
