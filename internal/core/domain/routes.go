package domain

// Navigation targets known to the client.
const (
	RouteLogin            = "/login"
	RouteRegister         = "/register"
	RouteOTPVerification  = "/otp-verification"
	RouteDashboard        = "/dashboard"
	RouteTransactions     = "/dashboard/transactions"
	RouteDeposit          = "/dashboard/deposit"
	RouteProfile          = "/dashboard/profile"
	RouteChatbot          = "/dashboard/chatbot"
	RouteCareDashboard    = "/dashboard/care"
	RouteAnalystDashboard = "/dashboard/analyst"
	RouteClerkDashboard   = "/dashboard/clerk"
)

// Query-carrying variants produced by the registration flow.
const (
	RouteOTPAfterRegister = RouteOTPVerification + "?mode=register"
	RouteChatOnboarding   = RouteChatbot + "?onboarding=true"
)
