package api

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/unrolled/secure"

	_ "github.com/vault42/console/docs"
	"github.com/vault42/console/internal/api/handler"
	"github.com/vault42/console/internal/api/middleware"
	"github.com/vault42/console/internal/core/domain"
	"github.com/vault42/console/internal/core/ports"
	"github.com/vault42/console/internal/infrastructure/http/handlers"
)

// Deps are the services the console server exposes.
type Deps struct {
	Sessions  ports.SessionService
	Auth      ports.AuthService
	Dashboard ports.DashboardService
	Chat      ports.ChatService
	Banking   ports.BankingAPI
	Batch     ports.BatchRunner

	// Readiness probes, keyed by dependency name.
	Probes map[string]handlers.Pinger

	Log zerolog.Logger
	// LoginRateLimit is login attempts per minute per client IP; 0 disables it.
	LoginRateLimit int
	// Registerer receives the HTTP request metrics. Nil means the default
	// Prometheus registerer.
	Registerer prometheus.Registerer
	Production bool
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	e.Use(echo.WrapMiddleware(secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "no-referrer",
		IsDevelopment:      !d.Production,
	}).Handler))

	registerer := d.Registerer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "console",
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(d.Auth, d.Sessions)
	navHandler := handler.NewNavHandler(d.Sessions)
	customerHandler := handler.NewCustomerHandler(d.Dashboard, d.Banking)
	chatHandler := handler.NewChatHandler(d.Chat)
	careHandler := handler.NewCareHandler(d.Banking)
	analystHandler := handler.NewAnalystHandler(d.Banking)
	clerkHandler := handler.NewClerkHandler(d.Banking)
	batchHandler := handler.NewBatchHandler(d.Batch)
	requireSession := middleware.RequireSession(d.Sessions)

	// --- Session routes ---
	loginLimit := []echo.MiddlewareFunc{}
	if d.LoginRateLimit > 0 {
		loginLimit = append(loginLimit, echo.WrapMiddleware(httprate.LimitByIP(d.LoginRateLimit, time.Minute)))
	}
	e.POST("/session/login", authHandler.Login, loginLimit...)
	e.POST("/session/token", authHandler.LoginWithToken, loginLimit...)
	e.GET("/session", authHandler.Session)
	e.PATCH("/session", authHandler.UpdateSession)
	e.DELETE("/session", authHandler.Logout)
	e.POST("/register", authHandler.Register)
	e.POST("/otp/verify", authHandler.VerifyOTP)
	e.GET("/nav", navHandler.Nav)

	// --- Customer routes ---
	// Route-level rather than a root group, so unknown paths still 404.
	customer := []echo.MiddlewareFunc{requireSession, middleware.GuardRoute(domain.RouteDashboard)}
	e.GET("/dashboard", customerHandler.Dashboard, customer...)
	e.GET("/transactions", customerHandler.Transactions, customer...)
	e.POST("/deposit", customerHandler.Deposit, customer...)
	e.GET("/profile", customerHandler.Profile, customer...)

	chat := e.Group("/chat", requireSession, middleware.GuardRoute(domain.RouteChatbot))
	chat.GET("", chatHandler.Transcript)
	chat.POST("", chatHandler.Send)
	chat.DELETE("", chatHandler.Clear)
	chat.POST("/upload", chatHandler.Upload)

	// --- Back-office routes ---
	care := e.Group("/care", requireSession, middleware.GuardRoute(domain.RouteCareDashboard))
	care.GET("/grievances", careHandler.Grievances)
	care.GET("/grievances/summary", careHandler.Summary)
	care.PATCH("/grievances/:id", careHandler.UpdateStatus)
	care.GET("/stats", careHandler.Stats)
	care.GET("/customers/:user_id", careHandler.Customer360)

	analyst := e.Group("/analyst", requireSession, middleware.GuardRoute(domain.RouteAnalystDashboard))
	analyst.GET("/stats", analystHandler.Stats)
	analyst.GET("/alerts", analystHandler.Alerts)
	analyst.GET("/blocked", analystHandler.Blocked)
	analyst.GET("/search", analystHandler.Search)
	analyst.GET("/accounts/:account_no", analystHandler.Account)
	analyst.POST("/accounts/:account_no/block", analystHandler.Block)
	analyst.POST("/accounts/:account_no/unblock", analystHandler.Unblock)
	analyst.GET("/reports/daily", analystHandler.DailyReport)

	clerk := e.Group("/clerk", requireSession, middleware.GuardRoute(domain.RouteClerkDashboard))
	clerk.GET("/applications", clerkHandler.Applications)
	clerk.POST("/applications/:application_no/approve", clerkHandler.ApproveApplication)
	clerk.POST("/applications/:application_no/reject", clerkHandler.RejectApplication)
	clerk.GET("/deposits", clerkHandler.Deposits)
	clerk.POST("/deposits/:transaction_id/approve", clerkHandler.ApproveDeposit)
	clerk.POST("/deposits/:transaction_id/reject", clerkHandler.RejectDeposit)
	clerk.GET("/reports", clerkHandler.Reports)
	clerk.GET("/reports/:report_id/download", clerkHandler.DownloadReport)

	// Each batch item is role-checked on its own.
	e.POST("/batch", batchHandler.Run, requireSession)

	// --- Health probes, metrics and docs (no auth required) ---
	e.GET("/health", handlers.NewHealthHandler().Liveness)
	e.GET("/health/ready", handlers.NewReadinessHandler(d.Probes).Readiness)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger writes one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= http.StatusInternalServerError {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
