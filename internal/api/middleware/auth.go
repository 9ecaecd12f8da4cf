package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/vault42/console/internal/api/handler"
	"github.com/vault42/console/internal/core/domain"
	"github.com/vault42/console/internal/core/ports"
)

// RequireSession rejects requests while nobody is logged in and injects the
// current session into the echo context.
func RequireSession(sessions ports.SessionService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, ok := sessions.Current()
			if !ok || !sess.IsAuthenticated {
				return domain.ErrNoSession
			}
			c.Set(handler.ContextKeySession, sess)
			return next(c)
		}
	}
}
