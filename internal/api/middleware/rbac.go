package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/vault42/console/internal/api/handler"
	"github.com/vault42/console/internal/core/domain"
)

// GuardRoute applies the client route guard for route to every request of
// the group. It must run after RequireSession.
func GuardRoute(route string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, ok := c.Get(handler.ContextKeySession).(domain.Session)
			if !domain.CanAccess(ok && sess.IsAuthenticated, sess.Role, route) {
				if !ok {
					return domain.ErrNoSession
				}
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
