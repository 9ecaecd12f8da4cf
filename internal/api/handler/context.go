package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/vault42/console/internal/core/domain"
)

// ContextKeySession is where RequireSession leaves the caller's session.
const ContextKeySession = "session"

// ctxSession returns the session injected by the RequireSession middleware.
// Its absence means the route was registered outside a guarded group.
func ctxSession(c echo.Context) (domain.Session, error) {
	sess, ok := c.Get(ContextKeySession).(domain.Session)
	if !ok || !sess.IsAuthenticated {
		return domain.Session{}, domain.ErrNoSession
	}
	return sess, nil
}

// bindAndValidate decodes the request body into req and runs the validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domain.Invalid("invalid payload")
	}
	return c.Validate(req)
}
