package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vault42/console/internal/core/domain"
	"github.com/vault42/console/internal/core/ports"
)

// NavHandler reports what the current user may see.
type NavHandler struct {
	sessions ports.SessionService
}

func NewNavHandler(sessions ports.SessionService) *NavHandler {
	return &NavHandler{sessions: sessions}
}

type navResponse struct {
	Authenticated  bool             `json:"authenticated"`
	Role           string           `json:"role,omitempty"`
	Links          []domain.NavLink `json:"links"`
	Route          string           `json:"route,omitempty"`
	CanAccess      bool             `json:"can_access"`
	ChatbotVisible bool             `json:"chatbot_visible"`
}

// Nav lists the sidebar links for the current session and evaluates the
// route guard for ?route=.
//
// @Summary      Navigation state
// @Tags         navigation
// @Produce      json
// @Param        route  query     string  false  "Route to evaluate"
// @Success      200    {object}  navResponse
// @Router       /nav [get]
func (h *NavHandler) Nav(c echo.Context) error {
	sess, ok := h.sessions.Current()
	route := c.QueryParam("route")

	resp := navResponse{
		Authenticated: ok,
		Links:         []domain.NavLink{},
		Route:         route,
	}
	if ok {
		resp.Role = string(sess.EffectiveRole())
		resp.Links = domain.NavLinks(sess.Role)
	}
	if route != "" {
		resp.CanAccess = domain.CanAccess(ok, sess.Role, route)
		resp.ChatbotVisible = ok && domain.ChatbotWidgetVisible(route)
	}
	return c.JSON(http.StatusOK, resp)
}
