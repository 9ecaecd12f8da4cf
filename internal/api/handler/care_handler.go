package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vault42/console/internal/core/ports"
)

// CareHandler serves the customer care dashboard.
type CareHandler struct {
	api ports.CareAPI
}

func NewCareHandler(api ports.CareAPI) *CareHandler {
	return &CareHandler{api: api}
}

type grievanceStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// Grievances lists grievances, optionally filtered by ?status=.
//
// @Summary      List grievances
// @Tags         care
// @Produce      json
// @Param        status  query     string  false  "Status filter (default all)"
// @Success      200     {array}   map[string]any
// @Router       /care/grievances [get]
func (h *CareHandler) Grievances(c echo.Context) error {
	return relay(c, http.StatusOK)(h.api.Grievances(c.Request().Context(), c.QueryParam("status")))
}

// UpdateStatus moves a grievance to a new status.
//
// @Summary      Update grievance status
// @Tags         care
// @Accept       json
// @Produce      json
// @Param        id    path      string                  true  "Grievance id"
// @Param        body  body      grievanceStatusRequest  true  "New status"
// @Success      200   {object}  map[string]any
// @Router       /care/grievances/{id} [patch]
func (h *CareHandler) UpdateStatus(c echo.Context) error {
	var req grievanceStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	return relay(c, http.StatusOK)(h.api.UpdateGrievanceStatus(c.Request().Context(), c.Param("id"), req.Status))
}

// Summary returns the AI digest of open grievances.
//
// @Summary      AI grievance summary
// @Tags         care
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /care/grievances/summary [get]
func (h *CareHandler) Summary(c echo.Context) error {
	return relay(c, http.StatusOK)(h.api.GrievanceAISummary(c.Request().Context()))
}

// Stats returns grievance counters.
//
// @Summary      Grievance statistics
// @Tags         care
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /care/stats [get]
func (h *CareHandler) Stats(c echo.Context) error {
	return relay(c, http.StatusOK)(h.api.GrievanceStats(c.Request().Context()))
}

// Customer360 returns the consolidated customer view.
//
// @Summary      Customer 360 view
// @Tags         care
// @Produce      json
// @Param        user_id  path      string  true  "Customer user id"
// @Success      200      {object}  map[string]any
// @Router       /care/customers/{user_id} [get]
func (h *CareHandler) Customer360(c echo.Context) error {
	return relay(c, http.StatusOK)(h.api.Customer360(c.Request().Context(), c.Param("user_id")))
}
