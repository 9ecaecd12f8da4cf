package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/vault42/console/internal/core/ports"
)

// AnalystHandler serves the fraud analyst dashboard.
type AnalystHandler struct {
	api ports.AnalystAPI
	now func() time.Time
}

func NewAnalystHandler(api ports.AnalystAPI) *AnalystHandler {
	return &AnalystHandler{api: api, now: time.Now}
}

type blockRequest struct {
	Reason string `json:"reason" validate:"required"`
}

// Stats returns the analyst dashboard counters.
//
// @Summary      Analyst statistics
// @Tags         analyst
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /analyst/stats [get]
func (h *AnalystHandler) Stats(c echo.Context) error {
	return relay(c, http.StatusOK)(h.api.AnalystStats(c.Request().Context()))
}

// Alerts lists fraud alerts.
//
// @Summary      Fraud alerts
// @Tags         analyst
// @Produce      json
// @Success      200  {array}  domain.Alert
// @Router       /analyst/alerts [get]
func (h *AnalystHandler) Alerts(c echo.Context) error {
	alerts, err := h.api.AnalystAlerts(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, alerts)
}

// Block freezes an account.
//
// @Summary      Block an account
// @Tags         analyst
// @Accept       json
// @Produce      json
// @Param        account_no  path      string        true  "Account number"
// @Param        body        body      blockRequest  true  "Reason"
// @Success      200         {object}  map[string]any
// @Router       /analyst/accounts/{account_no}/block [post]
func (h *AnalystHandler) Block(c echo.Context) error {
	var req blockRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	return relay(c, http.StatusOK)(h.api.BlockAccount(c.Request().Context(), c.Param("account_no"), req.Reason))
}

// Unblock lifts a freeze.
//
// @Summary      Unblock an account
// @Tags         analyst
// @Produce      json
// @Param        account_no  path      string  true  "Account number"
// @Success      200         {object}  map[string]any
// @Router       /analyst/accounts/{account_no}/unblock [post]
func (h *AnalystHandler) Unblock(c echo.Context) error {
	return relay(c, http.StatusOK)(h.api.UnblockAccount(c.Request().Context(), c.Param("account_no")))
}

// Blocked lists frozen accounts.
//
// @Summary      Blocked accounts
// @Tags         analyst
// @Produce      json
// @Success      200  {array}  map[string]any
// @Router       /analyst/blocked [get]
func (h *AnalystHandler) Blocked(c echo.Context) error {
	return relay(c, http.StatusOK)(h.api.BlockedAccounts(c.Request().Context()))
}

// Search looks accounts up by ?q=.
//
// @Summary      Search accounts
// @Tags         analyst
// @Produce      json
// @Param        q  query     string  true  "Account number, name or email"
// @Success      200  {array}   map[string]any
// @Failure      400  {object}  map[string]string
// @Router       /analyst/search [get]
func (h *AnalystHandler) Search(c echo.Context) error {
	return relay(c, http.StatusOK)(h.api.SearchAccount(c.Request().Context(), c.QueryParam("q")))
}

// Account returns the details of one account.
//
// @Summary      Account details
// @Tags         analyst
// @Produce      json
// @Param        account_no  path      string  true  "Account number"
// @Success      200         {object}  map[string]any
// @Router       /analyst/accounts/{account_no} [get]
func (h *AnalystHandler) Account(c echo.Context) error {
	return relay(c, http.StatusOK)(h.api.AccountDetails(c.Request().Context(), c.Param("account_no")))
}

// DailyReport generates and downloads the daily alerts PDF.
//
// @Summary      Daily alerts report
// @Tags         analyst
// @Produce      application/pdf
// @Success      200  {file}    binary
// @Router       /analyst/reports/daily [get]
func (h *AnalystHandler) DailyReport(c echo.Context) error {
	data, err := h.api.DownloadDailyReport(c.Request().Context())
	if err != nil {
		return err
	}
	name := fmt.Sprintf("daily-alerts-%s.pdf", h.now().Format("2006-01-02"))
	return attachment(c, name, data)
}
