package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vault42/console/internal/core/domain"
	"github.com/vault42/console/internal/core/ports"
)

// CustomerHandler serves the customer dashboard pages.
type CustomerHandler struct {
	dashboard ports.DashboardService
	api       ports.CustomerAPI
}

func NewCustomerHandler(dashboard ports.DashboardService, api ports.CustomerAPI) *CustomerHandler {
	return &CustomerHandler{dashboard: dashboard, api: api}
}

type depositRequest struct {
	Amount    float64 `json:"amount" validate:"gt=0"`
	AccountNo string  `json:"account_no"`
}

// Dashboard loads the overview page.
//
// @Summary      Customer overview
// @Tags         customer
// @Produce      json
// @Success      200  {object}  ports.DashboardView
// @Failure      401  {object}  map[string]string
// @Router       /dashboard [get]
func (h *CustomerHandler) Dashboard(c echo.Context) error {
	view, err := h.dashboard.Load(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// Transactions lists the history of the session's account.
//
// @Summary      Transaction history
// @Tags         customer
// @Produce      json
// @Success      200  {array}   domain.Transaction
// @Failure      400  {object}  map[string]string
// @Router       /transactions [get]
func (h *CustomerHandler) Transactions(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	accountNo := c.QueryParam("account_no")
	if accountNo == "" {
		accountNo = sess.AccountNo
	}
	if accountNo == "" {
		return domain.Invalid("account number unknown; load the dashboard first")
	}

	txns, err := h.api.Transactions(c.Request().Context(), accountNo)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, txns)
}

// Deposit requests a cash deposit into the session's account.
//
// @Summary      Request a cash deposit
// @Tags         customer
// @Accept       json
// @Produce      json
// @Param        body  body      depositRequest  true  "Amount"
// @Success      202   {object}  map[string]any
// @Failure      400   {object}  map[string]string
// @Router       /deposit [post]
func (h *CustomerHandler) Deposit(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	var req depositRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	accountNo := req.AccountNo
	if accountNo == "" {
		accountNo = sess.AccountNo
	}

	res, err := h.api.DepositCash(c.Request().Context(), accountNo, req.Amount)
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusAccepted, res)
}

// Profile relays the customer profile.
//
// @Summary      Customer profile
// @Tags         customer
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /profile [get]
func (h *CustomerHandler) Profile(c echo.Context) error {
	res, err := h.api.CustomerProfile(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, res)
}
