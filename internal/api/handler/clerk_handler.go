package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vault42/console/internal/core/ports"
)

// ClerkHandler serves the branch clerk dashboard.
type ClerkHandler struct {
	api ports.ClerkAPI
}

func NewClerkHandler(api ports.ClerkAPI) *ClerkHandler {
	return &ClerkHandler{api: api}
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

// Applications lists pending account applications.
//
// @Summary      Pending applications
// @Tags         clerk
// @Produce      json
// @Success      200  {array}  domain.Application
// @Router       /clerk/applications [get]
func (h *ClerkHandler) Applications(c echo.Context) error {
	apps, err := h.api.PendingApplications(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, apps)
}

// ApproveApplication opens the account.
//
// @Summary      Approve an application
// @Tags         clerk
// @Produce      json
// @Param        application_no  path      string  true  "Application number"
// @Success      200             {object}  map[string]any
// @Router       /clerk/applications/{application_no}/approve [post]
func (h *ClerkHandler) ApproveApplication(c echo.Context) error {
	return relay(c, http.StatusOK)(h.api.ApproveApplication(c.Request().Context(), c.Param("application_no")))
}

// RejectApplication declines the application.
//
// @Summary      Reject an application
// @Tags         clerk
// @Accept       json
// @Produce      json
// @Param        application_no  path      string         true   "Application number"
// @Param        body            body      rejectRequest  false  "Reason"
// @Success      200             {object}  map[string]any
// @Router       /clerk/applications/{application_no}/reject [post]
func (h *ClerkHandler) RejectApplication(c echo.Context) error {
	var req rejectRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	return relay(c, http.StatusOK)(h.api.RejectApplication(c.Request().Context(), c.Param("application_no"), req.Reason))
}

// Deposits lists cash deposits awaiting approval.
//
// @Summary      Pending deposits
// @Tags         clerk
// @Produce      json
// @Success      200  {array}  domain.PendingDeposit
// @Router       /clerk/deposits [get]
func (h *ClerkHandler) Deposits(c echo.Context) error {
	deps, err := h.api.PendingDeposits(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, deps)
}

// ApproveDeposit credits the deposit.
//
// @Summary      Approve a deposit
// @Tags         clerk
// @Produce      json
// @Param        transaction_id  path      string  true  "Transaction id"
// @Success      200             {object}  map[string]any
// @Router       /clerk/deposits/{transaction_id}/approve [post]
func (h *ClerkHandler) ApproveDeposit(c echo.Context) error {
	return relay(c, http.StatusOK)(h.api.ApproveDeposit(c.Request().Context(), c.Param("transaction_id")))
}

// RejectDeposit declines the deposit.
//
// @Summary      Reject a deposit
// @Tags         clerk
// @Produce      json
// @Param        transaction_id  path      string  true  "Transaction id"
// @Success      200             {object}  map[string]any
// @Router       /clerk/deposits/{transaction_id}/reject [post]
func (h *ClerkHandler) RejectDeposit(c echo.Context) error {
	return relay(c, http.StatusOK)(h.api.RejectDeposit(c.Request().Context(), c.Param("transaction_id")))
}

// Reports lists generated reports.
//
// @Summary      Generated reports
// @Tags         clerk
// @Produce      json
// @Success      200  {array}  domain.Report
// @Router       /clerk/reports [get]
func (h *ClerkHandler) Reports(c echo.Context) error {
	reports, err := h.api.GeneratedReports(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reports)
}

// DownloadReport streams one report PDF.
//
// @Summary      Download a report
// @Tags         clerk
// @Produce      application/pdf
// @Param        report_id  path    string  true  "Report id"
// @Success      200        {file}  binary
// @Router       /clerk/reports/{report_id}/download [get]
func (h *ClerkHandler) DownloadReport(c echo.Context) error {
	data, err := h.api.DownloadReport(c.Request().Context(), c.Param("report_id"))
	if err != nil {
		return err
	}
	return attachment(c, "report-"+c.Param("report_id")+".pdf", data)
}
