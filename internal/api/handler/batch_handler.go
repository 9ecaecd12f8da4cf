package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vault42/console/internal/core/domain"
	"github.com/vault42/console/internal/core/ports"
)

// BatchHandler applies back-office actions in bulk.
type BatchHandler struct {
	runner ports.BatchRunner
}

func NewBatchHandler(runner ports.BatchRunner) *BatchHandler {
	return &BatchHandler{runner: runner}
}

type batchRequest struct {
	Items []domain.BatchItem `json:"items" validate:"required,min=1,max=100,dive"`
}

type batchResponse struct {
	Succeeded int                  `json:"succeeded"`
	Failed    int                  `json:"failed"`
	Results   []domain.BatchResult `json:"results"`
}

// Run applies every item and reports each outcome. Item failures do not fail
// the request; the status is 207 when any item failed.
//
// @Summary      Apply back-office actions in bulk
// @Tags         batch
// @Accept       json
// @Produce      json
// @Param        body  body      batchRequest  true  "Actions"
// @Success      200   {object}  batchResponse
// @Success      207   {object}  batchResponse
// @Failure      400   {object}  map[string]string
// @Router       /batch [post]
func (h *BatchHandler) Run(c echo.Context) error {
	var req batchRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	resp := batchResponse{Results: h.runner.Run(c.Request().Context(), req.Items)}
	for _, r := range resp.Results {
		if r.OK() {
			resp.Succeeded++
		} else {
			resp.Failed++
		}
	}

	status := http.StatusOK
	if resp.Failed > 0 {
		status = http.StatusMultiStatus
	}
	return c.JSON(status, resp)
}
