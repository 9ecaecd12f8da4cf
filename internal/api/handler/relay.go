package handler

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"
)

// relay writes an upstream JSON document through unchanged.
func relay(c echo.Context, status int) func(json.RawMessage, error) error {
	return func(body json.RawMessage, err error) error {
		if err != nil {
			return err
		}
		if len(body) == 0 {
			return c.NoContent(status)
		}
		return c.JSONBlob(status, body)
	}
}

// attachment streams a downloaded report to the caller.
func attachment(c echo.Context, filename string, data []byte) error {
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Blob(http.StatusOK, "application/pdf", data)
}
