package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vault42/console/internal/core/domain"
	"github.com/vault42/console/internal/core/ports"
)

const maxKYCUpload = 10 << 20

// ChatHandler serves the assistant transcript and KYC uploads.
type ChatHandler struct {
	chat ports.ChatService
}

func NewChatHandler(chat ports.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

type chatRequest struct {
	Message string `json:"message" validate:"required"`
}

// Transcript returns the stored conversation.
//
// @Summary      Chat transcript
// @Tags         chat
// @Produce      json
// @Success      200  {array}  domain.TranscriptEntry
// @Router       /chat [get]
func (h *ChatHandler) Transcript(c echo.Context) error {
	entries, err := h.chat.Transcript(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entries)
}

// Send posts a message to the assistant and returns the updated transcript.
//
// @Summary      Send a chat message
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        body  body      chatRequest  true  "Message"
// @Success      200   {array}   domain.TranscriptEntry
// @Failure      400   {object}  map[string]string
// @Router       /chat [post]
func (h *ChatHandler) Send(c echo.Context) error {
	var req chatRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	entries, err := h.chat.Send(c.Request().Context(), req.Message)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entries)
}

// Clear wipes the transcript.
//
// @Summary      Clear the chat transcript
// @Tags         chat
// @Success      204
// @Router       /chat [delete]
func (h *ChatHandler) Clear(c echo.Context) error {
	if err := h.chat.Clear(c.Request().Context()); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Upload forwards a KYC document requested by the assistant.
//
// @Summary      Upload a KYC document
// @Tags         chat
// @Accept       multipart/form-data
// @Produce      json
// @Param        action  formData  string  true  "upload_adhar, upload_pan or upload_live_photo"
// @Param        file    formData  file    true  "Document image"
// @Success      200     {array}   domain.TranscriptEntry
// @Failure      400     {object}  map[string]string
// @Router       /chat/upload [post]
func (h *ChatHandler) Upload(c echo.Context) error {
	action := c.FormValue("action")
	fh, err := c.FormFile("file")
	if err != nil {
		return domain.Invalid("file is required")
	}
	if fh.Size > maxKYCUpload {
		return domain.Invalid("file must be at most 10 MiB")
	}

	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer f.Close()
	content, err := io.ReadAll(io.LimitReader(f, maxKYCUpload))
	if err != nil {
		return err
	}

	entries, err := h.chat.UploadKYC(c.Request().Context(), action, domain.UploadFile{Name: fh.Filename, Content: content})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entries)
}
