package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/vault42/console/internal/core/domain"
	"github.com/vault42/console/internal/core/ports"
)

type stubCustomerAPI struct {
	ports.CustomerAPI
	transactionsFn func(ctx context.Context, accountNo string) ([]domain.Transaction, error)
	depositFn      func(ctx context.Context, accountNo string, amount float64) (json.RawMessage, error)
}

func (s *stubCustomerAPI) Transactions(ctx context.Context, accountNo string) ([]domain.Transaction, error) {
	return s.transactionsFn(ctx, accountNo)
}

func (s *stubCustomerAPI) DepositCash(ctx context.Context, accountNo string, amount float64) (json.RawMessage, error) {
	return s.depositFn(ctx, accountNo, amount)
}

func withSession(c echo.Context, sess domain.Session) echo.Context {
	sess.IsAuthenticated = true
	c.Set(ContextKeySession, sess)
	return c
}

func TestCustomerHandler_Transactions_UsesSessionAccount(t *testing.T) {
	e := newEcho()
	api := &stubCustomerAPI{
		transactionsFn: func(ctx context.Context, accountNo string) ([]domain.Transaction, error) {
			if accountNo != "4200000001" {
				t.Fatalf("unexpected account %q", accountNo)
			}
			return []domain.Transaction{{TransactionID: "t1", Amount: 10, TransactionType: domain.TransactionCredit}}, nil
		},
	}
	h := NewCustomerHandler(nil, api)

	rec := httptest.NewRecorder()
	c := withSession(e.NewContext(httptest.NewRequest(http.MethodGet, "/transactions", nil), rec), domain.Session{UserID: "u1", AccountNo: "4200000001"})
	if err := h.Transactions(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var txns []domain.Transaction
	if err := json.Unmarshal(rec.Body.Bytes(), &txns); err != nil || len(txns) != 1 {
		t.Fatalf("unexpected body %s (%v)", rec.Body.String(), err)
	}
}

func TestCustomerHandler_Transactions_UnknownAccount(t *testing.T) {
	e := newEcho()
	h := NewCustomerHandler(nil, &stubCustomerAPI{})

	c := withSession(e.NewContext(httptest.NewRequest(http.MethodGet, "/transactions", nil), httptest.NewRecorder()), domain.Session{UserID: "u1"})
	if err := h.Transactions(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCustomerHandler_Deposit(t *testing.T) {
	e := newEcho()
	api := &stubCustomerAPI{
		depositFn: func(ctx context.Context, accountNo string, amount float64) (json.RawMessage, error) {
			if accountNo != "4200000001" || amount != 2500 {
				t.Fatalf("unexpected args %q %v", accountNo, amount)
			}
			return json.RawMessage(`{"status":"pending"}`), nil
		},
	}
	h := NewCustomerHandler(nil, api)

	rec := httptest.NewRecorder()
	c := withSession(e.NewContext(jsonRequest(http.MethodPost, "/deposit", `{"amount":2500}`), rec), domain.Session{UserID: "u1", AccountNo: "4200000001"})
	if err := h.Deposit(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusAccepted || rec.Body.String() != `{"status":"pending"}` {
		t.Fatalf("unexpected response %d %s", rec.Code, rec.Body.String())
	}
}

func TestCustomerHandler_Deposit_RejectsNonPositive(t *testing.T) {
	e := newEcho()
	h := NewCustomerHandler(nil, &stubCustomerAPI{})

	c := withSession(e.NewContext(jsonRequest(http.MethodPost, "/deposit", `{"amount":0}`), httptest.NewRecorder()), domain.Session{UserID: "u1", AccountNo: "1"})
	if err := h.Deposit(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

type stubChat struct {
	ports.ChatService
	uploadFn func(ctx context.Context, action string, file domain.UploadFile) ([]domain.TranscriptEntry, error)
}

func (s *stubChat) UploadKYC(ctx context.Context, action string, file domain.UploadFile) ([]domain.TranscriptEntry, error) {
	return s.uploadFn(ctx, action, file)
}

func TestChatHandler_Upload(t *testing.T) {
	e := newEcho()
	chat := &stubChat{
		uploadFn: func(ctx context.Context, action string, file domain.UploadFile) ([]domain.TranscriptEntry, error) {
			if action != domain.ActionUploadPAN || file.Name != "pan.png" || string(file.Content) != "png-bytes" {
				t.Fatalf("unexpected upload %q %q %q", action, file.Name, file.Content)
			}
			return []domain.TranscriptEntry{{ID: "m1", Text: "PAN verified", Sender: domain.SenderBot}}, nil
		},
	}
	h := NewChatHandler(chat)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	_ = w.WriteField("action", domain.ActionUploadPAN)
	part, _ := w.CreateFormFile("file", "pan.png")
	_, _ = part.Write([]byte("png-bytes"))
	_ = w.Close()

	req := httptest.NewRequest(http.MethodPost, "/chat/upload", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()

	if err := h.Upload(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestChatHandler_Upload_MissingFile(t *testing.T) {
	e := newEcho()
	h := NewChatHandler(&stubChat{})

	c := e.NewContext(jsonRequest(http.MethodPost, "/chat/upload", `{}`), httptest.NewRecorder())
	if err := h.Upload(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestNavHandler_AnalystLinks(t *testing.T) {
	e := newEcho()
	sessions := &stubSessions{sess: &domain.Session{
		UserID:          "u1",
		Role:            domain.Roles[domain.RoleAnalyst].ID.String(),
		IsAuthenticated: true,
	}}
	h := NewNavHandler(sessions)

	rec := httptest.NewRecorder()
	if err := h.Nav(e.NewContext(httptest.NewRequest(http.MethodGet, "/nav?route=/dashboard/analyst", nil), rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp navResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Role != "analyst" || !resp.CanAccess || resp.ChatbotVisible {
		t.Fatalf("unexpected nav %+v", resp)
	}
	if len(resp.Links) != 1 || resp.Links[0].Route != domain.RouteAnalystDashboard {
		t.Fatalf("unexpected links %+v", resp.Links)
	}
}
