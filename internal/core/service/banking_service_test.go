package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/vault42/console/internal/core/domain"
	"github.com/vault42/console/internal/core/ports"
)

type call struct {
	method string
	path   string
	body   any
	fields map[string]string
}

// recordingGateway answers every call with reply and remembers what was sent.
type recordingGateway struct {
	calls []call
	reply string
	err   error
}

func (g *recordingGateway) Do(_ context.Context, req ports.Request, out any) error {
	g.calls = append(g.calls, call{method: req.Method, path: req.Path, body: req.Body})
	if g.err != nil {
		return g.err
	}
	if out == nil || g.reply == "" {
		return nil
	}
	return json.Unmarshal([]byte(g.reply), out)
}

func (g *recordingGateway) Download(_ context.Context, method, path string) ([]byte, error) {
	g.calls = append(g.calls, call{method: method, path: path})
	return []byte("%PDF"), g.err
}

func (g *recordingGateway) Upload(_ context.Context, path string, fields map[string]string, _ domain.UploadFile, out any) error {
	g.calls = append(g.calls, call{method: http.MethodPost, path: path, fields: fields})
	if g.reply == "" {
		return g.err
	}
	return json.Unmarshal([]byte(g.reply), out)
}

func (g *recordingGateway) Ping(context.Context) error { return nil }

func (g *recordingGateway) last(t *testing.T) call {
	t.Helper()
	if len(g.calls) == 0 {
		t.Fatal("no gateway call recorded")
	}
	return g.calls[len(g.calls)-1]
}

func TestBankingService_Endpoints(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name       string
		invoke     func(s *BankingService) error
		wantMethod string
		wantPath   string
	}{
		{"dashboard", func(s *BankingService) error { _, err := s.DashboardOverview(ctx, "u1"); return err }, http.MethodGet, "/customers/dashboard/u1"},
		{"transactions", func(s *BankingService) error { _, err := s.Transactions(ctx, "42 01"); return err }, http.MethodGet, "/transactions/account/42%2001"},
		{"monthly stats", func(s *BankingService) error { _, err := s.MonthlyStats(ctx); return err }, http.MethodGet, "/transactions/stats/monthly"},
		{"spending", func(s *BankingService) error { _, err := s.SpendingAnalysis(ctx); return err }, http.MethodGet, "/transactions/spending-analysis"},
		{"profile", func(s *BankingService) error { _, err := s.CustomerProfile(ctx); return err }, http.MethodGet, "/customers/profile"},
		{"grievances default filter", func(s *BankingService) error { _, err := s.Grievances(ctx, ""); return err }, http.MethodGet, "/grievances/?status_filter=all"},
		{"grievance update", func(s *BankingService) error { _, err := s.UpdateGrievanceStatus(ctx, "g1", "resolved"); return err }, http.MethodPut, "/grievances/g1"},
		{"customer 360", func(s *BankingService) error { _, err := s.Customer360(ctx, "u7"); return err }, http.MethodGet, "/care/customer-360/u7"},
		{"analyst search", func(s *BankingService) error { _, err := s.SearchAccount(ctx, "john doe"); return err }, http.MethodGet, "/analyst/search?query=john+doe"},
		{"block", func(s *BankingService) error { _, err := s.BlockAccount(ctx, "42", "fraud"); return err }, http.MethodPost, "/analyst/block/42"},
		{"unblock", func(s *BankingService) error { _, err := s.UnblockAccount(ctx, "42"); return err }, http.MethodPost, "/analyst/unblock/42"},
		{"daily report", func(s *BankingService) error { _, err := s.DownloadDailyReport(ctx); return err }, http.MethodPost, "/reports/generate/daily-alerts"},
		{"applications", func(s *BankingService) error { _, err := s.PendingApplications(ctx); return err }, http.MethodGet, "/applications/?status=pending"},
		{"approve application", func(s *BankingService) error { _, err := s.ApproveApplication(ctx, "A1"); return err }, http.MethodPost, "/applications/A1/approve"},
		{"reject deposit", func(s *BankingService) error { _, err := s.RejectDeposit(ctx, "T1"); return err }, http.MethodPost, "/transactions/T1/reject-deposit"},
		{"report download", func(s *BankingService) error { _, err := s.DownloadReport(ctx, "R1"); return err }, http.MethodGet, "/reports/R1/download"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := &recordingGateway{}
			if err := tt.invoke(NewBankingService(gw, "")); err != nil {
				t.Fatalf("call returned error: %v", err)
			}
			got := gw.last(t)
			if got.method != tt.wantMethod || got.path != tt.wantPath {
				t.Fatalf("expected %s %s, got %s %s", tt.wantMethod, tt.wantPath, got.method, got.path)
			}
		})
	}
}

func TestBankingService_RequiredArguments(t *testing.T) {
	ctx := context.Background()
	gw := &recordingGateway{}
	s := NewBankingService(gw, "")

	checks := map[string]error{}
	_, checks["transactions"] = s.Transactions(ctx, " ")
	_, checks["deposit account"] = s.DepositCash(ctx, "", 10)
	_, checks["deposit amount"] = s.DepositCash(ctx, "42", 0)
	_, checks["grievance status"] = s.UpdateGrievanceStatus(ctx, "g1", "")
	_, checks["search"] = s.SearchAccount(ctx, "")
	_, checks["report"] = s.DownloadReport(ctx, "")
	_, checks["upload"] = s.UploadKYC(ctx, "u1", domain.FileTypePAN, domain.UploadFile{Name: "pan.png"})

	for name, err := range checks {
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("%s: expected validation error, got %v", name, err)
		}
	}
	if len(gw.calls) != 0 {
		t.Fatalf("invalid calls must not reach the gateway, got %+v", gw.calls)
	}
}

func TestBankingService_Register_SendsCustomerRole(t *testing.T) {
	gw := &recordingGateway{}
	s := NewBankingService(gw, "")

	if err := s.Register(context.Background(), "a@example.com", "pw", "999"); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	body, ok := gw.last(t).body.(map[string]string)
	if !ok || body["role_id"] != domain.Roles[domain.RoleCustomer].ID.String() || body["mobile_no"] != "999" {
		t.Fatalf("unexpected body %#v", gw.last(t).body)
	}

	custom := NewBankingService(gw, "role-x")
	_ = custom.Register(context.Background(), "a@example.com", "pw", "999")
	if body := gw.last(t).body.(map[string]string); body["role_id"] != "role-x" {
		t.Fatalf("expected configured role id, got %q", body["role_id"])
	}
}

func TestBankingService_DecodesTypedResponses(t *testing.T) {
	gw := &recordingGateway{reply: `[{"alert_id":"a1","account_no":"42","risk_score":0.93}]`}
	alerts, err := NewBankingService(gw, "").AnalystAlerts(context.Background())
	if err != nil {
		t.Fatalf("AnalystAlerts returned error: %v", err)
	}
	if len(alerts) != 1 || alerts[0].RiskScore != 0.93 {
		t.Fatalf("unexpected alerts %+v", alerts)
	}

	gw = &recordingGateway{reply: `{"messages":[{"id":"m1","type":"extraction-success","text":"ok"}]}`}
	resp, err := NewBankingService(gw, "").UploadKYC(context.Background(), "u1", domain.FileTypePAN, domain.UploadFile{Name: "pan.png", Content: []byte{1}})
	if err != nil {
		t.Fatalf("UploadKYC returned error: %v", err)
	}
	if len(resp.Messages) != 1 || gw.last(t).fields["file_type"] != domain.FileTypePAN || gw.last(t).fields["user_id"] != "u1" {
		t.Fatalf("unexpected upload %+v %+v", resp, gw.last(t))
	}
}

func TestBankingService_PropagatesGatewayErrors(t *testing.T) {
	want := &domain.APIError{Status: http.StatusConflict, Message: "Account already blocked", Structured: true}
	gw := &recordingGateway{err: want}

	_, err := NewBankingService(gw, "").BlockAccount(context.Background(), "42", "fraud")
	if got, ok := domain.AsAPIError(err); !ok || got != want {
		t.Fatalf("expected the gateway error, got %v", err)
	}
}
