package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/vault42/console/internal/core/domain"
	"github.com/vault42/console/internal/core/ports"
)

// BankingService is the typed client of the banking API. Every call goes
// through the Gateway.
type BankingService struct {
	gw             ports.Gateway
	customerRoleID string
}

// NewBankingService builds the client. customerRoleID is sent with
// registrations and defaults to the customer entry of the role table.
func NewBankingService(gw ports.Gateway, customerRoleID string) *BankingService {
	if customerRoleID == "" {
		customerRoleID = domain.Roles[domain.RoleCustomer].ID.String()
	}
	return &BankingService{gw: gw, customerRoleID: customerRoleID}
}

var _ ports.BankingAPI = (*BankingService)(nil)

func (s *BankingService) get(ctx context.Context, path string, out any) error {
	return s.gw.Do(ctx, ports.Request{Method: http.MethodGet, Path: path}, out)
}

func (s *BankingService) post(ctx context.Context, path string, body, out any) error {
	return s.gw.Do(ctx, ports.Request{Method: http.MethodPost, Path: path, Body: body}, out)
}

func (s *BankingService) raw(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	var out json.RawMessage
	if err := s.gw.Do(ctx, ports.Request{Method: method, Path: path, Body: body}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func required(name, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", domain.Invalid("%s is required", name)
	}
	return url.PathEscape(value), nil
}

// ── Customer ──────────────────────────────────────────────────────────────────

func (s *BankingService) DashboardOverview(ctx context.Context, userID string) (*domain.DashboardOverview, error) {
	id, err := required("user id", userID)
	if err != nil {
		return nil, err
	}
	var out domain.DashboardOverview
	if err := s.get(ctx, "/customers/dashboard/"+id, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *BankingService) Transactions(ctx context.Context, accountNo string) ([]domain.Transaction, error) {
	no, err := required("account number", accountNo)
	if err != nil {
		return nil, err
	}
	var out []domain.Transaction
	if err := s.get(ctx, "/transactions/account/"+no, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *BankingService) MonthlyStats(ctx context.Context) ([]domain.MonthlyStat, error) {
	var out []domain.MonthlyStat
	if err := s.get(ctx, "/transactions/stats/monthly", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *BankingService) SpendingAnalysis(ctx context.Context) (domain.SpendingAnalysis, error) {
	var out domain.SpendingAnalysis
	if err := s.get(ctx, "/transactions/spending-analysis", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *BankingService) DepositCash(ctx context.Context, accountNo string, amount float64) (json.RawMessage, error) {
	if strings.TrimSpace(accountNo) == "" {
		return nil, domain.Invalid("account number is required")
	}
	if amount <= 0 {
		return nil, domain.Invalid("amount must be greater than 0")
	}
	body := map[string]any{"account_no": accountNo, "amount": amount}
	return s.raw(ctx, http.MethodPost, "/transactions/deposit-cash", body)
}

func (s *BankingService) CustomerProfile(ctx context.Context) (json.RawMessage, error) {
	return s.raw(ctx, http.MethodGet, "/customers/profile", nil)
}

func (s *BankingService) Chat(ctx context.Context, message, userID string) (*domain.ChatResponse, error) {
	var out domain.ChatResponse
	body := map[string]string{"message": message, "user_id": userID}
	if err := s.post(ctx, "/chatbot/chat", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *BankingService) UploadKYC(ctx context.Context, userID, fileType string, file domain.UploadFile) (*domain.ChatResponse, error) {
	if len(file.Content) == 0 {
		return nil, domain.Invalid("file is empty")
	}
	fields := map[string]string{"user_id": userID, "file_type": fileType}
	var out domain.ChatResponse
	if err := s.gw.Upload(ctx, "/chatbot/upload", fields, file, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ── Care ──────────────────────────────────────────────────────────────────────

func (s *BankingService) Grievances(ctx context.Context, statusFilter string) (json.RawMessage, error) {
	if statusFilter == "" {
		statusFilter = "all"
	}
	return s.raw(ctx, http.MethodGet, "/grievances/?status_filter="+url.QueryEscape(statusFilter), nil)
}

func (s *BankingService) UpdateGrievanceStatus(ctx context.Context, id, status string) (json.RawMessage, error) {
	gid, err := required("grievance id", id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(status) == "" {
		return nil, domain.Invalid("status is required")
	}
	return s.raw(ctx, http.MethodPut, "/grievances/"+gid, map[string]string{"status": status})
}

func (s *BankingService) GrievanceAISummary(ctx context.Context) (json.RawMessage, error) {
	return s.raw(ctx, http.MethodGet, "/grievances/ai-summary", nil)
}

func (s *BankingService) GrievanceStats(ctx context.Context) (json.RawMessage, error) {
	return s.raw(ctx, http.MethodGet, "/grievances/stats", nil)
}

func (s *BankingService) Customer360(ctx context.Context, userID string) (json.RawMessage, error) {
	id, err := required("user id", userID)
	if err != nil {
		return nil, err
	}
	return s.raw(ctx, http.MethodGet, "/care/customer-360/"+id, nil)
}

// ── Analyst ───────────────────────────────────────────────────────────────────

func (s *BankingService) AnalystStats(ctx context.Context) (json.RawMessage, error) {
	return s.raw(ctx, http.MethodGet, "/analyst/dashboard-stats", nil)
}

func (s *BankingService) AnalystAlerts(ctx context.Context) ([]domain.Alert, error) {
	var out []domain.Alert
	if err := s.get(ctx, "/analyst/alerts", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *BankingService) BlockAccount(ctx context.Context, accountNo, reason string) (json.RawMessage, error) {
	no, err := required("account number", accountNo)
	if err != nil {
		return nil, err
	}
	return s.raw(ctx, http.MethodPost, "/analyst/block/"+no, map[string]string{"reason": reason})
}

func (s *BankingService) UnblockAccount(ctx context.Context, accountNo string) (json.RawMessage, error) {
	no, err := required("account number", accountNo)
	if err != nil {
		return nil, err
	}
	return s.raw(ctx, http.MethodPost, "/analyst/unblock/"+no, nil)
}

func (s *BankingService) BlockedAccounts(ctx context.Context) (json.RawMessage, error) {
	return s.raw(ctx, http.MethodGet, "/analyst/blocked-accounts", nil)
}

func (s *BankingService) SearchAccount(ctx context.Context, query string) (json.RawMessage, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domain.Invalid("query is required")
	}
	return s.raw(ctx, http.MethodGet, "/analyst/search?query="+url.QueryEscape(query), nil)
}

func (s *BankingService) AccountDetails(ctx context.Context, accountNo string) (json.RawMessage, error) {
	no, err := required("account number", accountNo)
	if err != nil {
		return nil, err
	}
	return s.raw(ctx, http.MethodGet, "/analyst/account/"+no, nil)
}

func (s *BankingService) DownloadDailyReport(ctx context.Context) ([]byte, error) {
	return s.gw.Download(ctx, http.MethodPost, "/reports/generate/daily-alerts")
}

// ── Clerk ─────────────────────────────────────────────────────────────────────

func (s *BankingService) PendingApplications(ctx context.Context) ([]domain.Application, error) {
	var out []domain.Application
	if err := s.get(ctx, "/applications/?status=pending", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *BankingService) ApproveApplication(ctx context.Context, applicationNo string) (json.RawMessage, error) {
	no, err := required("application number", applicationNo)
	if err != nil {
		return nil, err
	}
	return s.raw(ctx, http.MethodPost, "/applications/"+no+"/approve", nil)
}

func (s *BankingService) RejectApplication(ctx context.Context, applicationNo, reason string) (json.RawMessage, error) {
	no, err := required("application number", applicationNo)
	if err != nil {
		return nil, err
	}
	return s.raw(ctx, http.MethodPost, "/applications/"+no+"/reject", map[string]string{"reason": reason})
}

func (s *BankingService) PendingDeposits(ctx context.Context) ([]domain.PendingDeposit, error) {
	var out []domain.PendingDeposit
	if err := s.get(ctx, "/transactions/pending-deposits", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *BankingService) ApproveDeposit(ctx context.Context, transactionID string) (json.RawMessage, error) {
	id, err := required("transaction id", transactionID)
	if err != nil {
		return nil, err
	}
	return s.raw(ctx, http.MethodPost, "/transactions/"+id+"/approve-deposit", nil)
}

func (s *BankingService) RejectDeposit(ctx context.Context, transactionID string) (json.RawMessage, error) {
	id, err := required("transaction id", transactionID)
	if err != nil {
		return nil, err
	}
	return s.raw(ctx, http.MethodPost, "/transactions/"+id+"/reject-deposit", nil)
}

func (s *BankingService) GeneratedReports(ctx context.Context) ([]domain.Report, error) {
	var out []domain.Report
	if err := s.get(ctx, "/reports/", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *BankingService) DownloadReport(ctx context.Context, reportID string) ([]byte, error) {
	id, err := required("report id", reportID)
	if err != nil {
		return nil, err
	}
	return s.gw.Download(ctx, http.MethodGet, "/reports/"+id+"/download")
}

// ── Account ───────────────────────────────────────────────────────────────────

func (s *BankingService) Login(ctx context.Context, email, password string) (*domain.TokenResponse, error) {
	var out domain.TokenResponse
	body := map[string]string{"email": email, "password": password}
	if err := s.post(ctx, "/auth/login", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *BankingService) Register(ctx context.Context, email, password, mobileNo string) error {
	body := map[string]string{
		"email":     email,
		"password":  password,
		"mobile_no": mobileNo,
		"role_id":   s.customerRoleID,
	}
	return s.post(ctx, "/users/", body, nil)
}
