package ports

import (
	"context"
	"encoding/json"

	"github.com/vault42/console/internal/core/domain"
)

// CustomerAPI covers the customer-facing endpoints.
type CustomerAPI interface {
	DashboardOverview(ctx context.Context, userID string) (*domain.DashboardOverview, error)
	Transactions(ctx context.Context, accountNo string) ([]domain.Transaction, error)
	MonthlyStats(ctx context.Context) ([]domain.MonthlyStat, error)
	SpendingAnalysis(ctx context.Context) (domain.SpendingAnalysis, error)
	DepositCash(ctx context.Context, accountNo string, amount float64) (json.RawMessage, error)
	CustomerProfile(ctx context.Context) (json.RawMessage, error)
	Chat(ctx context.Context, message, userID string) (*domain.ChatResponse, error)
	UploadKYC(ctx context.Context, userID, fileType string, file domain.UploadFile) (*domain.ChatResponse, error)
}

// CareAPI covers the customer care dashboard.
type CareAPI interface {
	Grievances(ctx context.Context, statusFilter string) (json.RawMessage, error)
	UpdateGrievanceStatus(ctx context.Context, id, status string) (json.RawMessage, error)
	GrievanceAISummary(ctx context.Context) (json.RawMessage, error)
	GrievanceStats(ctx context.Context) (json.RawMessage, error)
	Customer360(ctx context.Context, userID string) (json.RawMessage, error)
}

// AnalystAPI covers the fraud analyst dashboard.
type AnalystAPI interface {
	AnalystStats(ctx context.Context) (json.RawMessage, error)
	AnalystAlerts(ctx context.Context) ([]domain.Alert, error)
	BlockAccount(ctx context.Context, accountNo, reason string) (json.RawMessage, error)
	UnblockAccount(ctx context.Context, accountNo string) (json.RawMessage, error)
	BlockedAccounts(ctx context.Context) (json.RawMessage, error)
	SearchAccount(ctx context.Context, query string) (json.RawMessage, error)
	AccountDetails(ctx context.Context, accountNo string) (json.RawMessage, error)
	DownloadDailyReport(ctx context.Context) ([]byte, error)
}

// ClerkAPI covers the branch clerk dashboard.
type ClerkAPI interface {
	PendingApplications(ctx context.Context) ([]domain.Application, error)
	ApproveApplication(ctx context.Context, applicationNo string) (json.RawMessage, error)
	RejectApplication(ctx context.Context, applicationNo, reason string) (json.RawMessage, error)
	PendingDeposits(ctx context.Context) ([]domain.PendingDeposit, error)
	ApproveDeposit(ctx context.Context, transactionID string) (json.RawMessage, error)
	RejectDeposit(ctx context.Context, transactionID string) (json.RawMessage, error)
	GeneratedReports(ctx context.Context) ([]domain.Report, error)
	DownloadReport(ctx context.Context, reportID string) ([]byte, error)
}

// AccountAPI covers credential endpoints.
type AccountAPI interface {
	Login(ctx context.Context, email, password string) (*domain.TokenResponse, error)
	Register(ctx context.Context, email, password, mobileNo string) error
}

// BankingAPI is the typed surface over the Gateway.
type BankingAPI interface {
	CustomerAPI
	CareAPI
	AnalystAPI
	ClerkAPI
	AccountAPI
}
