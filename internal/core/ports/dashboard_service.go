package ports

import (
	"context"

	"github.com/vault42/console/internal/core/domain"
)

// DashboardView is everything the customer overview page renders.
type DashboardView struct {
	Overview          *domain.DashboardOverview `json:"overview"`
	Transactions      []domain.Transaction      `json:"transactions"`
	MonthlyStats      []domain.MonthlyStat      `json:"monthly_stats"`
	Spending          domain.SpendingAnalysis   `json:"spending"`
	TotalIncome       float64                   `json:"total_income"`
	TotalExpense      float64                   `json:"total_expense"`
	IncomePercentage  float64                   `json:"income_percentage"`
	ExpensePercentage float64                   `json:"expense_percentage"`
}

type DashboardService interface {
	Load(ctx context.Context) (*DashboardView, error)
}

type ChatService interface {
	Transcript(ctx context.Context) ([]domain.TranscriptEntry, error)
	Send(ctx context.Context, text string) ([]domain.TranscriptEntry, error)
	UploadKYC(ctx context.Context, action string, file domain.UploadFile) ([]domain.TranscriptEntry, error)
	Clear(ctx context.Context) error
}
