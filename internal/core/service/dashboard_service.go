package service

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/vault42/console/internal/core/domain"
	"github.com/vault42/console/internal/core/ports"
)

// DashboardService loads the customer overview page. Each resource is fetched
// best effort: a failed fetch is logged and rendered empty.
type DashboardService struct {
	api      ports.CustomerAPI
	sessions ports.SessionService
	log      zerolog.Logger
}

func NewDashboardService(api ports.CustomerAPI, sessions ports.SessionService, log zerolog.Logger) *DashboardService {
	return &DashboardService{api: api, sessions: sessions, log: log}
}

var _ ports.DashboardService = (*DashboardService)(nil)

func (s *DashboardService) Load(ctx context.Context) (*ports.DashboardView, error) {
	sess, ok := s.sessions.Current()
	if !ok {
		return nil, domain.ErrNoSession
	}

	view := &ports.DashboardView{
		Transactions: []domain.Transaction{},
		MonthlyStats: []domain.MonthlyStat{},
	}

	var g errgroup.Group
	g.Go(func() error {
		overview, err := s.api.DashboardOverview(ctx, sess.UserID)
		if err != nil {
			s.log.Warn().Err(err).Str("user_id", sess.UserID).Msg("dashboard overview unavailable")
			return nil
		}
		view.Overview = overview
		return nil
	})
	g.Go(func() error {
		stats, err := s.api.MonthlyStats(ctx)
		if err != nil {
			s.log.Warn().Err(err).Msg("monthly stats unavailable")
			return nil
		}
		if stats != nil {
			view.MonthlyStats = stats
		}
		return nil
	})
	g.Go(func() error {
		spending, err := s.api.SpendingAnalysis(ctx)
		if err != nil {
			s.log.Warn().Err(err).Msg("spending analysis unavailable")
			return nil
		}
		view.Spending = spending
		return nil
	})
	// Every fetch swallows its own error.
	_ = g.Wait()

	if ov := view.Overview; ov != nil {
		s.backfillSession(ctx, ov)

		// Transactions depend on the account number the overview resolved.
		if ov.AccountNo != "" {
			txs, err := s.api.Transactions(ctx, ov.AccountNo)
			if err != nil {
				s.log.Warn().Err(err).Str("account_no", ov.AccountNo).Msg("transactions unavailable")
			} else if txs != nil {
				view.Transactions = txs
			}
		}
	}

	view.TotalIncome, view.TotalExpense = flowTotals(view.MonthlyStats)
	view.IncomePercentage, view.ExpensePercentage = flowShares(view.TotalIncome, view.TotalExpense)
	return view, nil
}

func (s *DashboardService) backfillSession(ctx context.Context, ov *domain.DashboardOverview) {
	if ov.CustomerName == "" && ov.AccountNo == "" {
		return
	}
	var update domain.SessionUpdate
	if ov.CustomerName != "" {
		name := ov.CustomerName
		update.Name = &name
	}
	if ov.AccountNo != "" {
		accountNo := ov.AccountNo
		update.AccountNo = &accountNo
	}
	s.sessions.UpdateUser(ctx, update)
}

func flowTotals(stats []domain.MonthlyStat) (income, expense float64) {
	for _, m := range stats {
		income += m.Credit
		expense += m.Debit
	}
	return income, expense
}

func flowShares(income, expense float64) (incomePct, expensePct float64) {
	total := income + expense
	if total <= 0 {
		return 0, 0
	}
	return income / total * 100, expense / total * 100
}
