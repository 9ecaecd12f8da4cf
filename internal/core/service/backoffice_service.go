package service

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/vault42/console/internal/core/domain"
	"github.com/vault42/console/internal/core/ports"
)

// BackOfficeService applies clerk and analyst actions on behalf of the
// current session. Each action is checked against the session role.
type BackOfficeService struct {
	api      ports.BankingAPI
	sessions ports.SessionService
	log      zerolog.Logger
}

func NewBackOfficeService(api ports.BankingAPI, sessions ports.SessionService, log zerolog.Logger) *BackOfficeService {
	return &BackOfficeService{api: api, sessions: sessions, log: log}
}

var _ ports.ActionExecutor = (*BackOfficeService)(nil)

func (s *BackOfficeService) Execute(ctx context.Context, item domain.BatchItem) (json.RawMessage, error) {
	need, ok := item.Action.Role()
	if !ok {
		return nil, domain.Invalid("unknown action %q", item.Action)
	}
	sess, ok := s.sessions.Current()
	if !ok {
		return nil, domain.ErrNoSession
	}
	if have, ok := domain.ResolveRole(sess.Role); !ok || have != need {
		return nil, domain.ErrForbidden
	}

	out, err := s.apply(ctx, item)
	if err != nil {
		return nil, err
	}
	s.log.Info().
		Str("user_id", sess.UserID).
		Str("action", string(item.Action)).
		Str("target", item.Target).
		Msg("back-office action applied")
	return out, nil
}

func (s *BackOfficeService) apply(ctx context.Context, item domain.BatchItem) (json.RawMessage, error) {
	switch item.Action {
	case domain.ActionApproveDeposit:
		return s.api.ApproveDeposit(ctx, item.Target)
	case domain.ActionRejectDeposit:
		return s.api.RejectDeposit(ctx, item.Target)
	case domain.ActionApproveApplication:
		return s.api.ApproveApplication(ctx, item.Target)
	case domain.ActionRejectApplication:
		return s.api.RejectApplication(ctx, item.Target, item.Reason)
	case domain.ActionBlockAccount:
		return s.api.BlockAccount(ctx, item.Target, item.Reason)
	case domain.ActionUnblockAccount:
		return s.api.UnblockAccount(ctx, item.Target)
	default:
		return nil, domain.Invalid("unknown action %q", item.Action)
	}
}
