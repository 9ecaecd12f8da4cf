package main

import (
	"context"

	"github.com/vault42/console/internal/api"
	"github.com/vault42/console/internal/core/domain"
	"github.com/vault42/console/internal/core/service"
	apphttp "github.com/vault42/console/internal/infrastructure/http"
	"github.com/vault42/console/internal/infrastructure/http/handlers"
	"github.com/vault42/console/internal/infrastructure/queue"
	"github.com/vault42/console/pkg/logger"
)

// cmdServe runs the HTTP console on top of the same session the CLI uses.
func cmdServe(ctx context.Context, a *app, args []string) error {
	fs := newFlags(a, "serve")
	addr := fs.String("addr", a.cfg.HTTPAddr, "listen address")
	workers := fs.Int("batch-workers", 0, "workers for bulk back-office actions")
	if err := fs.Parse(args); err != nil {
		return err
	}
	a.serving = true
	store := a.sessions

	batchLog := logger.Component("batch")
	dispatcher := queue.NewDispatcher(*workers, service.NewBackOfficeService(a.banking, store, batchLog), batchLog)
	dispatcher.Start(ctx)

	e := api.NewRouter(api.Deps{
		Sessions:  store,
		Auth:      service.NewAuthService(a.banking, store, nil, logger.Component("auth")),
		Dashboard: service.NewDashboardService(a.banking, store, logger.Component("dashboard")),
		Chat:      service.NewChatService(a.banking, store, a.storage, logger.Component("chat")),
		Banking:   a.banking,
		Batch:     dispatcher,
		Probes: map[string]handlers.Pinger{
			"storage":     a.storage,
			"banking_api": a.gateway,
		},
		Log:            logger.Component("http"),
		LoginRateLimit: a.cfg.LoginRateLimit,
		Production:     a.cfg.IsProduction(),
	})

	unsubscribe := store.Subscribe(func(_ domain.Session, ok bool) {
		a.log.Info().Bool("authenticated", ok).Msg("session changed")
	})
	defer unsubscribe()

	return apphttp.Serve(ctx, e, *addr, logger.Component("http"))
}
