// Command vault42 is the Vault42 banking console: a CLI over the banking API
// and, with "serve", a local HTTP console backed by the same session.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/rs/zerolog"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/vault42/console/internal/core/ports"
	"github.com/vault42/console/internal/core/service"
	"github.com/vault42/console/internal/infrastructure/config"
	"github.com/vault42/console/internal/infrastructure/db"
	"github.com/vault42/console/internal/infrastructure/gateway"
	"github.com/vault42/console/pkg/logger"
)

// errUsage is returned after usage has been printed.
var errUsage = errors.New("usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, "vault42:", err)
		}
		os.Exit(1)
	}
}

// app is everything a subcommand needs, built once per invocation.
type app struct {
	cfg      *config.Config
	log      zerolog.Logger
	out      io.Writer
	printer  *message.Printer
	storage  ports.ClientStorage
	gateway  *gateway.Client
	sessions *service.SessionStore
	banking  *service.BankingService
	// serving routes navigation to the log instead of stdout.
	serving bool
}

type command struct {
	summary string
	run     func(ctx context.Context, a *app, args []string) error
}

var commands = map[string]command{
	"login":        {"sign in with email and password", cmdLogin},
	"login-token":  {"sign in with an access token", cmdLoginToken},
	"register":     {"create a customer account", cmdRegister},
	"verify-otp":   {"enter the one-time code", cmdVerifyOTP},
	"logout":       {"sign out and clear the chat transcript", cmdLogout},
	"whoami":       {"show the current session", cmdWhoami},
	"nav":          {"show the navigation visible to the session", cmdNav},
	"dashboard":    {"customer overview", cmdDashboard},
	"transactions": {"list account transactions", cmdTransactions},
	"deposit":      {"request a cash deposit", cmdDeposit},
	"profile":      {"customer profile", cmdProfile},
	"chat":         {"talk to the assistant", cmdChat},
	"kyc":          {"upload a KYC document", cmdKYC},
	"alerts":       {"fraud alerts (analyst)", cmdAlerts},
	"report":       {"download a report (clerk or analyst)", cmdReport},
	"batch":        {"apply back-office actions in bulk", cmdBatch},
	"serve":        {"run the HTTP console", cmdServe},
}

func run(ctx context.Context, args []string, out io.Writer) error {
	if len(args) == 0 {
		usage(out)
		return errUsage
	}
	cmd, ok := commands[args[0]]
	if !ok {
		if args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
			usage(out)
			return nil
		}
		usage(out)
		return fmt.Errorf("unknown command %q", args[0])
	}

	a, closeApp, err := bootstrap(ctx, out)
	if err != nil {
		return err
	}
	defer closeApp()

	err = cmd.run(ctx, a, args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	return err
}

func usage(out io.Writer) {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(out, "usage: vault42 <command> [flags]")
	fmt.Fprintln(out)
	for _, name := range names {
		fmt.Fprintf(out, "  %-13s %s\n", name, commands[name].summary)
	}
}

// bootstrap loads configuration, opens client storage and restores the
// persisted session.
func bootstrap(ctx context.Context, out io.Writer) (*app, func(), error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, nil, err
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.LogPretty,
		Env:    cfg.Env,
	})

	storage, closeStorage, err := db.Open(ctx, cfg, logger.Component("storage"))
	if err != nil {
		return nil, nil, fmt.Errorf("open client storage: %w", err)
	}

	fallback, err := gateway.ParseOfflineMode(cfg.OfflineMode)
	if err != nil {
		closeStorage()
		return nil, nil, err
	}

	a := &app{
		cfg:     cfg,
		log:     log,
		out:     out,
		printer: message.NewPrinter(language.English),
		storage: storage,
	}
	a.sessions = service.NewSessionStore(storage, ports.NavigatorFunc(a.navigate), logger.Component("session"))
	a.gateway = gateway.New(cfg.APIBaseURL, a.sessions,
		gateway.WithFallback(fallback),
		gateway.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}),
		gateway.WithLogger(logger.Component("gateway")),
	)
	a.banking = service.NewBankingService(a.gateway, cfg.CustomerRoleID)

	a.sessions.Restore(ctx)
	return a, closeStorage, nil
}

// navigate prints navigation decisions the way a browser would follow them.
func (a *app) navigate(route string) {
	if a.serving {
		a.log.Debug().Str("route", route).Msg("navigate")
		return
	}
	fmt.Fprintf(a.out, "-> %s\n", route)
}
