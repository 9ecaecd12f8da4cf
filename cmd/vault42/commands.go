package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vault42/console/internal/core/domain"
	"github.com/vault42/console/internal/core/ports"
	"github.com/vault42/console/internal/core/service"
	"github.com/vault42/console/internal/infrastructure/queue"
	"github.com/vault42/console/pkg/logger"
)

func newFlags(a *app, name string) *flag.FlagSet {
	fs := flag.NewFlagSet("vault42 "+name, flag.ContinueOnError)
	fs.SetOutput(a.out)
	return fs
}

// require returns the session when it may open route, mirroring the
// console's page guards.
func (a *app) require(route string) (domain.Session, error) {
	sess, ok := a.sessions.Current()
	if !ok {
		return domain.Session{}, fmt.Errorf("%w: run \"vault42 login\" first", domain.ErrNoSession)
	}
	if !domain.CanAccess(true, sess.Role, route) {
		return sess, fmt.Errorf("%w: %s is not available to the %s role", domain.ErrForbidden, route, sess.EffectiveRole())
	}
	return sess, nil
}

func (a *app) authService() *service.AuthService {
	return service.NewAuthService(a.banking, a.sessions, ports.NavigatorFunc(a.navigate), logger.Component("auth"))
}

func (a *app) chatService() *service.ChatService {
	return service.NewChatService(a.banking, a.sessions, a.storage, logger.Component("chat"))
}

// ── Session ───────────────────────────────────────────────────────────────────

func cmdLogin(ctx context.Context, a *app, args []string) error {
	fs := newFlags(a, "login")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "password; VAULT42_PASSWORD is used when empty")
	if err := fs.Parse(args); err != nil {
		return err
	}
	pw := *password
	if pw == "" {
		pw = os.Getenv("VAULT42_PASSWORD")
	}

	if _, err := a.authService().SignIn(ctx, *email, pw); err != nil {
		return err
	}
	sess, _ := a.sessions.Current()
	fmt.Fprintf(a.out, "logged in as %s (%s)\n", sess.Email, sess.EffectiveRole())
	return nil
}

func cmdLoginToken(ctx context.Context, a *app, args []string) error {
	fs := newFlags(a, "login-token")
	email := fs.String("email", "", "account email")
	token := fs.String("token", "", "access token")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if _, err := a.sessions.Login(ctx, *token, *email); err != nil {
		return err
	}
	sess, _ := a.sessions.Current()
	fmt.Fprintf(a.out, "logged in as %s (%s)\n", sess.Email, sess.EffectiveRole())
	return nil
}

func cmdRegister(ctx context.Context, a *app, args []string) error {
	fs := newFlags(a, "register")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "password")
	mobile := fs.String("mobile", "", "mobile number")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if _, err := a.authService().Register(ctx, *email, *password, *mobile); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "account created; verify with: vault42 verify-otp -mode register -code <code>")
	return nil
}

func cmdVerifyOTP(ctx context.Context, a *app, args []string) error {
	fs := newFlags(a, "verify-otp")
	code := fs.String("code", "", "six digit code")
	mode := fs.String("mode", "", `"register" after sign-up`)
	if err := fs.Parse(args); err != nil {
		return err
	}

	_, err := a.authService().VerifyOTP(ctx, *code, *mode)
	return err
}

func cmdLogout(ctx context.Context, a *app, args []string) error {
	if err := newFlags(a, "logout").Parse(args); err != nil {
		return err
	}
	a.sessions.Logout(ctx)
	return nil
}

func cmdWhoami(_ context.Context, a *app, args []string) error {
	if err := newFlags(a, "whoami").Parse(args); err != nil {
		return err
	}
	sess, ok := a.sessions.Current()
	if !ok {
		fmt.Fprintln(a.out, "not logged in")
		return nil
	}
	a.printSession(sess)
	return nil
}

func cmdNav(_ context.Context, a *app, args []string) error {
	fs := newFlags(a, "nav")
	route := fs.String("route", "", "route to check; defaults to the landing page")
	if err := fs.Parse(args); err != nil {
		return err
	}

	sess, ok := a.sessions.Current()
	if *route == "" {
		*route = domain.LandingRoute(sess.Role)
	}
	if ok {
		for _, link := range domain.NavLinks(sess.Role) {
			fmt.Fprintf(a.out, "  %-18s %s\n", link.Name, link.Route)
		}
	} else {
		fmt.Fprintln(a.out, "not logged in")
	}

	access := "denied"
	if domain.CanAccess(ok, sess.Role, *route) {
		access = "allowed"
	}
	assistant := "hidden"
	if domain.ChatbotWidgetVisible(*route) {
		assistant = "shown"
	}
	fmt.Fprintf(a.out, "%s: access %s, assistant %s\n", *route, access, assistant)
	return nil
}

// ── Customer ──────────────────────────────────────────────────────────────────

func cmdDashboard(ctx context.Context, a *app, args []string) error {
	if err := newFlags(a, "dashboard").Parse(args); err != nil {
		return err
	}
	if _, err := a.require(domain.RouteDashboard); err != nil {
		return err
	}

	view, err := service.NewDashboardService(a.banking, a.sessions, logger.Component("dashboard")).Load(ctx)
	if err != nil {
		return err
	}

	if ov := view.Overview; ov != nil {
		fmt.Fprintf(a.out, "%s  account %s (%s, %s)\n", ov.CustomerName, ov.AccountNo, ov.AccountType, ov.AccountStatus)
		fmt.Fprintf(a.out, "balance   %s\n", a.amount(ov.Balance))
	} else {
		fmt.Fprintln(a.out, "account overview unavailable")
	}
	fmt.Fprintf(a.out, "income    %s (%.0f%%)\n", a.amount(view.TotalIncome), view.IncomePercentage)
	fmt.Fprintf(a.out, "expense   %s (%.0f%%)\n", a.amount(view.TotalExpense), view.ExpensePercentage)

	if len(view.Spending) > 0 {
		fmt.Fprintln(a.out, "\nspending")
		for _, category := range sortedKeys(spendingAsAny(view.Spending)) {
			fmt.Fprintf(a.out, "  %-18s %s\n", category, a.amount(view.Spending[category]))
		}
	}

	fmt.Fprintln(a.out, "\nrecent transactions")
	txs := view.Transactions
	if len(txs) > 5 {
		txs = txs[:5]
	}
	a.printTransactions(txs)
	return nil
}

func spendingAsAny(s domain.SpendingAnalysis) map[string]any {
	out := make(map[string]any, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

func cmdTransactions(ctx context.Context, a *app, args []string) error {
	fs := newFlags(a, "transactions")
	account := fs.String("account", "", "account number; defaults to the session account")
	if err := fs.Parse(args); err != nil {
		return err
	}
	sess, err := a.require(domain.RouteTransactions)
	if err != nil {
		return err
	}

	no, err := a.accountNo(ctx, sess, *account)
	if err != nil {
		return err
	}
	txs, err := a.banking.Transactions(ctx, no)
	if err != nil {
		return err
	}
	a.printTransactions(txs)
	return nil
}

// accountNo picks the explicit account, then the session's, then asks the
// dashboard and back-fills the session with the answer.
func (a *app) accountNo(ctx context.Context, sess domain.Session, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if sess.AccountNo != "" {
		return sess.AccountNo, nil
	}
	ov, err := a.banking.DashboardOverview(ctx, sess.UserID)
	if err != nil || ov.AccountNo == "" {
		return "", domain.Invalid("account number unknown; pass -account")
	}
	update := domain.SessionUpdate{AccountNo: &ov.AccountNo}
	if ov.CustomerName != "" {
		update.Name = &ov.CustomerName
	}
	a.sessions.UpdateUser(ctx, update)
	return ov.AccountNo, nil
}

func cmdDeposit(ctx context.Context, a *app, args []string) error {
	fs := newFlags(a, "deposit")
	amount := fs.Float64("amount", 0, "amount to deposit")
	account := fs.String("account", "", "account number; defaults to the session account")
	if err := fs.Parse(args); err != nil {
		return err
	}
	sess, err := a.require(domain.RouteDeposit)
	if err != nil {
		return err
	}

	no, err := a.accountNo(ctx, sess, *account)
	if err != nil {
		return err
	}
	res, err := a.banking.DepositCash(ctx, no, *amount)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "deposit of %s requested for %s\n", a.amount(*amount), no)
	a.printJSON(res)
	return nil
}

func cmdProfile(ctx context.Context, a *app, args []string) error {
	if err := newFlags(a, "profile").Parse(args); err != nil {
		return err
	}
	if _, err := a.require(domain.RouteProfile); err != nil {
		return err
	}

	res, err := a.banking.CustomerProfile(ctx)
	if err != nil {
		return err
	}
	a.printJSON(res)
	return nil
}

func cmdChat(ctx context.Context, a *app, args []string) error {
	fs := newFlags(a, "chat")
	msg := fs.String("m", "", "message to send; prints the transcript when empty")
	reset := fs.Bool("clear", false, "clear the transcript")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if _, err := a.require(domain.RouteChatbot); err != nil {
		return err
	}

	chat := a.chatService()
	switch {
	case *reset:
		return chat.Clear(ctx)
	case strings.TrimSpace(*msg) == "":
		log, err := chat.Transcript(ctx)
		if err != nil {
			return err
		}
		a.printTranscript(log)
		return nil
	}

	before, err := chat.Transcript(ctx)
	if err != nil {
		return err
	}
	after, err := chat.Send(ctx, *msg)
	if err != nil {
		return err
	}
	a.printTranscript(after[len(before):])
	return nil
}

func cmdKYC(ctx context.Context, a *app, args []string) error {
	fs := newFlags(a, "kyc")
	action := fs.String("action", domain.ActionUploadAdhar, "upload_adhar, upload_pan or upload_live_photo")
	path := fs.String("file", "", "document to upload")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if _, err := a.require(domain.RouteChatbot); err != nil {
		return err
	}
	if *path == "" {
		return domain.Invalid("-file is required")
	}

	content, err := os.ReadFile(*path)
	if err != nil {
		return err
	}

	chat := a.chatService()
	before, err := chat.Transcript(ctx)
	if err != nil {
		return err
	}
	after, err := chat.UploadKYC(ctx, *action, domain.UploadFile{Name: filepath.Base(*path), Content: content})
	if err != nil {
		return err
	}
	a.printTranscript(after[len(before):])
	return nil
}

// ── Back office ───────────────────────────────────────────────────────────────

func cmdAlerts(ctx context.Context, a *app, args []string) error {
	if err := newFlags(a, "alerts").Parse(args); err != nil {
		return err
	}
	if _, err := a.require(domain.RouteAnalystDashboard); err != nil {
		return err
	}

	alerts, err := a.banking.AnalystAlerts(ctx)
	if err != nil {
		return err
	}
	if len(alerts) == 0 {
		fmt.Fprintln(a.out, "no open alerts")
		return nil
	}
	for _, al := range alerts {
		fmt.Fprintf(a.out, "%-12s %-14s risk %3.0f%%  %-16s %s\n",
			al.AlertID, al.AccountNo, al.RiskScore*100, a.amount(al.Amount), al.AlertType)
	}
	return nil
}

func cmdReport(ctx context.Context, a *app, args []string) error {
	fs := newFlags(a, "report")
	id := fs.String("id", "", "generated report to download (clerk)")
	daily := fs.Bool("daily", false, "generate today's fraud alert report (analyst)")
	out := fs.String("out", "", "output file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var (
		data []byte
		name string
		err  error
	)
	switch {
	case *daily:
		if _, err := a.require(domain.RouteAnalystDashboard); err != nil {
			return err
		}
		name = "daily-alerts-" + time.Now().Format("2006-01-02") + ".pdf"
		data, err = a.banking.DownloadDailyReport(ctx)
	case *id != "":
		if _, err := a.require(domain.RouteClerkDashboard); err != nil {
			return err
		}
		name = "report-" + *id + ".pdf"
		data, err = a.banking.DownloadReport(ctx, *id)
	default:
		if _, err := a.require(domain.RouteClerkDashboard); err != nil {
			return err
		}
		reports, err := a.banking.GeneratedReports(ctx)
		if err != nil {
			return err
		}
		for _, r := range reports {
			fmt.Fprintf(a.out, "%-12s %-24s %s\n", r.ReportID, r.GeneratedAt, r.Title)
		}
		return nil
	}
	if err != nil {
		return err
	}

	if *out != "" {
		name = *out
	}
	if err := os.WriteFile(name, data, 0o600); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "saved %s (%d bytes)\n", name, len(data))
	return nil
}

func cmdBatch(ctx context.Context, a *app, args []string) error {
	fs := newFlags(a, "batch")
	file := fs.String("file", "", `JSON array of {"action","target","reason"}; "-" reads stdin`)
	workers := fs.Int("workers", 0, "parallel workers")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if _, ok := a.sessions.Current(); !ok {
		return fmt.Errorf("%w: run \"vault42 login\" first", domain.ErrNoSession)
	}

	items, err := readBatch(*file, fs.Args())
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	log := logger.Component("batch")
	d := queue.NewDispatcher(*workers, service.NewBackOfficeService(a.banking, a.sessions, log), log)
	d.Start(ctx)

	failed := 0
	for _, r := range d.Run(ctx, items) {
		status := "ok"
		if !r.OK() {
			status = "failed: " + r.Error
			failed++
		}
		fmt.Fprintf(a.out, "%-20s %-14s %s\n", r.Action, r.Target, status)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d actions failed", failed, len(items))
	}
	return nil
}

// readBatch takes items from a JSON file, or from "action:target[:reason]"
// arguments.
func readBatch(file string, args []string) ([]domain.BatchItem, error) {
	var items []domain.BatchItem
	if file != "" {
		var r io.Reader = os.Stdin
		if file != "-" {
			f, err := os.Open(file)
			if err != nil {
				return nil, err
			}
			defer f.Close()
			r = f
		}
		if err := json.NewDecoder(r).Decode(&items); err != nil {
			return nil, fmt.Errorf("read batch: %w", err)
		}
	}
	for _, arg := range args {
		parts := strings.SplitN(arg, ":", 3)
		if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
			return nil, domain.Invalid("bad item %q; want action:target[:reason]", arg)
		}
		item := domain.BatchItem{Action: domain.BackOfficeAction(parts[0]), Target: parts[1]}
		if len(parts) == 3 {
			item.Reason = parts[2]
		}
		items = append(items, item)
	}
	if len(items) == 0 {
		return nil, domain.Invalid("no actions given")
	}
	return items, nil
}
