package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/vault42/console/internal/core/domain"
)

// amount renders a rupee amount with thousands grouping.
func (a *app) amount(v float64) string {
	return a.printer.Sprintf("₹ %.2f", v)
}

// printJSON writes an upstream document indented, or as-is if it is not JSON.
func (a *app) printJSON(raw json.RawMessage) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		fmt.Fprintln(a.out, string(raw))
		return
	}
	fmt.Fprintln(a.out, buf.String())
}

func (a *app) printSession(s domain.Session) {
	fmt.Fprintf(a.out, "user:    %s\n", s.UserID)
	fmt.Fprintf(a.out, "name:    %s\n", s.Name)
	fmt.Fprintf(a.out, "email:   %s\n", s.Email)
	fmt.Fprintf(a.out, "role:    %s\n", s.EffectiveRole())
	if s.AccountNo != "" {
		fmt.Fprintf(a.out, "account: %s\n", s.AccountNo)
	}
}

func (a *app) printTransactions(txs []domain.Transaction) {
	if len(txs) == 0 {
		fmt.Fprintln(a.out, "no transactions")
		return
	}
	for _, t := range txs {
		sign := "-"
		if t.TransactionType == domain.TransactionCredit {
			sign = "+"
		}
		fmt.Fprintf(a.out, "%-20s %s %-16s %-10s %s\n",
			t.When(), sign, a.amount(t.Amount), t.TransactionStatus, t.TransactionCategory)
	}
}

func (a *app) printTranscript(entries []domain.TranscriptEntry) {
	for _, e := range entries {
		who := "you"
		if e.Sender == domain.SenderBot {
			who = "bot"
		}
		fmt.Fprintf(a.out, "%s: %s\n", who, e.Text)
		if e.Type == "kyc-upload" && e.Payload != nil && e.Payload.Action != "" {
			fmt.Fprintf(a.out, "     (upload with: vault42 kyc -action %s -file <path>)\n", e.Payload.Action)
		}
		if e.Payload != nil && len(e.Payload.ExtractedData) > 0 {
			fmt.Fprintf(a.out, "     extracted: %s\n", strings.Join(sortedKeys(e.Payload.ExtractedData), ", "))
		}
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
