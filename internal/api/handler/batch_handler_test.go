package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/vault42/console/internal/core/domain"
)

type stubRunner struct {
	got []domain.BatchItem
}

func (s *stubRunner) Run(_ context.Context, items []domain.BatchItem) []domain.BatchResult {
	s.got = items
	out := make([]domain.BatchResult, len(items))
	for i, it := range items {
		out[i].BatchItem = it
		if it.Target == "bad" {
			out[i].Error = "not found"
		}
	}
	return out
}

func TestBatchHandler_Run(t *testing.T) {
	e := newEcho()
	runner := &stubRunner{}
	h := NewBatchHandler(runner)

	rec := httptest.NewRecorder()
	body := `{"items":[{"action":"approve-deposit","target":"T1"},{"action":"reject-deposit","target":"bad"}]}`
	if err := h.Run(e.NewContext(jsonRequest(http.MethodPost, "/batch", body), rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusMultiStatus {
		t.Fatalf("expected 207, got %d", rec.Code)
	}

	var resp batchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Succeeded != 1 || resp.Failed != 1 || len(resp.Results) != 2 {
		t.Fatalf("unexpected response %+v", resp)
	}
	if len(runner.got) != 2 || runner.got[0].Action != domain.ActionApproveDeposit {
		t.Fatalf("unexpected items %+v", runner.got)
	}
}

func TestBatchHandler_Run_Validation(t *testing.T) {
	tests := map[string]string{
		"empty":          `{"items":[]}`,
		"unknown action": `{"items":[{"action":"delete-account","target":"42"}]}`,
		"missing target": `{"items":[{"action":"block-account"}]}`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			e := newEcho()
			h := NewBatchHandler(&stubRunner{})

			err := h.Run(e.NewContext(jsonRequest(http.MethodPost, "/batch", body), httptest.NewRecorder()))
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}

	e := newEcho()
	err := NewBatchHandler(&stubRunner{}).Run(e.NewContext(jsonRequest(http.MethodPost, "/batch", `{"items":[{"action":"nope","target":"1"}]}`), httptest.NewRecorder()))
	if err == nil || !strings.Contains(err.Error(), "action must be one of") {
		t.Fatalf("unexpected message %v", err)
	}
}
