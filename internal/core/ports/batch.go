package ports

import (
	"context"
	"encoding/json"

	"github.com/vault42/console/internal/core/domain"
)

// ActionExecutor applies a single back-office action.
type ActionExecutor interface {
	Execute(ctx context.Context, item domain.BatchItem) (json.RawMessage, error)
}

// BatchRunner applies a batch of actions. Items sharing a target are applied
// in the order given; the results line up with the input.
type BatchRunner interface {
	Run(ctx context.Context, items []domain.BatchItem) []domain.BatchResult
}
