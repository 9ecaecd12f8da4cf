package domain

import "encoding/json"

// BackOfficeAction is a state change a clerk or analyst can apply in bulk.
type BackOfficeAction string

const (
	ActionApproveDeposit     BackOfficeAction = "approve-deposit"
	ActionRejectDeposit      BackOfficeAction = "reject-deposit"
	ActionApproveApplication BackOfficeAction = "approve-application"
	ActionRejectApplication  BackOfficeAction = "reject-application"
	ActionBlockAccount       BackOfficeAction = "block-account"
	ActionUnblockAccount     BackOfficeAction = "unblock-account"
)

var actionRoles = map[BackOfficeAction]RoleTag{
	ActionApproveDeposit:     RoleClerk,
	ActionRejectDeposit:      RoleClerk,
	ActionApproveApplication: RoleClerk,
	ActionRejectApplication:  RoleClerk,
	ActionBlockAccount:       RoleAnalyst,
	ActionUnblockAccount:     RoleAnalyst,
}

// Role returns the role allowed to run a, or false for an unknown action.
func (a BackOfficeAction) Role() (RoleTag, bool) {
	r, ok := actionRoles[a]
	return r, ok
}

// BatchItem is one action of a batch. Target is a transaction id, an
// application number or an account number depending on Action.
type BatchItem struct {
	Action BackOfficeAction `json:"action" validate:"required,oneof=approve-deposit reject-deposit approve-application reject-application block-account unblock-account"`
	Target string           `json:"target" validate:"required"`
	Reason string           `json:"reason,omitempty"`
}

// BatchResult reports the outcome of one item, in request order.
type BatchResult struct {
	BatchItem
	Result json.RawMessage `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// OK reports whether the item succeeded.
func (r BatchResult) OK() bool { return r.Error == "" }
