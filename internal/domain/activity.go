package domain

import (
	"encoding/json"
	"time"
)

// ActivityLog records an executed operation for the wallet history view.
type ActivityLog struct {
	ID           string
	Action       string // merge.execute, transfer.execute, wallet.withdraw, ...
	WalletID     string
	ResourceType string // wallet, budget, schedule
	ResourceID   string
	RequestID    string
	BeforeState  JSON
	AfterState   JSON
	Status       string
	ErrorMessage string
	CreatedAt    time.Time
}

// JSON is a type alias for JSON data
type JSON map[string]any

// ActivityAction represents the auditable operations of the service.
type ActivityAction string

const (
	ActivityWalletCreate   ActivityAction = "wallet.create"
	ActivityWalletDelete   ActivityAction = "wallet.delete"
	ActivityWalletWithdraw ActivityAction = "wallet.withdraw"

	ActivityMergeExecute    ActivityAction = "merge.execute"
	ActivityTransferExecute ActivityAction = "transfer.execute"

	ActivityBudgetSpend ActivityAction = "budget.spend"

	ActivityScheduleRun ActivityAction = "schedule.run"
)

// Activity statuses.
const (
	ActivityStatusSuccess = "success"
	ActivityStatusFailure = "failure"
)

// MarshalState converts a domain object to JSON for activity logging.
func MarshalState(v any) JSON {
	if v == nil {
		return nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return JSON{"error": "failed to marshal state"}
	}

	var result JSON
	if err := json.Unmarshal(data, &result); err != nil {
		return JSON{"error": "failed to unmarshal state"}
	}

	return result
}

// ActivityFilter defines filters for querying activity logs.
type ActivityFilter struct {
	WalletID     string
	Action       string
	ResourceType string
	StartDate    *time.Time
	EndDate      *time.Time
	Limit        int
	Offset       int
}
