package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finwallet/internal/domain"
	"github.com/iho/finwallet/internal/usecase"
)

// WalletResponse represents a wallet in API responses.
type WalletResponse struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Currency         string          `json:"currency"`
	GroupID          *string         `json:"group_id,omitempty"`
	Balance          decimal.Decimal `json:"balance"`
	TransactionCount int64           `json:"transaction_count"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// WalletFromDomain converts a domain wallet to a response.
func WalletFromDomain(w *domain.Wallet) *WalletResponse {
	return &WalletResponse{
		ID:               w.ID,
		Name:             w.Name,
		Currency:         w.Currency,
		GroupID:          w.GroupID,
		Balance:          w.Balance,
		TransactionCount: w.TransactionCount,
		CreatedAt:        w.CreatedAt,
		UpdatedAt:        w.UpdatedAt,
	}
}

// WalletsFromDomain converts domain wallets to responses.
func WalletsFromDomain(wallets []*domain.Wallet) []*WalletResponse {
	result := make([]*WalletResponse, len(wallets))
	for i, w := range wallets {
		result[i] = WalletFromDomain(w)
	}
	return result
}

// ListWalletsResponse wraps a wallet listing.
type ListWalletsResponse struct {
	Wallets []*WalletResponse `json:"wallets"`
	Total   int64             `json:"total"`
}

// GroupResponse represents a wallet group in API responses.
type GroupResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// GroupFromDomain converts a domain group to a response.
func GroupFromDomain(g *domain.WalletGroup) *GroupResponse {
	return &GroupResponse{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
	}
}

// GroupsFromDomain converts domain groups to responses.
func GroupsFromDomain(groups []*domain.WalletGroup) []*GroupResponse {
	result := make([]*GroupResponse, len(groups))
	for i, g := range groups {
		result[i] = GroupFromDomain(g)
	}
	return result
}

// MergePreviewResponse represents a merge preview in API responses.
type MergePreviewResponse struct {
	Currency              string          `json:"currency"`
	NewBalance            decimal.Decimal `json:"new_balance"`
	TotalTransactionCount int64           `json:"total_transaction_count"`
	RateUsed              string          `json:"rate_used,omitempty"`
	ConvertedFrom         string          `json:"converted_from,omitempty"`
}

// MergePreviewFromDomain converts a domain merge preview to a response.
func MergePreviewFromDomain(p *domain.MergePreview) *MergePreviewResponse {
	return &MergePreviewResponse{
		Currency:              p.Currency,
		NewBalance:            p.NewBalance,
		TotalTransactionCount: p.TotalTransactionCount,
		RateUsed:              p.RateUsed,
		ConvertedFrom:         p.ConvertedFrom,
	}
}

// MergeResultResponse represents an executed merge in API responses.
type MergeResultResponse struct {
	Wallet  *WalletResponse       `json:"wallet"`
	Preview *MergePreviewResponse `json:"preview"`
}

// MergeResultFromUseCase converts an executed merge to a response.
func MergeResultFromUseCase(r *usecase.MergeResult) *MergeResultResponse {
	return &MergeResultResponse{
		Wallet:  WalletFromDomain(r.Wallet),
		Preview: MergePreviewFromDomain(r.Preview),
	}
}

// WalletDeltaResponse represents one side of a transfer preview.
type WalletDeltaResponse struct {
	Before decimal.Decimal `json:"before"`
	After  decimal.Decimal `json:"after"`
	Change decimal.Decimal `json:"change"`
}

// TransferPreviewResponse represents a transfer preview in API responses.
type TransferPreviewResponse struct {
	Source          WalletDeltaResponse `json:"source"`
	Target          WalletDeltaResponse `json:"target"`
	ConvertedAmount decimal.Decimal     `json:"converted_amount"`
	RateUsed        string              `json:"rate_used,omitempty"`
	ConvertedFrom   string              `json:"converted_from,omitempty"`
}

// TransferPreviewFromDomain converts a domain transfer preview to a response.
func TransferPreviewFromDomain(p *domain.TransferPreview) *TransferPreviewResponse {
	return &TransferPreviewResponse{
		Source:          WalletDeltaResponse(p.Source),
		Target:          WalletDeltaResponse(p.Target),
		ConvertedAmount: p.ConvertedAmount,
		RateUsed:        p.RateUsed,
		ConvertedFrom:   p.ConvertedFrom,
	}
}

// TransferResultResponse represents an executed transfer in API responses.
type TransferResultResponse struct {
	Source  *WalletResponse          `json:"source"`
	Target  *WalletResponse          `json:"target"`
	Preview *TransferPreviewResponse `json:"preview"`
}

// TransferResultFromUseCase converts an executed transfer to a response.
func TransferResultFromUseCase(r *usecase.TransferResult) *TransferResultResponse {
	return &TransferResultResponse{
		Source:  WalletFromDomain(r.Source),
		Target:  WalletFromDomain(r.Target),
		Preview: TransferPreviewFromDomain(r.Preview),
	}
}

// BudgetResponse represents a budget in API responses.
type BudgetResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	WalletID     string          `json:"wallet_id"`
	Category     string          `json:"category,omitempty"`
	LimitAmount  decimal.Decimal `json:"limit_amount"`
	Spent        decimal.Decimal `json:"spent"`
	AlertPercent int64           `json:"alert_percent"`
	StartDate    time.Time       `json:"start_date"`
	EndDate      time.Time       `json:"end_date"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// BudgetFromDomain converts a domain budget to a response.
func BudgetFromDomain(b *domain.Budget) *BudgetResponse {
	return &BudgetResponse{
		ID:           b.ID,
		Name:         b.Name,
		WalletID:     b.WalletID,
		Category:     b.Category,
		LimitAmount:  b.LimitAmount,
		Spent:        b.Spent,
		AlertPercent: b.AlertPercent,
		StartDate:    b.StartDate,
		EndDate:      b.EndDate,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

// BudgetsFromDomain converts domain budgets to responses.
func BudgetsFromDomain(budgets []*domain.Budget) []*BudgetResponse {
	result := make([]*BudgetResponse, len(budgets))
	for i, b := range budgets {
		result[i] = BudgetFromDomain(b)
	}
	return result
}

// ThresholdCheckResponse represents a budget threshold check in API responses.
type ThresholdCheckResponse struct {
	RemainingBefore decimal.Decimal `json:"remaining_before"`
	RemainingAfter  decimal.Decimal `json:"remaining_after"`
	TotalAfter      decimal.Decimal `json:"total_after"`
	PercentAfter    decimal.Decimal `json:"percent_after"`
	IsExceeding     bool            `json:"is_exceeding"`
	Status          string          `json:"status"`
}

// CheckResultFromUseCase converts a threshold check result to a response.
func CheckResultFromUseCase(r *usecase.CheckResult) *ThresholdCheckResponse {
	return &ThresholdCheckResponse{
		RemainingBefore: r.Check.RemainingBefore,
		RemainingAfter:  r.Check.RemainingAfter,
		TotalAfter:      r.Check.TotalAfter,
		PercentAfter:    r.Check.PercentAfter,
		IsExceeding:     r.Check.IsExceeding,
		Status:          string(r.Status),
	}
}

// ScheduleResponse represents a scheduled transaction in API responses.
type ScheduleResponse struct {
	ID             string          `json:"id"`
	WalletID       string          `json:"wallet_id"`
	TargetWalletID *string         `json:"target_wallet_id,omitempty"`
	Amount         decimal.Decimal `json:"amount"`
	Kind           string          `json:"kind"`
	Recurrence     string          `json:"recurrence"`
	NextRun        time.Time       `json:"next_run"`
	Active         bool            `json:"active"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ScheduleFromDomain converts a domain schedule to a response.
func ScheduleFromDomain(s *domain.ScheduledTransaction) *ScheduleResponse {
	return &ScheduleResponse{
		ID:             s.ID,
		WalletID:       s.WalletID,
		TargetWalletID: s.TargetWalletID,
		Amount:         s.Amount,
		Kind:           string(s.Kind),
		Recurrence:     string(s.Recurrence),
		NextRun:        s.NextRun,
		Active:         s.Active,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

// SchedulesFromDomain converts domain schedules to responses.
func SchedulesFromDomain(schedules []*domain.ScheduledTransaction) []*ScheduleResponse {
	result := make([]*ScheduleResponse, len(schedules))
	for i, s := range schedules {
		result[i] = ScheduleFromDomain(s)
	}
	return result
}

// RateResponse represents a resolved exchange rate in API responses.
type RateResponse struct {
	FromCurrency string          `json:"from_currency"`
	ToCurrency   string          `json:"to_currency"`
	Rate         decimal.Decimal `json:"rate"`
}

// ActivityResponse represents an activity log entry in API responses.
type ActivityResponse struct {
	ID           string      `json:"id"`
	Action       string      `json:"action"`
	WalletID     string      `json:"wallet_id"`
	ResourceType string      `json:"resource_type"`
	ResourceID   string      `json:"resource_id"`
	BeforeState  domain.JSON `json:"before_state,omitempty"`
	AfterState   domain.JSON `json:"after_state,omitempty"`
	Status       string      `json:"status"`
	ErrorMessage string      `json:"error_message,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
}

// ActivityFromDomain converts a domain activity log to a response.
func ActivityFromDomain(l *domain.ActivityLog) *ActivityResponse {
	return &ActivityResponse{
		ID:           l.ID,
		Action:       l.Action,
		WalletID:     l.WalletID,
		ResourceType: l.ResourceType,
		ResourceID:   l.ResourceID,
		BeforeState:  l.BeforeState,
		AfterState:   l.AfterState,
		Status:       l.Status,
		ErrorMessage: l.ErrorMessage,
		CreatedAt:    l.CreatedAt,
	}
}

// ActivitiesFromDomain converts domain activity logs to responses.
func ActivitiesFromDomain(logs []*domain.ActivityLog) []*ActivityResponse {
	result := make([]*ActivityResponse, len(logs))
	for i, l := range logs {
		result[i] = ActivityFromDomain(l)
	}
	return result
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
