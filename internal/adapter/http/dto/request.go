package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finwallet/internal/domain"
	"github.com/iho/finwallet/internal/usecase"
)

// CreateWalletRequest represents a request to create a wallet.
type CreateWalletRequest struct {
	Name           string          `json:"name"`
	Currency       string          `json:"currency"`
	GroupID        *string         `json:"group_id,omitempty"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateWalletRequest) ToUseCaseInput() usecase.CreateWalletInput {
	return usecase.CreateWalletInput{
		Name:           r.Name,
		Currency:       r.Currency,
		GroupID:        r.GroupID,
		InitialBalance: r.InitialBalance,
	}
}

// WithdrawRequest represents a request to withdraw from a wallet.
type WithdrawRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// CreateGroupRequest represents a request to create a wallet group.
type CreateGroupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateGroupRequest) ToUseCaseInput() usecase.CreateGroupInput {
	return usecase.CreateGroupInput{
		Name:        r.Name,
		Description: r.Description,
	}
}

// MergeRequest represents a merge preview or execution request.
type MergeRequest struct {
	SourceWalletID string `json:"source_wallet_id"`
	TargetWalletID string `json:"target_wallet_id"`
	Keep           string `json:"keep"`
}

// ToUseCaseInput converts to use case input.
func (r *MergeRequest) ToUseCaseInput() usecase.MergeInput {
	return usecase.MergeInput{
		SourceWalletID: r.SourceWalletID,
		TargetWalletID: r.TargetWalletID,
		Keep:           domain.KeepCurrency(r.Keep),
	}
}

// TransferRequest represents a transfer preview or execution request. Amount
// is in the source wallet's currency.
type TransferRequest struct {
	SourceWalletID string          `json:"source_wallet_id"`
	TargetWalletID string          `json:"target_wallet_id"`
	Amount         decimal.Decimal `json:"amount"`
}

// ToUseCaseInput converts to use case input.
func (r *TransferRequest) ToUseCaseInput() usecase.TransferInput {
	return usecase.TransferInput{
		SourceWalletID: r.SourceWalletID,
		TargetWalletID: r.TargetWalletID,
		Amount:         r.Amount,
	}
}

// CreateBudgetRequest represents a request to create a budget.
type CreateBudgetRequest struct {
	Name         string          `json:"name"`
	WalletID     string          `json:"wallet_id"`
	Category     string          `json:"category"`
	LimitAmount  decimal.Decimal `json:"limit_amount"`
	AlertPercent int64           `json:"alert_percent"`
	StartDate    time.Time       `json:"start_date"`
	EndDate      time.Time       `json:"end_date"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateBudgetRequest) ToUseCaseInput() usecase.CreateBudgetInput {
	return usecase.CreateBudgetInput{
		Name:         r.Name,
		WalletID:     r.WalletID,
		Category:     r.Category,
		LimitAmount:  r.LimitAmount,
		AlertPercent: r.AlertPercent,
		StartDate:    r.StartDate,
		EndDate:      r.EndDate,
	}
}

// BudgetSpendRequest represents a threshold check or spend request.
type BudgetSpendRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// CreateScheduleRequest represents a request to create a scheduled transaction.
type CreateScheduleRequest struct {
	WalletID       string          `json:"wallet_id"`
	TargetWalletID *string         `json:"target_wallet_id,omitempty"`
	Amount         decimal.Decimal `json:"amount"`
	Kind           string          `json:"kind"`
	Recurrence     string          `json:"recurrence"`
	FirstRun       time.Time       `json:"first_run"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateScheduleRequest) ToUseCaseInput() usecase.CreateScheduleInput {
	return usecase.CreateScheduleInput{
		WalletID:       r.WalletID,
		TargetWalletID: r.TargetWalletID,
		Amount:         r.Amount,
		Kind:           domain.ScheduleKind(r.Kind),
		Recurrence:     domain.Recurrence(r.Recurrence),
		FirstRun:       r.FirstRun,
	}
}

// SetRateRequest represents a request to store an exchange-rate override.
type SetRateRequest struct {
	FromCurrency string          `json:"from_currency"`
	ToCurrency   string          `json:"to_currency"`
	Rate         decimal.Decimal `json:"rate"`
}

// ToUseCaseInput converts to use case input.
func (r *SetRateRequest) ToUseCaseInput() usecase.SetRateInput {
	return usecase.SetRateInput{
		FromCurrency: r.FromCurrency,
		ToCurrency:   r.ToCurrency,
		Rate:         r.Rate,
	}
}
