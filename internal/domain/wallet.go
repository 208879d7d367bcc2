package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wallet represents a named monetary balance in a single currency.
// Balance is always held at the currency's native decimal precision.
type Wallet struct {
	ID               string
	Name             string
	Currency         string
	GroupID          *string
	Balance          decimal.Decimal
	TransactionCount int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ValidateWithdraw checks if amount can be withdrawn without driving the
// balance negative.
func (w *Wallet) ValidateWithdraw(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if amount.GreaterThan(w.Balance) {
		return ErrInsufficientBalance
	}

	return nil
}

// ApplyWithdraw returns the balance after withdrawing amount, rounded to the
// wallet currency's precision.
func (w *Wallet) ApplyWithdraw(amount decimal.Decimal) decimal.Decimal {
	return RoundToCurrency(w.Balance.Sub(amount), w.Currency)
}

// ApplyDeposit returns the balance after depositing amount, rounded to the
// wallet currency's precision.
func (w *Wallet) ApplyDeposit(amount decimal.Decimal) decimal.Decimal {
	return RoundToCurrency(w.Balance.Add(amount), w.Currency)
}

// WalletGroup is a named collection of wallets.
type WalletGroup struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
