package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultAlertPercent is the alert threshold applied when a budget does not
// configure its own.
const DefaultAlertPercent int64 = 80

// Budget represents a spending limit for a wallet/category over a period.
type Budget struct {
	ID           string
	Name         string
	WalletID     string
	Category     string
	LimitAmount  decimal.Decimal
	Spent        decimal.Decimal
	AlertPercent int64
	StartDate    time.Time
	EndDate      time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ThresholdStatus classifies a pending spend against a budget.
type ThresholdStatus string

const (
	ThresholdOK          ThresholdStatus = "ok"
	ThresholdApproaching ThresholdStatus = "approaching"
	ThresholdExceeding   ThresholdStatus = "exceeding"
)

// ThresholdCheck is the projected effect of a pending spend on a budget.
// Pure and stateless; recomputed on every evaluation, never persisted.
type ThresholdCheck struct {
	RemainingBefore decimal.Decimal
	RemainingAfter  decimal.Decimal
	TotalAfter      decimal.Decimal
	PercentAfter    decimal.Decimal
	IsExceeding     bool
}

// EvaluateThreshold projects spent+pending against limit. PercentAfter is 0
// when limit is not positive. IsExceeding uses a strict comparison.
func EvaluateThreshold(limit, spent, pending decimal.Decimal) ThresholdCheck {
	totalAfter := spent.Add(pending)

	check := ThresholdCheck{
		RemainingBefore: limit.Sub(spent),
		RemainingAfter:  limit.Sub(totalAfter),
		TotalAfter:      totalAfter,
		IsExceeding:     totalAfter.GreaterThan(limit),
	}

	if limit.IsPositive() {
		check.PercentAfter = totalAfter.Div(limit).Mul(decimal.NewFromInt(100))
	} else {
		check.PercentAfter = decimal.Zero
	}

	return check
}

// Classify maps the check onto the status surfaced to the user. Exceeding
// wins over approaching; approaching triggers at the budget's alert percent.
func (c ThresholdCheck) Classify(alertPercent int64) ThresholdStatus {
	if c.IsExceeding {
		return ThresholdExceeding
	}

	if alertPercent <= 0 {
		alertPercent = DefaultAlertPercent
	}

	if c.PercentAfter.GreaterThanOrEqual(decimal.NewFromInt(alertPercent)) {
		return ThresholdApproaching
	}

	return ThresholdOK
}

// Evaluate projects a pending spend against this budget and classifies it.
func (b *Budget) Evaluate(pending decimal.Decimal) (ThresholdCheck, ThresholdStatus) {
	check := EvaluateThreshold(b.LimitAmount, b.Spent, pending)

	return check, check.Classify(b.AlertPercent)
}
