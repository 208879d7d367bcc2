package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// KeepCurrency selects which wallet's currency survives a merge.
type KeepCurrency string

const (
	KeepSource KeepCurrency = "SOURCE"
	KeepTarget KeepCurrency = "TARGET"
)

// MergeIntent represents a user-confirmed request to consolidate the source
// wallet into the target wallet. Consumed once, never persisted.
type MergeIntent struct {
	SourceWalletID string
	TargetWalletID string
	Keep           KeepCurrency
}

// Validate validates a merge intent.
func (i *MergeIntent) Validate() error {
	if i.SourceWalletID == i.TargetWalletID {
		return ErrSameWallet
	}

	if i.Keep != KeepSource && i.Keep != KeepTarget {
		return ErrInvalidKeepCurrency
	}

	return nil
}

// MergePreview is the computed outcome of a merge before it is applied.
// RateUsed and ConvertedFrom are empty when no conversion occurred.
type MergePreview struct {
	Currency              string
	NewBalance            decimal.Decimal
	TotalTransactionCount int64
	RateUsed              string
	ConvertedFrom         string
}

// PreviewMerge computes the result of merging source into target. The target
// wallet always survives; keep only selects the currency (and conversion
// direction) the surviving wallet ends up with. keep is ignored when the
// currencies already match.
//
// Callers must pass non-nil wallets; absent wallets are a precondition
// violation handled before the calculator is invoked.
func PreviewMerge(source, target *Wallet, keep KeepCurrency, rates RateResolver) *MergePreview {
	preview := &MergePreview{
		TotalTransactionCount: source.TransactionCount + target.TransactionCount,
	}

	sameCurrency := source.Currency == target.Currency

	if sameCurrency || keep != KeepSource {
		rate := rates.Rate(source.Currency, target.Currency)
		converted := RoundToCurrency(source.Balance.Mul(rate), target.Currency)

		preview.Currency = target.Currency
		preview.NewBalance = RoundToCurrency(target.Balance.Add(converted), target.Currency)

		if !sameCurrency {
			preview.RateUsed = formatRate(source.Currency, rate, target.Currency)
			preview.ConvertedFrom = formatConversion(source.Balance, source.Currency, converted, target.Currency)
		}

		return preview
	}

	// Keep the source currency: convert the target balance across using the
	// reciprocal of the forward rate.
	rate := rates.Rate(source.Currency, target.Currency)
	reciprocal := decimal.NewFromInt(1).Div(rate)
	converted := RoundToCurrency(target.Balance.Mul(reciprocal), source.Currency)

	preview.Currency = source.Currency
	preview.NewBalance = RoundToCurrency(source.Balance.Add(converted), source.Currency)
	preview.RateUsed = formatRate(target.Currency, reciprocal, source.Currency)
	preview.ConvertedFrom = formatConversion(target.Balance, target.Currency, converted, source.Currency)

	return preview
}

func formatRate(from string, rate decimal.Decimal, to string) string {
	return fmt.Sprintf("1 %s = %s %s", from, rate.String(), to)
}

func formatConversion(before decimal.Decimal, fromCurrency string, after decimal.Decimal, toCurrency string) string {
	return fmt.Sprintf("%s %s -> %s %s", before.String(), fromCurrency, after.String(), toCurrency)
}
