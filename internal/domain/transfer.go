package domain

import (
	"github.com/shopspring/decimal"
)

// TransferIntent represents a user-confirmed request to move amount (in the
// source wallet's currency) from source to target. Consumed once, never
// persisted.
type TransferIntent struct {
	SourceWalletID string
	TargetWalletID string
	Amount         decimal.Decimal
}

// Validate validates a transfer intent.
func (i *TransferIntent) Validate() error {
	if i.SourceWalletID == i.TargetWalletID {
		return ErrSameWallet
	}

	if i.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	return nil
}

// WalletDelta describes one wallet's balance before and after an operation.
type WalletDelta struct {
	Before decimal.Decimal
	After  decimal.Decimal
	Change decimal.Decimal
}

// TransferPreview is the computed outcome of a transfer before it is applied.
// RateUsed and ConvertedFrom are empty when no conversion occurred.
type TransferPreview struct {
	Source          WalletDelta
	Target          WalletDelta
	ConvertedAmount decimal.Decimal
	RateUsed        string
	ConvertedFrom   string
}

// PreviewTransfer computes post-transfer balances for both wallets, converting
// the amount into the target currency when the currencies differ. It returns
// no preview when amount is not positive or exceeds the source balance.
func PreviewTransfer(source, target *Wallet, amount decimal.Decimal, rates RateResolver) (*TransferPreview, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}

	if amount.GreaterThan(source.Balance) {
		return nil, ErrInsufficientBalance
	}

	preview := &TransferPreview{
		Source: WalletDelta{
			Before: source.Balance,
			After:  RoundToCurrency(source.Balance.Sub(amount), source.Currency),
			Change: amount.Neg(),
		},
	}

	converted := amount
	if source.Currency != target.Currency {
		rate := rates.Rate(source.Currency, target.Currency)
		converted = RoundToCurrency(amount.Mul(rate), target.Currency)

		preview.RateUsed = formatRate(source.Currency, rate, target.Currency)
		preview.ConvertedFrom = formatConversion(amount, source.Currency, converted, target.Currency)
	}

	preview.ConvertedAmount = converted
	preview.Target = WalletDelta{
		Before: target.Balance,
		After:  RoundToCurrency(target.Balance.Add(converted), target.Currency),
		Change: converted,
	}

	return preview, nil
}
