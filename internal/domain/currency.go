package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is a persisted override for one directed currency pair.
type ExchangeRate struct {
	ID           string
	FromCurrency string
	ToCurrency   string
	Rate         decimal.Decimal
	UpdatedAt    time.Time
}

// RatePair identifies a directed currency conversion.
type RatePair struct {
	From string
	To   string
}

// RateResolver resolves an exchange multiplier between two currencies.
type RateResolver interface {
	Rate(from, to string) decimal.Decimal
}

// RateTable is a directed table of bilateral exchange multipliers.
// Reverse rates are derived as reciprocals of the forward entry, so the
// table holds exactly one canonical direction per pair.
type RateTable struct {
	rates map[RatePair]decimal.Decimal
}

// NewRateTable creates an empty rate table.
func NewRateTable() *RateTable {
	return &RateTable{rates: make(map[RatePair]decimal.Decimal)}
}

// DefaultRateTable returns a table seeded with the built-in multipliers.
func DefaultRateTable() *RateTable {
	t := NewRateTable()

	t.Set("USD", "VND", decimal.NewFromInt(24350))
	t.Set("EUR", "VND", decimal.NewFromInt(26500))
	t.Set("GBP", "VND", decimal.NewFromInt(31000))
	t.Set("JPY", "VND", decimal.NewFromInt(163))
	t.Set("USD", "EUR", decimal.RequireFromString("0.92"))
	t.Set("USD", "JPY", decimal.RequireFromString("149.5"))
	t.Set("GBP", "USD", decimal.RequireFromString("1.27"))

	return t
}

// Set stores the multiplier for a directed pair. Non-positive rates are ignored.
func (t *RateTable) Set(from, to string, rate decimal.Decimal) {
	if rate.LessThanOrEqual(decimal.Zero) {
		return
	}

	t.rates[RatePair{From: from, To: to}] = rate
}

// Rate returns the multiplier converting an amount in from-currency into
// to-currency. Identical or missing codes resolve to 1, as do unknown pairs.
// The function is total: it always returns a positive multiplier.
func (t *RateTable) Rate(from, to string) decimal.Decimal {
	if from == "" || to == "" || from == to {
		return decimal.NewFromInt(1)
	}

	if rate, ok := t.rates[RatePair{From: from, To: to}]; ok {
		return rate
	}

	// Derive the reverse direction from the canonical entry.
	if rate, ok := t.rates[RatePair{From: to, To: from}]; ok {
		return decimal.NewFromInt(1).Div(rate)
	}

	return decimal.NewFromInt(1)
}

// Currencies with no fractional unit.
var zeroDecimalCurrencies = map[string]bool{
	"VND": true,
	"JPY": true,
	"KRW": true,
}

// DecimalsFor returns the number of fractional digits amounts in the given
// currency are rounded to: 0 for zero-decimal currencies, 2 otherwise.
func DecimalsFor(currency string) int32 {
	if zeroDecimalCurrencies[currency] {
		return 0
	}

	return 2
}

// RoundTo rounds amount to the given number of decimal places, half away
// from zero.
func RoundTo(amount decimal.Decimal, decimals int32) decimal.Decimal {
	return amount.Round(decimals)
}

// RoundToCurrency rounds amount to the currency's native precision.
func RoundToCurrency(amount decimal.Decimal, currency string) decimal.Decimal {
	return RoundTo(amount, DecimalsFor(currency))
}
