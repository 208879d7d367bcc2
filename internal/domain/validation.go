package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidWalletName = errors.New("invalid wallet name")
	ErrInvalidCurrency   = errors.New("invalid currency code")
	ErrAmountTooLarge    = errors.New("amount exceeds maximum allowed")
)

// Validation constants
const (
	MaxWalletNameLength = 255
	MinWalletNameLength = 1
	MaxAmount           = "1000000000000" // 1 trillion
)

// Valid currency codes (ISO 4217 subset the app supports).
var validCurrencies = map[string]bool{
	"VND": true, "USD": true, "EUR": true, "GBP": true,
	"JPY": true, "KRW": true, "CNY": true, "AUD": true,
	"CAD": true, "CHF": true, "SGD": true, "THB": true,
	"INR": true, "HKD": true,
}

// ValidateWalletName validates a wallet or group name.
func ValidateWalletName(name string) error {
	name = strings.TrimSpace(name)

	if len(name) < MinWalletNameLength {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidWalletName)
	}

	if len(name) > MaxWalletNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidWalletName, MaxWalletNameLength)
	}

	return nil
}

// ValidateCurrency validates a currency code.
func ValidateCurrency(currency string) error {
	currency = strings.ToUpper(strings.TrimSpace(currency))

	if !validCurrencies[currency] {
		return fmt.Errorf("%w: %s is not a supported currency code", ErrInvalidCurrency, currency)
	}

	return nil
}

// ValidateAmount validates a monetary amount for transfers, withdrawals and
// budget limits.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	maxAmount, _ := decimal.NewFromString(MaxAmount)
	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrAmountTooLarge, MaxAmount)
	}

	return nil
}

// ValidatePagination validates and limits pagination parameters.
func ValidatePagination(limit, offset int) (int, int) {
	const MaxPageSize = 1000
	const DefaultPageSize = 50

	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
