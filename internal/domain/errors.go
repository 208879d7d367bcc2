package domain

import "errors"

var (
	// Wallet errors
	ErrWalletNotFound      = errors.New("wallet not found")
	ErrInsufficientBalance = errors.New("insufficient wallet balance")

	// Merge/transfer errors
	ErrSameWallet          = errors.New("source and target wallet must differ")
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrInvalidKeepCurrency = errors.New("keep currency must be SOURCE or TARGET")

	// Group errors
	ErrGroupNotFound = errors.New("wallet group not found")

	// Budget errors
	ErrBudgetNotFound = errors.New("budget not found")

	// Schedule errors
	ErrScheduleNotFound    = errors.New("scheduled transaction not found")
	ErrInvalidRecurrence   = errors.New("invalid recurrence")
	ErrInvalidScheduleKind = errors.New("invalid schedule kind")

	// Auth errors
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)
