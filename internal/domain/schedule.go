package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ScheduleKind is the operation a scheduled transaction performs when due.
type ScheduleKind string

const (
	ScheduleWithdraw ScheduleKind = "withdraw"
	ScheduleTransfer ScheduleKind = "transfer"
)

// Recurrence is how often a scheduled transaction repeats.
type Recurrence string

const (
	RecurrenceDaily   Recurrence = "daily"
	RecurrenceWeekly  Recurrence = "weekly"
	RecurrenceMonthly Recurrence = "monthly"
)

// ScheduledTransaction is a recurring withdraw or transfer that the runner
// executes when NextRun is due.
type ScheduledTransaction struct {
	ID             string
	WalletID       string
	TargetWalletID *string
	Amount         decimal.Decimal
	Kind           ScheduleKind
	Recurrence     Recurrence
	NextRun        time.Time
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Validate validates a scheduled transaction.
func (s *ScheduledTransaction) Validate() error {
	if s.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	switch s.Kind {
	case ScheduleWithdraw:
	case ScheduleTransfer:
		if s.TargetWalletID == nil || *s.TargetWalletID == "" {
			return ErrWalletNotFound
		}
		if *s.TargetWalletID == s.WalletID {
			return ErrSameWallet
		}
	default:
		return ErrInvalidScheduleKind
	}

	switch s.Recurrence {
	case RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly:
	default:
		return ErrInvalidRecurrence
	}

	return nil
}

// Advance returns the next run time strictly after from, preserving the
// schedule's time of day.
func (s *ScheduledTransaction) Advance(from time.Time) time.Time {
	next := s.NextRun

	for !next.After(from) {
		switch s.Recurrence {
		case RecurrenceWeekly:
			next = next.AddDate(0, 0, 7)
		case RecurrenceMonthly:
			next = next.AddDate(0, 1, 0)
		default:
			next = next.AddDate(0, 0, 1)
		}
	}

	return next
}
