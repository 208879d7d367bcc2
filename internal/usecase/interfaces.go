package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finwallet/internal/domain"
)

// WalletRepository defines data access for wallets.
type WalletRepository interface {
	Create(ctx context.Context, wallet *domain.Wallet) error
	GetByID(ctx context.Context, id string) (*domain.Wallet, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Wallet, error)
	GetByIDsForUpdate(ctx context.Context, tx Transaction, ids []string) ([]*domain.Wallet, error)
	UpdateBalance(ctx context.Context, tx Transaction, id string, balance decimal.Decimal, transactionCount int64, updatedAt time.Time) error
	UpdateMerged(ctx context.Context, tx Transaction, id, currency string, balance decimal.Decimal, transactionCount int64, updatedAt time.Time) error
	Delete(ctx context.Context, id string) error
	DeleteTx(ctx context.Context, tx Transaction, id string) error
	List(ctx context.Context, limit, offset int) ([]*domain.Wallet, error)
	ListByGroup(ctx context.Context, groupID string, limit, offset int) ([]*domain.Wallet, error)
}

// GroupRepository defines data access for wallet groups.
type GroupRepository interface {
	Create(ctx context.Context, group *domain.WalletGroup) error
	GetByID(ctx context.Context, id string) (*domain.WalletGroup, error)
	List(ctx context.Context, limit, offset int) ([]*domain.WalletGroup, error)
}

// BudgetRepository defines data access for budgets.
type BudgetRepository interface {
	Create(ctx context.Context, budget *domain.Budget) error
	GetByID(ctx context.Context, id string) (*domain.Budget, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Budget, error)
	UpdateSpent(ctx context.Context, tx Transaction, id string, spent decimal.Decimal, updatedAt time.Time) error
	List(ctx context.Context, walletID string, limit, offset int) ([]*domain.Budget, error)
}

// ScheduleRepository defines data access for scheduled transactions.
type ScheduleRepository interface {
	Create(ctx context.Context, schedule *domain.ScheduledTransaction) error
	GetByID(ctx context.Context, id string) (*domain.ScheduledTransaction, error)
	List(ctx context.Context, walletID string, limit, offset int) ([]*domain.ScheduledTransaction, error)
	Delete(ctx context.Context, id string) error
	// ClaimDue locks and returns active schedules with NextRun <= now,
	// skipping rows already locked by a concurrent runner.
	ClaimDue(ctx context.Context, tx Transaction, now time.Time, limit int) ([]*domain.ScheduledTransaction, error)
	UpdateNextRun(ctx context.Context, tx Transaction, id string, nextRun time.Time, updatedAt time.Time) error
}

// RateRepository defines data access for exchange-rate overrides.
type RateRepository interface {
	List(ctx context.Context) ([]*domain.ExchangeRate, error)
	Upsert(ctx context.Context, rate *domain.ExchangeRate) error
}

// ActivityRepository defines data access for activity logs.
type ActivityRepository interface {
	Create(ctx context.Context, log *domain.ActivityLog) error
	List(ctx context.Context, filter domain.ActivityFilter) ([]*domain.ActivityLog, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier retries an operation on transient database failures.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
