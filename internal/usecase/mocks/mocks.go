package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finwallet/internal/domain"
	"github.com/iho/finwallet/internal/usecase"
)

// MockWalletRepository is a map-backed mock of WalletRepository.
type MockWalletRepository struct {
	mu      sync.RWMutex
	wallets map[string]*domain.Wallet

	CreateFunc            func(ctx context.Context, wallet *domain.Wallet) error
	GetByIDFunc           func(ctx context.Context, id string) (*domain.Wallet, error)
	GetByIDsForUpdateFunc func(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Wallet, error)
	UpdateBalanceFunc     func(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, transactionCount int64, updatedAt time.Time) error
	DeleteTxFunc          func(ctx context.Context, tx usecase.Transaction, id string) error
}

func NewMockWalletRepository() *MockWalletRepository {
	return &MockWalletRepository{wallets: make(map[string]*domain.Wallet)}
}

func (m *MockWalletRepository) Create(ctx context.Context, wallet *domain.Wallet) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, wallet)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *wallet
	m.wallets[wallet.ID] = &copied
	return nil
}

func (m *MockWalletRepository) GetByID(ctx context.Context, id string) (*domain.Wallet, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if w, ok := m.wallets[id]; ok {
		copied := *w
		return &copied, nil
	}
	return nil, domain.ErrWalletNotFound
}

func (m *MockWalletRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Wallet, error) {
	return m.GetByID(ctx, id)
}

func (m *MockWalletRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Wallet, error) {
	if m.GetByIDsForUpdateFunc != nil {
		return m.GetByIDsForUpdateFunc(ctx, tx, ids)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var wallets []*domain.Wallet
	for _, id := range ids {
		if w, ok := m.wallets[id]; ok {
			copied := *w
			wallets = append(wallets, &copied)
		}
	}
	return wallets, nil
}

func (m *MockWalletRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, transactionCount int64, updatedAt time.Time) error {
	if m.UpdateBalanceFunc != nil {
		return m.UpdateBalanceFunc(ctx, tx, id, balance, transactionCount, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if w, ok := m.wallets[id]; ok {
		w.Balance = balance
		w.TransactionCount = transactionCount
		w.UpdatedAt = updatedAt
	}
	return nil
}

func (m *MockWalletRepository) UpdateMerged(ctx context.Context, tx usecase.Transaction, id, currency string, balance decimal.Decimal, transactionCount int64, updatedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if w, ok := m.wallets[id]; ok {
		w.Currency = currency
		w.Balance = balance
		w.TransactionCount = transactionCount
		w.UpdatedAt = updatedAt
	}
	return nil
}

func (m *MockWalletRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.wallets, id)
	return nil
}

func (m *MockWalletRepository) DeleteTx(ctx context.Context, tx usecase.Transaction, id string) error {
	if m.DeleteTxFunc != nil {
		return m.DeleteTxFunc(ctx, tx, id)
	}
	return m.Delete(ctx, id)
}

func (m *MockWalletRepository) List(ctx context.Context, limit, offset int) ([]*domain.Wallet, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var wallets []*domain.Wallet
	for _, w := range m.wallets {
		copied := *w
		wallets = append(wallets, &copied)
	}
	return wallets, nil
}

func (m *MockWalletRepository) ListByGroup(ctx context.Context, groupID string, limit, offset int) ([]*domain.Wallet, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var wallets []*domain.Wallet
	for _, w := range m.wallets {
		if w.GroupID != nil && *w.GroupID == groupID {
			copied := *w
			wallets = append(wallets, &copied)
		}
	}
	return wallets, nil
}

// MockGroupRepository is a map-backed mock of GroupRepository.
type MockGroupRepository struct {
	mu     sync.RWMutex
	groups map[string]*domain.WalletGroup
}

func NewMockGroupRepository() *MockGroupRepository {
	return &MockGroupRepository{groups: make(map[string]*domain.WalletGroup)}
}

func (m *MockGroupRepository) Create(ctx context.Context, group *domain.WalletGroup) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.groups[group.ID] = group
	return nil
}

func (m *MockGroupRepository) GetByID(ctx context.Context, id string) (*domain.WalletGroup, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if g, ok := m.groups[id]; ok {
		return g, nil
	}
	return nil, domain.ErrGroupNotFound
}

func (m *MockGroupRepository) List(ctx context.Context, limit, offset int) ([]*domain.WalletGroup, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var groups []*domain.WalletGroup
	for _, g := range m.groups {
		groups = append(groups, g)
	}
	return groups, nil
}

// MockBudgetRepository is a map-backed mock of BudgetRepository.
type MockBudgetRepository struct {
	mu      sync.RWMutex
	budgets map[string]*domain.Budget

	GetByIDFunc func(ctx context.Context, id string) (*domain.Budget, error)
}

func NewMockBudgetRepository() *MockBudgetRepository {
	return &MockBudgetRepository{budgets: make(map[string]*domain.Budget)}
}

func (m *MockBudgetRepository) Create(ctx context.Context, budget *domain.Budget) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *budget
	m.budgets[budget.ID] = &copied
	return nil
}

func (m *MockBudgetRepository) GetByID(ctx context.Context, id string) (*domain.Budget, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if b, ok := m.budgets[id]; ok {
		copied := *b
		return &copied, nil
	}
	return nil, domain.ErrBudgetNotFound
}

func (m *MockBudgetRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Budget, error) {
	return m.GetByID(ctx, id)
}

func (m *MockBudgetRepository) UpdateSpent(ctx context.Context, tx usecase.Transaction, id string, spent decimal.Decimal, updatedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b, ok := m.budgets[id]; ok {
		b.Spent = spent
		b.UpdatedAt = updatedAt
	}
	return nil
}

func (m *MockBudgetRepository) List(ctx context.Context, walletID string, limit, offset int) ([]*domain.Budget, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var budgets []*domain.Budget
	for _, b := range m.budgets {
		if walletID == "" || b.WalletID == walletID {
			copied := *b
			budgets = append(budgets, &copied)
		}
	}
	return budgets, nil
}

// MockScheduleRepository is a map-backed mock of ScheduleRepository.
type MockScheduleRepository struct {
	mu        sync.RWMutex
	schedules map[string]*domain.ScheduledTransaction
}

func NewMockScheduleRepository() *MockScheduleRepository {
	return &MockScheduleRepository{schedules: make(map[string]*domain.ScheduledTransaction)}
}

func (m *MockScheduleRepository) Create(ctx context.Context, schedule *domain.ScheduledTransaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *schedule
	m.schedules[schedule.ID] = &copied
	return nil
}

func (m *MockScheduleRepository) GetByID(ctx context.Context, id string) (*domain.ScheduledTransaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.schedules[id]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, domain.ErrScheduleNotFound
}

func (m *MockScheduleRepository) List(ctx context.Context, walletID string, limit, offset int) ([]*domain.ScheduledTransaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var schedules []*domain.ScheduledTransaction
	for _, s := range m.schedules {
		if walletID == "" || s.WalletID == walletID {
			copied := *s
			schedules = append(schedules, &copied)
		}
	}
	return schedules, nil
}

func (m *MockScheduleRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.schedules, id)
	return nil
}

func (m *MockScheduleRepository) ClaimDue(ctx context.Context, tx usecase.Transaction, now time.Time, limit int) ([]*domain.ScheduledTransaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var due []*domain.ScheduledTransaction
	for _, s := range m.schedules {
		if s.Active && !s.NextRun.After(now) && len(due) < limit {
			copied := *s
			due = append(due, &copied)
		}
	}
	return due, nil
}

func (m *MockScheduleRepository) UpdateNextRun(ctx context.Context, tx usecase.Transaction, id string, nextRun, updatedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.schedules[id]; ok {
		s.NextRun = nextRun
		s.UpdatedAt = updatedAt
	}
	return nil
}

// MockRateRepository is a slice-backed mock of RateRepository.
type MockRateRepository struct {
	mu    sync.RWMutex
	rates []*domain.ExchangeRate

	ListFunc func(ctx context.Context) ([]*domain.ExchangeRate, error)
}

func NewMockRateRepository() *MockRateRepository {
	return &MockRateRepository{}
}

func (m *MockRateRepository) List(ctx context.Context) ([]*domain.ExchangeRate, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*domain.ExchangeRate(nil), m.rates...), nil
}

func (m *MockRateRepository) Upsert(ctx context.Context, rate *domain.ExchangeRate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, r := range m.rates {
		if r.FromCurrency == rate.FromCurrency && r.ToCurrency == rate.ToCurrency {
			m.rates[i] = rate
			return nil
		}
	}
	m.rates = append(m.rates, rate)
	return nil
}

// MockActivityRepository records activity logs in memory.
type MockActivityRepository struct {
	mu   sync.RWMutex
	Logs []*domain.ActivityLog
}

func NewMockActivityRepository() *MockActivityRepository {
	return &MockActivityRepository{}
}

func (m *MockActivityRepository) Create(ctx context.Context, log *domain.ActivityLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, log)
	return nil
}

func (m *MockActivityRepository) List(ctx context.Context, filter domain.ActivityFilter) ([]*domain.ActivityLog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var logs []*domain.ActivityLog
	for _, l := range m.Logs {
		if filter.WalletID == "" || l.WalletID == filter.WalletID {
			logs = append(logs, l)
		}
	}
	return logs, nil
}

// MockTransaction is a no-op transaction.
type MockTransaction struct {
	Committed  bool
	RolledBack bool
}

func (t *MockTransaction) Commit(ctx context.Context) error {
	t.Committed = true
	return nil
}

func (t *MockTransaction) Rollback(ctx context.Context) error {
	if !t.Committed {
		t.RolledBack = true
	}
	return nil
}

// MockTransactionManager hands out no-op transactions.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &MockTransaction{}, nil
}

// NoopRetrier runs the operation exactly once.
type NoopRetrier struct{}

func (NoopRetrier) Retry(ctx context.Context, operation func() error) error {
	return operation()
}

// MockIDGenerator generates sequential IDs.
type MockIDGenerator struct {
	mu   sync.Mutex
	next int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	return fmt.Sprintf("id-%d", m.next)
}

// MockCache is a map-backed cache without TTL handling.
type MockCache struct {
	mu    sync.RWMutex
	items map[string][]byte

	GetFunc func(ctx context.Context, key string) ([]byte, error)
}

func NewMockCache() *MockCache {
	return &MockCache{items: make(map[string][]byte)}
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.items[key]; ok {
		return v, nil
	}
	return nil, fmt.Errorf("cache miss: %s", key)
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}
