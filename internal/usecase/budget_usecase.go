package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finwallet/internal/domain"
	"github.com/iho/finwallet/internal/infrastructure/metrics"
)

// BudgetUseCase handles budget business logic.
type BudgetUseCase struct {
	txManager    TransactionManager
	budgetRepo   BudgetRepository
	walletRepo   WalletRepository
	activityRepo ActivityRepository
	idGen        IDGenerator
}

// NewBudgetUseCase creates a new BudgetUseCase.
func NewBudgetUseCase(
	txManager TransactionManager,
	budgetRepo BudgetRepository,
	walletRepo WalletRepository,
	activityRepo ActivityRepository,
	idGen IDGenerator,
) *BudgetUseCase {
	return &BudgetUseCase{
		txManager:    txManager,
		budgetRepo:   budgetRepo,
		walletRepo:   walletRepo,
		activityRepo: activityRepo,
		idGen:        idGen,
	}
}

// CreateBudgetInput represents input for creating a budget.
type CreateBudgetInput struct {
	Name         string
	WalletID     string
	Category     string
	LimitAmount  decimal.Decimal
	AlertPercent int64
	StartDate    time.Time
	EndDate      time.Time
}

// CreateBudget creates a new budget bound to a wallet.
func (uc *BudgetUseCase) CreateBudget(ctx context.Context, input CreateBudgetInput) (*domain.Budget, error) {
	if err := domain.ValidateWalletName(input.Name); err != nil {
		return nil, err
	}

	if err := domain.ValidateAmount(input.LimitAmount); err != nil {
		return nil, err
	}

	// The wallet must exist; budgets are always wallet-scoped.
	if _, err := uc.walletRepo.GetByID(ctx, input.WalletID); err != nil {
		return nil, err
	}

	alertPercent := input.AlertPercent
	if alertPercent <= 0 || alertPercent > 100 {
		alertPercent = domain.DefaultAlertPercent
	}

	now := time.Now().UTC()

	budget := &domain.Budget{
		ID:           uc.idGen.Generate(),
		Name:         strings.TrimSpace(input.Name),
		WalletID:     input.WalletID,
		Category:     input.Category,
		LimitAmount:  input.LimitAmount,
		Spent:        decimal.Zero,
		AlertPercent: alertPercent,
		StartDate:    input.StartDate,
		EndDate:      input.EndDate,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := uc.budgetRepo.Create(ctx, budget); err != nil {
		return nil, err
	}

	return budget, nil
}

// GetBudget retrieves a budget by ID.
func (uc *BudgetUseCase) GetBudget(ctx context.Context, id string) (*domain.Budget, error) {
	return uc.budgetRepo.GetByID(ctx, id)
}

// ListBudgetsInput represents input for listing budgets.
type ListBudgetsInput struct {
	WalletID string
	Limit    int
	Offset   int
}

// ListBudgets lists budgets, optionally scoped to a wallet.
func (uc *BudgetUseCase) ListBudgets(ctx context.Context, input ListBudgetsInput) ([]*domain.Budget, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.budgetRepo.List(ctx, input.WalletID, limit, offset)
}

// CheckResult is a threshold check plus its classification.
type CheckResult struct {
	Check  domain.ThresholdCheck
	Status domain.ThresholdStatus
}

// CheckSpend projects a pending spend against a budget. Purely advisory:
// nothing is persisted.
func (uc *BudgetUseCase) CheckSpend(ctx context.Context, budgetID string, pending decimal.Decimal) (*CheckResult, error) {
	if pending.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}

	budget, err := uc.budgetRepo.GetByID(ctx, budgetID)
	if err != nil {
		return nil, err
	}

	check, status := budget.Evaluate(pending)
	metrics.BudgetChecks.WithLabelValues(string(status)).Inc()

	return &CheckResult{Check: check, Status: status}, nil
}

// RecordSpend adds amount to the budget's spent total. Exceeding the limit
// does not block: the threshold check is advisory and the caller has already
// confirmed.
func (uc *BudgetUseCase) RecordSpend(ctx context.Context, budgetID string, amount decimal.Decimal) (*domain.Budget, error) {
	if err := domain.ValidateAmount(amount); err != nil {
		return nil, err
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	budget, err := uc.budgetRepo.GetByIDForUpdate(ctx, tx, budgetID)
	if err != nil {
		return nil, err
	}

	before := domain.MarshalState(budget)
	now := time.Now().UTC()

	budget.Spent = budget.Spent.Add(amount)
	budget.UpdatedAt = now

	if err := uc.budgetRepo.UpdateSpent(ctx, tx, budget.ID, budget.Spent, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	_ = uc.activityRepo.Create(ctx, &domain.ActivityLog{
		Action:       string(domain.ActivityBudgetSpend),
		WalletID:     budget.WalletID,
		ResourceType: "budget",
		ResourceID:   budget.ID,
		BeforeState:  before,
		AfterState:   domain.MarshalState(budget),
		Status:       domain.ActivityStatusSuccess,
		CreatedAt:    now,
	})

	return budget, nil
}
