package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/finwallet/internal/domain"
	"github.com/iho/finwallet/internal/usecase"
)

const budgetColumns = `id, name, wallet_id, category, limit_amount, spent, alert_percent, start_date, end_date, created_at, updated_at`

// BudgetRepository implements usecase.BudgetRepository.
type BudgetRepository struct {
	pool *pgxpool.Pool
}

// NewBudgetRepository creates a new BudgetRepository.
func NewBudgetRepository(pool *pgxpool.Pool) *BudgetRepository {
	return &BudgetRepository{pool: pool}
}

// Create creates a new budget.
func (r *BudgetRepository) Create(ctx context.Context, budget *domain.Budget) error {
	query := `
		INSERT INTO budgets (` + budgetColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.pool.Exec(ctx, query,
		budget.ID,
		budget.Name,
		budget.WalletID,
		budget.Category,
		decimalToNumeric(budget.LimitAmount),
		decimalToNumeric(budget.Spent),
		budget.AlertPercent,
		timeToPgTimestamptz(budget.StartDate),
		timeToPgTimestamptz(budget.EndDate),
		timeToPgTimestamptz(budget.CreatedAt),
		timeToPgTimestamptz(budget.UpdatedAt),
	)

	return err
}

// GetByID retrieves a budget by ID.
func (r *BudgetRepository) GetByID(ctx context.Context, id string) (*domain.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE id = $1`

	return scanBudget(r.pool.QueryRow(ctx, query, id))
}

// GetByIDForUpdate retrieves a budget by ID with a FOR UPDATE lock.
func (r *BudgetRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE id = $1 FOR UPDATE`

	return scanBudget(txQuerier(tx).QueryRow(ctx, query, id))
}

// UpdateSpent updates the accumulated spend of a budget.
func (r *BudgetRepository) UpdateSpent(ctx context.Context, tx usecase.Transaction, id string, spent decimal.Decimal, updatedAt time.Time) error {
	query := `
		UPDATE budgets
		SET spent = $2, updated_at = $3
		WHERE id = $1
	`

	_, err := txQuerier(tx).Exec(ctx, query, id, decimalToNumeric(spent), timeToPgTimestamptz(updatedAt))

	return err
}

// List lists budgets, optionally filtered by wallet.
func (r *BudgetRepository) List(ctx context.Context, walletID string, limit, offset int) ([]*domain.Budget, error) {
	query := `
		SELECT ` + budgetColumns + `
		FROM budgets
		WHERE ($1 = '' OR wallet_id = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, walletID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var budgets []*domain.Budget
	for rows.Next() {
		budget, err := scanBudget(rows)
		if err != nil {
			return nil, err
		}
		budgets = append(budgets, budget)
	}

	return budgets, rows.Err()
}

func scanBudget(row pgx.Row) (*domain.Budget, error) {
	var (
		budget               domain.Budget
		limitAmount, spent   pgtype.Numeric
		startDate, endDate   pgtype.Timestamptz
		createdAt, updatedAt pgtype.Timestamptz
	)

	err := row.Scan(
		&budget.ID,
		&budget.Name,
		&budget.WalletID,
		&budget.Category,
		&limitAmount,
		&spent,
		&budget.AlertPercent,
		&startDate,
		&endDate,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBudgetNotFound
		}

		return nil, err
	}

	budget.LimitAmount = numericToDecimal(limitAmount)
	budget.Spent = numericToDecimal(spent)
	budget.StartDate = startDate.Time
	budget.EndDate = endDate.Time
	budget.CreatedAt = createdAt.Time
	budget.UpdatedAt = updatedAt.Time

	return &budget, nil
}
