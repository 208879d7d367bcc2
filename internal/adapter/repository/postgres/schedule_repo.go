package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/finwallet/internal/domain"
	"github.com/iho/finwallet/internal/usecase"
)

const scheduleColumns = `id, wallet_id, target_wallet_id, amount, kind, recurrence, next_run, active, created_at, updated_at`

// ScheduleRepository implements usecase.ScheduleRepository.
type ScheduleRepository struct {
	pool *pgxpool.Pool
}

// NewScheduleRepository creates a new ScheduleRepository.
func NewScheduleRepository(pool *pgxpool.Pool) *ScheduleRepository {
	return &ScheduleRepository{pool: pool}
}

// Create creates a new scheduled transaction.
func (r *ScheduleRepository) Create(ctx context.Context, schedule *domain.ScheduledTransaction) error {
	query := `
		INSERT INTO scheduled_transactions (` + scheduleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.pool.Exec(ctx, query,
		schedule.ID,
		schedule.WalletID,
		schedule.TargetWalletID,
		decimalToNumeric(schedule.Amount),
		string(schedule.Kind),
		string(schedule.Recurrence),
		timeToPgTimestamptz(schedule.NextRun),
		schedule.Active,
		timeToPgTimestamptz(schedule.CreatedAt),
		timeToPgTimestamptz(schedule.UpdatedAt),
	)

	return err
}

// GetByID retrieves a scheduled transaction by ID.
func (r *ScheduleRepository) GetByID(ctx context.Context, id string) (*domain.ScheduledTransaction, error) {
	query := `SELECT ` + scheduleColumns + ` FROM scheduled_transactions WHERE id = $1`

	return scanSchedule(r.pool.QueryRow(ctx, query, id))
}

// List lists scheduled transactions, optionally filtered by wallet.
func (r *ScheduleRepository) List(ctx context.Context, walletID string, limit, offset int) ([]*domain.ScheduledTransaction, error) {
	query := `
		SELECT ` + scheduleColumns + `
		FROM scheduled_transactions
		WHERE ($1 = '' OR wallet_id = $1)
		ORDER BY next_run
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, walletID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectSchedules(rows)
}

// Delete removes a scheduled transaction.
func (r *ScheduleRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM scheduled_transactions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrScheduleNotFound
	}

	return nil
}

// ClaimDue locks and returns active schedules whose next_run has passed.
// SKIP LOCKED lets concurrent runners claim disjoint batches instead of
// blocking on each other.
func (r *ScheduleRepository) ClaimDue(ctx context.Context, tx usecase.Transaction, now time.Time, limit int) ([]*domain.ScheduledTransaction, error) {
	query := `
		SELECT ` + scheduleColumns + `
		FROM scheduled_transactions
		WHERE active AND next_run <= $1
		ORDER BY next_run
		LIMIT $2
		FOR UPDATE SKIP LOCKED
	`

	rows, err := txQuerier(tx).Query(ctx, query, timeToPgTimestamptz(now), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectSchedules(rows)
}

// UpdateNextRun advances the next execution time of a schedule.
func (r *ScheduleRepository) UpdateNextRun(ctx context.Context, tx usecase.Transaction, id string, nextRun time.Time, updatedAt time.Time) error {
	query := `
		UPDATE scheduled_transactions
		SET next_run = $2, updated_at = $3
		WHERE id = $1
	`

	_, err := txQuerier(tx).Exec(ctx, query, id, timeToPgTimestamptz(nextRun), timeToPgTimestamptz(updatedAt))

	return err
}

func collectSchedules(rows pgx.Rows) ([]*domain.ScheduledTransaction, error) {
	var schedules []*domain.ScheduledTransaction
	for rows.Next() {
		schedule, err := scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, schedule)
	}

	return schedules, rows.Err()
}

func scanSchedule(row pgx.Row) (*domain.ScheduledTransaction, error) {
	var (
		schedule             domain.ScheduledTransaction
		amount               pgtype.Numeric
		kind, recurrence     string
		nextRun              pgtype.Timestamptz
		createdAt, updatedAt pgtype.Timestamptz
	)

	err := row.Scan(
		&schedule.ID,
		&schedule.WalletID,
		&schedule.TargetWalletID,
		&amount,
		&kind,
		&recurrence,
		&nextRun,
		&schedule.Active,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrScheduleNotFound
		}

		return nil, err
	}

	schedule.Amount = numericToDecimal(amount)
	schedule.Kind = domain.ScheduleKind(kind)
	schedule.Recurrence = domain.Recurrence(recurrence)
	schedule.NextRun = nextRun.Time
	schedule.CreatedAt = createdAt.Time
	schedule.UpdatedAt = updatedAt.Time

	return &schedule, nil
}
