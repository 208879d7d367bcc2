package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/finwallet/internal/domain"
)

// ActivityRepository implements activity log persistence.
type ActivityRepository struct {
	pool *pgxpool.Pool
}

// NewActivityRepository creates a new activity repository.
func NewActivityRepository(pool *pgxpool.Pool) *ActivityRepository {
	return &ActivityRepository{pool: pool}
}

// Create inserts a new activity log entry.
func (r *ActivityRepository) Create(ctx context.Context, log *domain.ActivityLog) error {
	if log.ID == "" {
		log.ID = uuid.New().String()
	}

	var beforeStateJSON, afterStateJSON []byte
	var err error

	if log.BeforeState != nil {
		beforeStateJSON, err = json.Marshal(log.BeforeState)
		if err != nil {
			return err
		}
	}

	if log.AfterState != nil {
		afterStateJSON, err = json.Marshal(log.AfterState)
		if err != nil {
			return err
		}
	}

	query := `
		INSERT INTO activity_logs (
			id, action, wallet_id, resource_type, resource_id, request_id,
			before_state, after_state, status, error_message, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err = r.pool.Exec(ctx, query,
		log.ID,
		log.Action,
		log.WalletID,
		log.ResourceType,
		log.ResourceID,
		log.RequestID,
		beforeStateJSON,
		afterStateJSON,
		log.Status,
		log.ErrorMessage,
		timeToPgTimestamptz(log.CreatedAt),
	)

	return err
}

// List retrieves activity logs matching the filter, newest first.
func (r *ActivityRepository) List(ctx context.Context, filter domain.ActivityFilter) ([]*domain.ActivityLog, error) {
	query := `
		SELECT id, action, wallet_id, resource_type, resource_id, request_id,
		       before_state, after_state, status, error_message, created_at
		FROM activity_logs
		WHERE 1=1
	`
	args := []any{}
	argPos := 1

	appendCond := func(cond string, value any) {
		query += fmt.Sprintf(" AND %s = $%d", cond, argPos)
		args = append(args, value)
		argPos++
	}

	if filter.WalletID != "" {
		appendCond("wallet_id", filter.WalletID)
	}

	if filter.Action != "" {
		appendCond("action", filter.Action)
	}

	if filter.ResourceType != "" {
		appendCond("resource_type", filter.ResourceType)
	}

	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", argPos)
		args = append(args, *filter.StartDate)
		argPos++
	}

	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", argPos)
		args = append(args, *filter.EndDate)
		argPos++
	}

	query += " ORDER BY created_at DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argPos)
		args = append(args, filter.Limit)
		argPos++
	}

	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argPos)
		args = append(args, filter.Offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*domain.ActivityLog
	for rows.Next() {
		var (
			log                             domain.ActivityLog
			beforeStateJSON, afterStateJSON []byte
			createdAt                       pgtype.Timestamptz
		)

		err := rows.Scan(
			&log.ID,
			&log.Action,
			&log.WalletID,
			&log.ResourceType,
			&log.ResourceID,
			&log.RequestID,
			&beforeStateJSON,
			&afterStateJSON,
			&log.Status,
			&log.ErrorMessage,
			&createdAt,
		)
		if err != nil {
			return nil, err
		}

		if len(beforeStateJSON) > 0 {
			if err := json.Unmarshal(beforeStateJSON, &log.BeforeState); err != nil {
				return nil, err
			}
		}

		if len(afterStateJSON) > 0 {
			if err := json.Unmarshal(afterStateJSON, &log.AfterState); err != nil {
				return nil, err
			}
		}

		log.CreatedAt = createdAt.Time
		logs = append(logs, &log)
	}

	return logs, rows.Err()
}
