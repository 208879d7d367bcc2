package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/finwallet/internal/domain"
)

// GroupRepository implements usecase.GroupRepository.
type GroupRepository struct {
	pool *pgxpool.Pool
}

// NewGroupRepository creates a new GroupRepository.
func NewGroupRepository(pool *pgxpool.Pool) *GroupRepository {
	return &GroupRepository{pool: pool}
}

// Create creates a new wallet group.
func (r *GroupRepository) Create(ctx context.Context, group *domain.WalletGroup) error {
	query := `
		INSERT INTO wallet_groups (id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query,
		group.ID,
		group.Name,
		group.Description,
		timeToPgTimestamptz(group.CreatedAt),
		timeToPgTimestamptz(group.UpdatedAt),
	)

	return err
}

// GetByID retrieves a wallet group by ID.
func (r *GroupRepository) GetByID(ctx context.Context, id string) (*domain.WalletGroup, error) {
	query := `
		SELECT id, name, description, created_at, updated_at
		FROM wallet_groups
		WHERE id = $1
	`

	return scanGroup(r.pool.QueryRow(ctx, query, id))
}

// List lists wallet groups with pagination.
func (r *GroupRepository) List(ctx context.Context, limit, offset int) ([]*domain.WalletGroup, error) {
	query := `
		SELECT id, name, description, created_at, updated_at
		FROM wallet_groups
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []*domain.WalletGroup
	for rows.Next() {
		group, err := scanGroup(rows)
		if err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}

	return groups, rows.Err()
}

func scanGroup(row pgx.Row) (*domain.WalletGroup, error) {
	var (
		group                domain.WalletGroup
		createdAt, updatedAt pgtype.Timestamptz
	)

	err := row.Scan(&group.ID, &group.Name, &group.Description, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrGroupNotFound
		}

		return nil, err
	}

	group.CreatedAt = createdAt.Time
	group.UpdatedAt = updatedAt.Time

	return &group, nil
}
