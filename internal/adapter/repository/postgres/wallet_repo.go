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

const walletColumns = `id, name, currency, group_id, balance, transaction_count, created_at, updated_at`

// WalletRepository implements usecase.WalletRepository.
type WalletRepository struct {
	pool *pgxpool.Pool
}

// NewWalletRepository creates a new WalletRepository.
func NewWalletRepository(pool *pgxpool.Pool) *WalletRepository {
	return &WalletRepository{pool: pool}
}

// Create creates a new wallet.
func (r *WalletRepository) Create(ctx context.Context, wallet *domain.Wallet) error {
	query := `
		INSERT INTO wallets (` + walletColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		wallet.ID,
		wallet.Name,
		wallet.Currency,
		wallet.GroupID,
		decimalToNumeric(wallet.Balance),
		wallet.TransactionCount,
		timeToPgTimestamptz(wallet.CreatedAt),
		timeToPgTimestamptz(wallet.UpdatedAt),
	)

	return err
}

// GetByID retrieves a wallet by ID.
func (r *WalletRepository) GetByID(ctx context.Context, id string) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE id = $1`

	return scanWallet(r.pool.QueryRow(ctx, query, id))
}

// GetByIDForUpdate retrieves a wallet by ID with a FOR UPDATE lock.
func (r *WalletRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE id = $1 FOR UPDATE`

	return scanWallet(txQuerier(tx).QueryRow(ctx, query, id))
}

// GetByIDsForUpdate retrieves multiple wallets with FOR UPDATE locks.
// Rows are locked in primary-key order regardless of input order, which
// keeps concurrent merges and transfers from deadlocking each other.
func (r *WalletRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Wallet, error) {
	query := `
		SELECT ` + walletColumns + `
		FROM wallets
		WHERE id = ANY($1)
		ORDER BY id
		FOR UPDATE
	`

	rows, err := txQuerier(tx).Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	wallets := make([]*domain.Wallet, 0, len(ids))
	for rows.Next() {
		wallet, err := scanWallet(rows)
		if err != nil {
			return nil, err
		}
		wallets = append(wallets, wallet)
	}

	return wallets, rows.Err()
}

// UpdateBalance updates the balance and transaction count of a wallet.
func (r *WalletRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, transactionCount int64, updatedAt time.Time) error {
	query := `
		UPDATE wallets
		SET balance = $2, transaction_count = $3, updated_at = $4
		WHERE id = $1
	`

	_, err := txQuerier(tx).Exec(ctx, query, id, decimalToNumeric(balance), transactionCount, timeToPgTimestamptz(updatedAt))

	return err
}

// UpdateMerged rewrites a wallet after it absorbed another wallet. Currency
// may change when the merge kept the source currency.
func (r *WalletRepository) UpdateMerged(ctx context.Context, tx usecase.Transaction, id, currency string, balance decimal.Decimal, transactionCount int64, updatedAt time.Time) error {
	query := `
		UPDATE wallets
		SET currency = $2, balance = $3, transaction_count = $4, updated_at = $5
		WHERE id = $1
	`

	_, err := txQuerier(tx).Exec(ctx, query, id, currency, decimalToNumeric(balance), transactionCount, timeToPgTimestamptz(updatedAt))

	return err
}

// Delete removes a wallet.
func (r *WalletRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM wallets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrWalletNotFound
	}

	return nil
}

// DeleteTx removes a wallet inside an open transaction.
func (r *WalletRepository) DeleteTx(ctx context.Context, tx usecase.Transaction, id string) error {
	tag, err := txQuerier(tx).Exec(ctx, `DELETE FROM wallets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrWalletNotFound
	}

	return nil
}

// List lists wallets with pagination.
func (r *WalletRepository) List(ctx context.Context, limit, offset int) ([]*domain.Wallet, error) {
	query := `
		SELECT ` + walletColumns + `
		FROM wallets
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	return queryWallets(ctx, r.pool, query, limit, offset)
}

// ListByGroup lists wallets belonging to a group.
func (r *WalletRepository) ListByGroup(ctx context.Context, groupID string, limit, offset int) ([]*domain.Wallet, error) {
	query := `
		SELECT ` + walletColumns + `
		FROM wallets
		WHERE group_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	return queryWallets(ctx, r.pool, query, groupID, limit, offset)
}

func queryWallets(ctx context.Context, pool *pgxpool.Pool, query string, args ...any) ([]*domain.Wallet, error) {
	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var wallets []*domain.Wallet
	for rows.Next() {
		wallet, err := scanWallet(rows)
		if err != nil {
			return nil, err
		}
		wallets = append(wallets, wallet)
	}

	return wallets, rows.Err()
}

func scanWallet(row pgx.Row) (*domain.Wallet, error) {
	var (
		wallet               domain.Wallet
		balance              pgtype.Numeric
		createdAt, updatedAt pgtype.Timestamptz
	)

	err := row.Scan(
		&wallet.ID,
		&wallet.Name,
		&wallet.Currency,
		&wallet.GroupID,
		&balance,
		&wallet.TransactionCount,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrWalletNotFound
		}

		return nil, err
	}

	wallet.Balance = numericToDecimal(balance)
	wallet.CreatedAt = createdAt.Time
	wallet.UpdatedAt = updatedAt.Time

	return &wallet, nil
}
