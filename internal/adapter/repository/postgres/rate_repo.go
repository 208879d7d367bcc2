package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/finwallet/internal/domain"
)

// RateRepository implements usecase.RateRepository. It only stores operator
// overrides; built-in rates live in the domain rate table.
type RateRepository struct {
	pool *pgxpool.Pool
}

// NewRateRepository creates a new RateRepository.
func NewRateRepository(pool *pgxpool.Pool) *RateRepository {
	return &RateRepository{pool: pool}
}

// List returns all stored rate overrides.
func (r *RateRepository) List(ctx context.Context) ([]*domain.ExchangeRate, error) {
	query := `
		SELECT id, from_currency, to_currency, rate, updated_at
		FROM exchange_rates
		ORDER BY from_currency, to_currency
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rates []*domain.ExchangeRate
	for rows.Next() {
		var (
			rate      domain.ExchangeRate
			value     pgtype.Numeric
			updatedAt pgtype.Timestamptz
		)

		if err := rows.Scan(&rate.ID, &rate.FromCurrency, &rate.ToCurrency, &value, &updatedAt); err != nil {
			return nil, err
		}

		rate.Rate = numericToDecimal(value)
		rate.UpdatedAt = updatedAt.Time
		rates = append(rates, &rate)
	}

	return rates, rows.Err()
}

// Upsert inserts or replaces the override for a currency pair.
func (r *RateRepository) Upsert(ctx context.Context, rate *domain.ExchangeRate) error {
	query := `
		INSERT INTO exchange_rates (id, from_currency, to_currency, rate, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (from_currency, to_currency)
		DO UPDATE SET rate = EXCLUDED.rate, updated_at = EXCLUDED.updated_at
	`

	_, err := r.pool.Exec(ctx, query,
		rate.ID,
		rate.FromCurrency,
		rate.ToCurrency,
		decimalToNumeric(rate.Rate),
		timeToPgTimestamptz(rate.UpdatedAt),
	)

	return err
}
