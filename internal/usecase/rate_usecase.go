package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/iho/finwallet/internal/domain"
)

// RateUseCase resolves exchange rates from the built-in table plus persisted
// overrides, cached for a short TTL.
type RateUseCase struct {
	rateRepo RateRepository
	cache    Cache
	idGen    IDGenerator
}

// NewRateUseCase creates a new RateUseCase.
func NewRateUseCase(rateRepo RateRepository, cache Cache, idGen IDGenerator) *RateUseCase {
	return &RateUseCase{
		rateRepo: rateRepo,
		cache:    cache,
		idGen:    idGen,
	}
}

type cachedRate struct {
	From string          `json:"from"`
	To   string          `json:"to"`
	Rate decimal.Decimal `json:"rate"`
}

// Table builds the effective rate table: built-in defaults with persisted
// overrides applied on top. Lookup failures degrade to the defaults so rate
// resolution stays total.
func (uc *RateUseCase) Table(ctx context.Context) *domain.RateTable {
	table := domain.DefaultRateTable()

	overrides, err := uc.loadOverrides(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("failed to load rate overrides, using built-in table")
		return table
	}

	for _, o := range overrides {
		table.Set(o.From, o.To, o.Rate)
	}

	return table
}

// Resolve returns the multiplier converting from-currency into to-currency.
func (uc *RateUseCase) Resolve(ctx context.Context, from, to string) decimal.Decimal {
	from = strings.ToUpper(strings.TrimSpace(from))
	to = strings.ToUpper(strings.TrimSpace(to))

	return uc.Table(ctx).Rate(from, to)
}

// SetRateInput represents input for storing a rate override.
type SetRateInput struct {
	FromCurrency string
	ToCurrency   string
	Rate         decimal.Decimal
}

// SetRate persists a directed rate override and invalidates the cache.
func (uc *RateUseCase) SetRate(ctx context.Context, input SetRateInput) error {
	if err := domain.ValidateCurrency(input.FromCurrency); err != nil {
		return err
	}

	if err := domain.ValidateCurrency(input.ToCurrency); err != nil {
		return err
	}

	if input.Rate.LessThanOrEqual(decimal.Zero) {
		return domain.ErrInvalidAmount
	}

	rate := &domain.ExchangeRate{
		ID:           uc.idGen.Generate(),
		FromCurrency: strings.ToUpper(strings.TrimSpace(input.FromCurrency)),
		ToCurrency:   strings.ToUpper(strings.TrimSpace(input.ToCurrency)),
		Rate:         input.Rate,
		UpdatedAt:    time.Now().UTC(),
	}

	if err := uc.rateRepo.Upsert(ctx, rate); err != nil {
		return err
	}

	if uc.cache != nil {
		_ = uc.cache.Delete(ctx, RateCacheKey)
	}

	return nil
}

func (uc *RateUseCase) loadOverrides(ctx context.Context) ([]cachedRate, error) {
	if uc.cache != nil {
		if data, err := uc.cache.Get(ctx, RateCacheKey); err == nil {
			var cached []cachedRate
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached, nil
			}
		}
	}

	rates, err := uc.rateRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	overrides := make([]cachedRate, 0, len(rates))
	for _, r := range rates {
		overrides = append(overrides, cachedRate{
			From: r.FromCurrency,
			To:   r.ToCurrency,
			Rate: r.Rate,
		})
	}

	if uc.cache != nil {
		if data, err := json.Marshal(overrides); err == nil {
			_ = uc.cache.Set(ctx, RateCacheKey, data, RateCacheTTL)
		}
	}

	return overrides, nil
}
