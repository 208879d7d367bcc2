package usecase

import "time"

const (
	// RateCacheKey is the cache key holding the serialized rate overrides.
	RateCacheKey = "rates:overrides"

	// RateCacheTTL is how long the rate overrides stay cached.
	RateCacheTTL = 5 * time.Minute

	// IdempotencyKeyTTL is how long idempotency keys are cached.
	IdempotencyKeyTTL = 24 * time.Hour

	// DefaultScheduleBatch is how many due schedules a runner pass claims.
	DefaultScheduleBatch = 50
)
