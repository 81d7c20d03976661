package di

import (
	"time"

	"github.com/redis/go-redis/v9"

	"dashboard_backend/internal/feature/quotes/adapters"
	"dashboard_backend/internal/feature/quotes/usecase"
)

// NewQuoteStateRepository creates a QuoteStateRepository implementation.
// If Redis is available, it returns a Redis-backed implementation.
// Otherwise, it falls back to process memory.
func NewQuoteStateRepository(rdb *redis.Client, ttl time.Duration) usecase.QuoteStateRepository {
	if rdb != nil {
		return adapters.NewQuoteStateRedis(rdb, ttl, "quote_state")
	}
	return adapters.NewQuoteStateMemory()
}
