// Package data provides data access layer implementations.
// It handles database connections and data persistence.
package data

import (
	"TradeGate/internal/conf"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
)

// ProviderSet is data providers.
var ProviderSet = wire.NewSet(
	NewData,
	NewRedisClient,
	NewMySQLClient,
	NewCartStore,
	NewRateLimitRepo,
	NewCatalogRepo,
)

// Data contains all data layer dependencies.
type Data struct {
	// redisClient is the Redis client for cart persistence and rate limiting
	redisClient *redis.Client
	// Note: MySQL DB is not stored here, it's injected directly to repositories
}

// NewData creates a new Data instance with all data layer dependencies.
// Redis connection failure does not prevent application startup (graceful degradation).
func NewData(_ *conf.Data, logger log.Logger, rdb *redis.Client) (*Data, func(), error) {
	helper := log.NewHelper(logger)

	// Check if Redis is available
	if rdb == nil {
		helper.Warn("Redis client is nil, cart persistence and rate limiting degrade to in-memory behavior")
	}

	d := &Data{
		redisClient: rdb,
	}

	cleanup := func() {
		helper.Info("closing the data resources")
		// Redis cleanup is handled by NewRedisClient's cleanup function
		// which is called automatically by Wire
	}

	return d, cleanup, nil
}

// GetRedisClient returns the Redis client for advanced operations.
func (d *Data) GetRedisClient() *redis.Client {
	return d.redisClient
}

// BuildKey constructs a storage key from a prefix and parts.
// Examples:
//   - BuildKey("trade_cart", "u-42") -> "trade_cart:u-42"
//   - BuildKey("ratelimit", "login_attempt", "u-42") -> "ratelimit:login_attempt:u-42"
func BuildKey(prefix string, parts ...string) string {
	key := prefix
	for _, part := range parts {
		key += ":" + part
	}
	return key
}
