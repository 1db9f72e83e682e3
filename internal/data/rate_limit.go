package data

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// rateLimitKeyPrefix namespaces sliding-window attempt sets in Redis.
const rateLimitKeyPrefix = "ratelimit"

// RateLimitRepo implements biz.RateLimitRepo on a Redis sorted set per
// action key: score is the attempt timestamp, member is a unique ID.
// Following Kratos v2 DDD architecture, the interface is defined in the
// biz layer.
type RateLimitRepo struct {
	rdb    *redis.Client
	logger *log.Helper
}

// NewRateLimitRepo creates a new rate limit repository.
func NewRateLimitRepo(d *Data, logger log.Logger) *RateLimitRepo {
	return &RateLimitRepo{
		rdb:    d.GetRedisClient(),
		logger: log.NewHelper(logger),
	}
}

// Prune removes attempts recorded before the given cutoff from the action's
// sliding window. Uses Redis ZREMRANGEBYSCORE.
func (r *RateLimitRepo) Prune(ctx context.Context, actionKey string, before time.Time) error {
	if r.rdb == nil {
		return fmt.Errorf("redis client is nil")
	}

	key := BuildKey(rateLimitKeyPrefix, actionKey)

	max := strconv.FormatInt(before.UnixMilli(), 10)
	// Exclusive upper bound: attempts exactly at the cutoff stay in the window
	if _, err := r.rdb.ZRemRangeByScore(ctx, key, "-inf", "("+max).Result(); err != nil {
		return fmt.Errorf("failed to prune rate limit window: %w", err)
	}

	return nil
}

// Count returns the number of attempts currently in the action's window.
// Uses Redis ZCARD.
func (r *RateLimitRepo) Count(ctx context.Context, actionKey string) (int64, error) {
	if r.rdb == nil {
		return 0, fmt.Errorf("redis client is nil")
	}

	key := BuildKey(rateLimitKeyPrefix, actionKey)

	count, err := r.rdb.ZCard(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to count rate limit window: %w", err)
	}

	return count, nil
}

// Record appends an attempt timestamp to the action's window.
// Uses Redis ZADD with a unique member so simultaneous attempts never collapse.
func (r *RateLimitRepo) Record(ctx context.Context, actionKey string, at time.Time) error {
	if r.rdb == nil {
		return fmt.Errorf("redis client is nil")
	}

	key := BuildKey(rateLimitKeyPrefix, actionKey)

	if err := r.rdb.ZAdd(ctx, key, redis.Z{
		Score:  float64(at.UnixMilli()),
		Member: uuid.NewString(),
	}).Err(); err != nil {
		return fmt.Errorf("failed to record rate limit attempt: %w", err)
	}

	return nil
}

// Sweep removes attempts older than the cutoff across all action keys and
// reports how many keys were cleaned. Called periodically by the cron job
// to keep abandoned windows bounded.
func (r *RateLimitRepo) Sweep(ctx context.Context, before time.Time) (int, error) {
	if r.rdb == nil {
		return 0, fmt.Errorf("redis client is nil")
	}

	max := strconv.FormatInt(before.UnixMilli(), 10)
	swept := 0

	iter := r.rdb.Scan(ctx, 0, rateLimitKeyPrefix+":*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		removed, err := r.rdb.ZRemRangeByScore(ctx, key, "-inf", "("+max).Result()
		if err != nil {
			r.logger.Warnf("failed to sweep rate limit key %s: %v", key, err)
			continue
		}
		if removed > 0 {
			swept++
		}
	}
	if err := iter.Err(); err != nil {
		return swept, fmt.Errorf("failed to scan rate limit keys: %w", err)
	}

	return swept, nil
}
