package data

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"TradeGate/internal/conf"
	"TradeGate/internal/model"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/redis/go-redis/v9"
)

// ErrCartNotFound is returned when no cart record exists for the given ID.
var ErrCartNotFound = errors.New("cart: record not found")

// CartStore persists cart collections as JSON-serialized records in Redis.
// It implements biz.CartStore. Records carry no TTL: carts survive sessions
// and are overwritten whole on every mutation.
type CartStore struct {
	rdb    *redis.Client
	prefix string
	logger *log.Helper
}

// NewCartStore creates a new cart store.
func NewCartStore(c *conf.Cart, d *Data, logger log.Logger) *CartStore {
	prefix := "trade_cart"
	if c != nil && c.KeyPrefix != "" {
		prefix = c.KeyPrefix
	}
	return &CartStore{
		rdb:    d.GetRedisClient(),
		prefix: prefix,
		logger: log.NewHelper(logger),
	}
}

// Load reads and deserializes the cart collection for cartID.
// Returns ErrCartNotFound if no record exists. A record that fails to
// deserialize is also an error; the caller decides how to degrade.
func (s *CartStore) Load(ctx context.Context, cartID string) ([]model.CartItem, error) {
	if s.rdb == nil {
		return nil, errors.New("cart: redis client is nil")
	}

	key := BuildKey(s.prefix, cartID)

	val, err := s.rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCartNotFound
		}
		return nil, fmt.Errorf("cart: failed to get key %s: %w", key, err)
	}

	var items []model.CartItem
	if err := json.Unmarshal([]byte(val), &items); err != nil {
		return nil, fmt.Errorf("cart: failed to unmarshal record for key %s: %w", key, err)
	}

	return items, nil
}

// Save serializes and overwrites the full cart collection for cartID.
func (s *CartStore) Save(ctx context.Context, cartID string, items []model.CartItem) error {
	if s.rdb == nil {
		return errors.New("cart: redis client is nil")
	}

	key := BuildKey(s.prefix, cartID)

	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("cart: failed to marshal record for key %s: %w", key, err)
	}

	if err := s.rdb.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("cart: failed to set key %s: %w", key, err)
	}

	return nil
}
