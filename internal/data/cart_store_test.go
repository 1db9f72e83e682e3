package data

import (
	"context"
	"os"
	"testing"

	"TradeGate/internal/conf"
	"TradeGate/internal/model"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestCartStore(t *testing.T) (*CartStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)

	rdb := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	store := NewCartStore(&conf.Cart{KeyPrefix: "trade_cart"}, &Data{redisClient: rdb}, log.NewStdLogger(os.Stdout))
	return store, mr
}

func sampleItems() []model.CartItem {
	sp := 1.5
	return []model.CartItem{
		{
			Product:  model.Product{ID: "p-1", Title: "Steel Bolts", Price: 10, ProductType: model.ProductTypePhysical},
			Quantity: 3,
		},
		{
			Product:  model.Product{ID: "p-2-sample-17000", Title: "Lubricant", Price: 5, SamplePrice: &sp, ProductType: model.ProductTypePhysical},
			Quantity: 1,
			IsSample: true,
		},
	}
}

func TestCartStore_RoundTrip(t *testing.T) {
	store, mr := setupTestCartStore(t)
	defer mr.Close()

	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "u-42", sampleItems()))

	got, err := store.Load(ctx, "u-42")
	require.NoError(t, err)
	// Order and contents survive the round trip
	assert.Equal(t, sampleItems(), got)
}

func TestCartStore_NotFound(t *testing.T) {
	store, mr := setupTestCartStore(t)
	defer mr.Close()

	_, err := store.Load(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrCartNotFound)
}

func TestCartStore_CorruptRecord(t *testing.T) {
	store, mr := setupTestCartStore(t)
	defer mr.Close()

	_ = mr.Set("trade_cart:u-42", "not json {{{")

	_, err := store.Load(context.Background(), "u-42")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal")
}

func TestCartStore_SaveOverwrites(t *testing.T) {
	store, mr := setupTestCartStore(t)
	defer mr.Close()

	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "u-42", sampleItems()))
	require.NoError(t, store.Save(ctx, "u-42", []model.CartItem{}))

	got, err := store.Load(ctx, "u-42")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCartStore_KeyIsolation(t *testing.T) {
	store, mr := setupTestCartStore(t)
	defer mr.Close()

	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "u-1", sampleItems()))

	_, err := store.Load(ctx, "u-2")
	assert.ErrorIs(t, err, ErrCartNotFound)
	assert.True(t, mr.Exists("trade_cart:u-1"))
}

func TestCartStore_NilRedisClient(t *testing.T) {
	store := NewCartStore(&conf.Cart{KeyPrefix: "trade_cart"}, &Data{}, log.NewStdLogger(os.Stdout))
	ctx := context.Background()

	_, err := store.Load(ctx, "u-1")
	assert.Error(t, err)

	err = store.Save(ctx, "u-1", sampleItems())
	assert.Error(t, err)
}
