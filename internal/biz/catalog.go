package biz

import (
	"context"

	"TradeGate/internal/model"

	"github.com/go-kratos/kratos/v2/log"
	lru "github.com/hashicorp/golang-lru/v2"
)

// catalogCacheSize bounds the in-process product cache.
const catalogCacheSize = 1024

// CatalogRepo is the product catalog storage. Interface is defined here in
// the biz layer; the data layer implements it on MySQL.
type CatalogRepo interface {
	GetProduct(ctx context.Context, id string) (*model.Product, error)
	ListProducts(ctx context.Context, supplierID string, offset, limit int) ([]*model.Product, error)
}

// CatalogUsecase serves product lookups through an LRU read-through cache.
// Cart adds resolve products here, so hot products avoid a database round
// trip per add.
type CatalogUsecase struct {
	repo   CatalogRepo
	cache  *lru.Cache[string, *model.Product]
	logger *log.Helper
}

// NewCatalogUsecase creates a new catalog use case.
func NewCatalogUsecase(repo CatalogRepo, logger log.Logger) (*CatalogUsecase, error) {
	cache, err := lru.New[string, *model.Product](catalogCacheSize)
	if err != nil {
		return nil, err
	}
	return &CatalogUsecase{
		repo:   repo,
		cache:  cache,
		logger: log.NewHelper(logger),
	}, nil
}

// GetProduct returns the product with the given ID, from cache when possible.
// Negative results are not cached.
func (uc *CatalogUsecase) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	if p, ok := uc.cache.Get(id); ok {
		return p, nil
	}

	p, err := uc.repo.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	uc.cache.Add(id, p)
	return p, nil
}

// ListProducts returns a page of products, optionally filtered by supplier.
// Listing bypasses the cache; it is a browsing path, not a hot lookup.
func (uc *CatalogUsecase) ListProducts(ctx context.Context, supplierID string, offset, limit int) ([]*model.Product, error) {
	return uc.repo.ListProducts(ctx, supplierID, offset, limit)
}

// InvalidateProduct drops a product from the cache after a catalog update.
func (uc *CatalogUsecase) InvalidateProduct(id string) {
	uc.cache.Remove(id)
}
