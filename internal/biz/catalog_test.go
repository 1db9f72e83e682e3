package biz

import (
	"context"
	"errors"
	"os"
	"testing"

	"TradeGate/internal/model"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingCatalogRepo serves a fixed product set and counts lookups.
type countingCatalogRepo struct {
	products map[string]*model.Product
	gets     int
}

func (r *countingCatalogRepo) GetProduct(_ context.Context, id string) (*model.Product, error) {
	r.gets++
	p, ok := r.products[id]
	if !ok {
		return nil, errors.New("catalog: product not found")
	}
	return p, nil
}

func (r *countingCatalogRepo) ListProducts(context.Context, string, int, int) ([]*model.Product, error) {
	out := make([]*model.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, p)
	}
	return out, nil
}

func newTestCatalog(t *testing.T, repo CatalogRepo) *CatalogUsecase {
	uc, err := NewCatalogUsecase(repo, log.NewStdLogger(os.Stdout))
	require.NoError(t, err)
	return uc
}

func TestCatalog_GetProductCaches(t *testing.T) {
	repo := &countingCatalogRepo{products: map[string]*model.Product{
		"p-1": {ID: "p-1", Title: "Bolts", Price: 10, ProductType: model.ProductTypePhysical},
	}}
	uc := newTestCatalog(t, repo)
	ctx := context.Background()

	p, err := uc.GetProduct(ctx, "p-1")
	require.NoError(t, err)
	assert.Equal(t, "Bolts", p.Title)

	_, err = uc.GetProduct(ctx, "p-1")
	require.NoError(t, err)
	// Second lookup served from cache
	assert.Equal(t, 1, repo.gets)
}

func TestCatalog_NegativeResultsNotCached(t *testing.T) {
	repo := &countingCatalogRepo{products: map[string]*model.Product{}}
	uc := newTestCatalog(t, repo)
	ctx := context.Background()

	_, err := uc.GetProduct(ctx, "ghost")
	require.Error(t, err)
	_, err = uc.GetProduct(ctx, "ghost")
	require.Error(t, err)
	assert.Equal(t, 2, repo.gets)
}

func TestCatalog_InvalidateProduct(t *testing.T) {
	repo := &countingCatalogRepo{products: map[string]*model.Product{
		"p-1": {ID: "p-1", Title: "Bolts", Price: 10, ProductType: model.ProductTypePhysical},
	}}
	uc := newTestCatalog(t, repo)
	ctx := context.Background()

	_, err := uc.GetProduct(ctx, "p-1")
	require.NoError(t, err)

	uc.InvalidateProduct("p-1")

	_, err = uc.GetProduct(ctx, "p-1")
	require.NoError(t, err)
	assert.Equal(t, 2, repo.gets)
}
