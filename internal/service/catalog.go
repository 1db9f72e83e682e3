package service

import (
	"context"
	"errors"

	"TradeGate/internal/biz"
	"TradeGate/internal/data"
	"TradeGate/internal/model"

	"github.com/go-kratos/kratos/v2/log"
)

// CatalogService exposes product browsing over HTTP.
type CatalogService struct {
	catalog *biz.CatalogUsecase
	logger  *log.Helper
}

// NewCatalogService creates a new CatalogService instance.
func NewCatalogService(catalog *biz.CatalogUsecase, logger log.Logger) *CatalogService {
	return &CatalogService{
		catalog: catalog,
		logger:  log.NewHelper(logger),
	}
}

// ListProductsReply is the body of GET /v1/products.
type ListProductsReply struct {
	Products []*model.Product `json:"products"`
}

// GetProduct returns a single product by ID.
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	p, err := s.catalog.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, data.ErrProductNotFound) {
			return nil, newProductNotFoundError(id)
		}
		s.logger.Errorw("msg", "failed to get product", "product_id", id, "error", err)
		return nil, err
	}
	return p, nil
}

// ListProducts returns a page of products, optionally filtered by supplier.
func (s *CatalogService) ListProducts(ctx context.Context, supplierID string, offset, limit int) (*ListProductsReply, error) {
	products, err := s.catalog.ListProducts(ctx, supplierID, offset, limit)
	if err != nil {
		s.logger.Errorw("msg", "failed to list products", "error", err)
		return nil, err
	}
	return &ListProductsReply{Products: products}, nil
}
