package service

import (
	"context"
	"errors"
	"fmt"

	"TradeGate/internal/biz"
	"TradeGate/internal/data"

	kerrors "github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
)

// newProductNotFoundError reports an add/lookup against an unknown product.
func newProductNotFoundError(productID string) error {
	return kerrors.New(404, "PRODUCT_NOT_FOUND", fmt.Sprintf("product %s does not exist", productID))
}

// CartService exposes the cart engine over HTTP.
type CartService struct {
	cart    *biz.CartUsecase
	catalog *biz.CatalogUsecase
	logger  *log.Helper
}

// NewCartService creates a new CartService instance.
func NewCartService(cart *biz.CartUsecase, catalog *biz.CatalogUsecase, logger log.Logger) *CartService {
	return &CartService{
		cart:    cart,
		catalog: catalog,
		logger:  log.NewHelper(logger),
	}
}

// AddItemRequest is the body of POST /v1/cart/items.
type AddItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	IsSample  bool   `json:"isSample"`
}

// UpdateItemRequest is the body of PATCH /v1/cart/items/{id}.
type UpdateItemRequest struct {
	Quantity int `json:"quantity"`
}

// GetCart returns the derived cart view.
func (s *CartService) GetCart(ctx context.Context, cartID string) (*biz.CartSummary, error) {
	summary := s.cart.Summary(ctx, cartID)
	return &summary, nil
}

// AddItem resolves the product and adds it to the cart. A duplicate
// digital/service add returns the DUPLICATE_ITEM error with the cart
// untouched.
func (s *CartService) AddItem(ctx context.Context, cartID string, req *AddItemRequest) (*biz.CartSummary, error) {
	s.logger.Infow("msg", "AddItem called", "cart_id", cartID, "product_id", req.ProductID, "is_sample", req.IsSample)

	product, err := s.catalog.GetProduct(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, data.ErrProductNotFound) {
			return nil, newProductNotFoundError(req.ProductID)
		}
		s.logger.Errorw("msg", "failed to resolve product", "product_id", req.ProductID, "error", err)
		return nil, err
	}

	if err := s.cart.AddToCart(ctx, cartID, product, biz.AddToCartOptions{
		Quantity: req.Quantity,
		IsSample: req.IsSample,
	}); err != nil {
		return nil, err
	}

	summary := s.cart.Summary(ctx, cartID)
	return &summary, nil
}

// UpdateItem sets the quantity of a cart line. Requests against locked or
// absent lines are accepted and ignored, per the engine's no-op semantics.
func (s *CartService) UpdateItem(ctx context.Context, cartID, lineID string, req *UpdateItemRequest) (*biz.CartSummary, error) {
	s.cart.UpdateQuantity(ctx, cartID, lineID, req.Quantity)
	summary := s.cart.Summary(ctx, cartID)
	return &summary, nil
}

// RemoveItem deletes a cart line; removing an absent line succeeds.
func (s *CartService) RemoveItem(ctx context.Context, cartID, lineID string) (*biz.CartSummary, error) {
	s.cart.RemoveFromCart(ctx, cartID, lineID)
	summary := s.cart.Summary(ctx, cartID)
	return &summary, nil
}

// ClearCart empties the cart.
func (s *CartService) ClearCart(ctx context.Context, cartID string) (*biz.CartSummary, error) {
	s.cart.ClearCart(ctx, cartID)
	summary := s.cart.Summary(ctx, cartID)
	return &summary, nil
}

// OpenCart marks the cart flyout visible.
func (s *CartService) OpenCart(ctx context.Context, cartID string) (*biz.CartSummary, error) {
	s.cart.OpenCart(cartID)
	summary := s.cart.Summary(ctx, cartID)
	return &summary, nil
}

// CloseCart marks the cart flyout hidden.
func (s *CartService) CloseCart(ctx context.Context, cartID string) (*biz.CartSummary, error) {
	s.cart.CloseCart(cartID)
	summary := s.cart.Summary(ctx, cartID)
	return &summary, nil
}
