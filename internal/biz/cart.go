package biz

import (
	"context"
	"fmt"
	"sync"
	"time"

	"TradeGate/internal/model"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
)

// CartStore is the durable key-value capability the cart engine persists
// through. Interface is defined here in the biz layer; the data layer
// implements it on Redis.
type CartStore interface {
	// Load reads the full cart collection for cartID.
	Load(ctx context.Context, cartID string) ([]model.CartItem, error)

	// Save overwrites the full cart collection for cartID.
	Save(ctx context.Context, cartID string, items []model.CartItem) error
}

// AddToCartOptions carries the optional parameters of an add operation.
type AddToCartOptions struct {
	// Quantity defaults to 1 when not positive.
	Quantity int
	// IsSample requests a one-off trial line instead of a normal line.
	IsSample bool
}

// CartSummary is the derived read-only view of a cart, recomputed from the
// current collection on every read.
type CartSummary struct {
	Items            []model.CartItem `json:"items"`
	Count            int              `json:"count"`
	Subtotal         float64          `json:"subtotal"`
	HasPhysicalItems bool             `json:"hasPhysicalItems"`
	IsOpen           bool             `json:"isOpen"`
}

// newDuplicateItemError reports an attempt to add a second instance of a
// digital or service product, which is restricted to a single cart line.
func newDuplicateItemError(productID string) error {
	return errors.New(
		409,
		"DUPLICATE_ITEM",
		fmt.Sprintf("product %s is already in the cart; digital and service items are limited to one line", productID),
	)
}

// CartUsecase maintains cart collections with per-item-kind mutation rules,
// durable persistence, and the flyout open/close flag.
//
// All mutations run a read-modify-persist sequence under a single-writer
// lock, preserving the at-most-one-line-per-product invariant under
// concurrent callers. Storage failures are swallowed at this boundary:
// reads degrade to an empty cart, writes are best-effort.
type CartUsecase struct {
	store  CartStore
	logger *log.Helper

	// mu serializes all read-modify-persist sequences.
	mu sync.Mutex

	// openMu guards the ephemeral flyout visibility flags. They are UI
	// state, never persisted.
	openMu sync.RWMutex
	open   map[string]bool

	// now is injectable for deterministic sample line IDs in tests.
	now func() time.Time
}

// NewCartUsecase creates a new cart use case.
func NewCartUsecase(store CartStore, logger log.Logger) *CartUsecase {
	return &CartUsecase{
		store:  store,
		logger: log.NewHelper(logger),
		open:   make(map[string]bool),
		now:    time.Now,
	}
}

// load reads the collection for cartID, degrading to an empty collection on
// any storage or deserialization failure. Never returns an error.
func (uc *CartUsecase) load(ctx context.Context, cartID string) []model.CartItem {
	items, err := uc.store.Load(ctx, cartID)
	if err != nil {
		// Missing record is the normal empty-cart case; anything else is
		// a corrupt or unreachable store and still degrades to empty.
		uc.logger.Debugf("cart %s load degraded to empty: %v", cartID, err)
		return []model.CartItem{}
	}
	if items == nil {
		return []model.CartItem{}
	}
	return items
}

// persist writes the collection back, best-effort. A failed write is logged
// and swallowed so cart operations never surface storage errors.
func (uc *CartUsecase) persist(ctx context.Context, cartID string, items []model.CartItem) {
	if err := uc.store.Save(ctx, cartID, items); err != nil {
		uc.logger.Warnf("cart %s persist failed: %v", cartID, err)
	}
}

// Items returns the current cart collection.
func (uc *CartUsecase) Items(ctx context.Context, cartID string) []model.CartItem {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.load(ctx, cartID)
}

// AddToCart adds a product to the cart according to its kind:
//
//   - sample requests always append a fresh line with a synthesized unique
//     ID and quantity fixed at 1;
//   - digital/service products are limited to one line; a duplicate add is
//     rejected with a DUPLICATE_ITEM error and leaves the cart unchanged;
//   - physical products merge into an existing line (quantity adds up) or
//     append a new one.
//
// Every outcome, including the duplicate rejection, opens the cart view.
func (uc *CartUsecase) AddToCart(ctx context.Context, cartID string, product *model.Product, opts AddToCartOptions) error {
	quantity := opts.Quantity
	if quantity < 1 {
		quantity = 1
	}

	// The view opens on every add attempt, successful or rejected.
	defer uc.setOpen(cartID, true)

	uc.mu.Lock()
	defer uc.mu.Unlock()

	items := uc.load(ctx, cartID)

	if opts.IsSample {
		line := model.CartItem{Product: *product, Quantity: 1, IsSample: true}
		// Unique per request: repeated sample requests never merge.
		line.ID = fmt.Sprintf("%s-sample-%d", product.ID, uc.now().UnixNano())
		items = append(items, line)
		uc.persist(ctx, cartID, items)
		uc.logger.Infow("msg", "sample added to cart", "cart_id", cartID, "product_id", product.ID)
		return nil
	}

	if product.ProductType != model.ProductTypePhysical {
		for _, item := range items {
			if !item.IsSample && item.ID == product.ID {
				uc.logger.Infow("msg", "duplicate non-physical item rejected", "cart_id", cartID, "product_id", product.ID)
				return newDuplicateItemError(product.ID)
			}
		}
		items = append(items, model.CartItem{Product: *product, Quantity: 1})
		uc.persist(ctx, cartID, items)
		return nil
	}

	merged := false
	for i := range items {
		if !items[i].IsSample && items[i].ID == product.ID {
			items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, model.CartItem{Product: *product, Quantity: quantity})
	}
	uc.persist(ctx, cartID, items)
	return nil
}

// RemoveFromCart deletes the line with lineID if present. Removing an
// absent line is a no-op, not an error.
func (uc *CartUsecase) RemoveFromCart(ctx context.Context, cartID, lineID string) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	items := uc.load(ctx, cartID)
	kept := items[:0]
	for _, item := range items {
		if item.ID != lineID {
			kept = append(kept, item)
		}
	}
	uc.persist(ctx, cartID, kept)
}

// UpdateQuantity sets the quantity of a mutable line. Sample lines and
// non-physical lines are locked: the request is a no-op. A quantity of
// zero or less removes the line.
func (uc *CartUsecase) UpdateQuantity(ctx context.Context, cartID, lineID string, quantity int) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	items := uc.load(ctx, cartID)

	idx := -1
	for i := range items {
		if items[i].ID == lineID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	if !items[idx].QuantityMutable() {
		return
	}

	if quantity <= 0 {
		items = append(items[:idx], items[idx+1:]...)
	} else {
		items[idx].Quantity = quantity
	}
	uc.persist(ctx, cartID, items)
}

// ClearCart empties the collection.
func (uc *CartUsecase) ClearCart(ctx context.Context, cartID string) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.persist(ctx, cartID, []model.CartItem{})
}

// OpenCart marks the cart flyout visible.
func (uc *CartUsecase) OpenCart(cartID string) {
	uc.setOpen(cartID, true)
}

// CloseCart marks the cart flyout hidden.
func (uc *CartUsecase) CloseCart(cartID string) {
	uc.setOpen(cartID, false)
}

// IsCartOpen reports the cart flyout visibility.
func (uc *CartUsecase) IsCartOpen(cartID string) bool {
	uc.openMu.RLock()
	defer uc.openMu.RUnlock()
	return uc.open[cartID]
}

func (uc *CartUsecase) setOpen(cartID string, open bool) {
	uc.openMu.Lock()
	defer uc.openMu.Unlock()
	uc.open[cartID] = open
}

// CartCount returns the sum of quantities over all lines.
func (uc *CartUsecase) CartCount(ctx context.Context, cartID string) int {
	return summarize(uc.Items(ctx, cartID)).Count
}

// Subtotal returns the sum of unit price times quantity over all lines.
// Sample lines charge the sample price when the supplier set one.
func (uc *CartUsecase) Subtotal(ctx context.Context, cartID string) float64 {
	return summarize(uc.Items(ctx, cartID)).Subtotal
}

// HasPhysicalItems reports whether any line requires shipping.
func (uc *CartUsecase) HasPhysicalItems(ctx context.Context, cartID string) bool {
	return summarize(uc.Items(ctx, cartID)).HasPhysicalItems
}

// Summary returns the full derived view of the cart.
func (uc *CartUsecase) Summary(ctx context.Context, cartID string) CartSummary {
	s := summarize(uc.Items(ctx, cartID))
	s.IsOpen = uc.IsCartOpen(cartID)
	return s
}

// summarize recomputes derived values from the collection. Values are never
// cached so they always reflect the current collection.
func summarize(items []model.CartItem) CartSummary {
	s := CartSummary{Items: items}
	for _, item := range items {
		s.Count += item.Quantity
		s.Subtotal += item.UnitPrice() * float64(item.Quantity)
		if item.ProductType == model.ProductTypePhysical {
			s.HasPhysicalItems = true
		}
	}
	return s
}
