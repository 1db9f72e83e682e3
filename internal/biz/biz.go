// Package biz contains business logic layer implementations.
// This layer holds the core business rules and domain models.
package biz

import (
	"TradeGate/internal/data"

	"github.com/google/wire"
)

// ProviderSet is biz providers.
var ProviderSet = wire.NewSet(
	NewCartUsecase,
	NewRateLimiterUseCase,
	NewCatalogUsecase,
	// Bind data layer implementations to biz layer interfaces
	wire.Bind(new(CartStore), new(*data.CartStore)),
	wire.Bind(new(RateLimitRepo), new(*data.RateLimitRepo)),
	wire.Bind(new(CatalogRepo), new(*data.CatalogRepo)),
)
