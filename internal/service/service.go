// Package service implements the HTTP-facing application services.
// Services stay thin: they validate transport input, delegate to the biz
// layer, and shape responses.
package service

import (
	"github.com/google/wire"
)

// ProviderSet is service providers.
var ProviderSet = wire.NewSet(
	NewCartService,
	NewCatalogService,
	NewUploadService,
	NewAuthService,
	NewPaymentService,
)
