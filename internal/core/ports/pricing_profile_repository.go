package ports

import (
	"context"

	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/core/domain/model/pricing"
)

// PricingProfileRepository loads seller-vendor pricing agreements. Profiles
// are written through back-office tooling, the engine only reads them.
type PricingProfileRepository interface {
	// GetBySeller lists every pricing profile configured for a seller,
	// active or not.
	GetBySeller(ctx context.Context, sellerID kernel.UUID) ([]pricing.Profile, error)

	// GetBySellerAndVendor loads one seller's profile for one vendor.
	// Returns ObjectNotFoundError when no profile is configured.
	GetBySellerAndVendor(ctx context.Context, sellerID kernel.UUID, vendorID string) (pricing.Profile, error)
}
