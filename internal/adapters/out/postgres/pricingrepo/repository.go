package pricingrepo

import (
	"context"
	"errors"

	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/core/domain/model/pricing"
	"courierhub/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormPricingProfileRepository implements PricingProfileRepository using GORM.
type GormPricingProfileRepository struct {
	db *gorm.DB
}

// NewGormPricingProfileRepository creates a new GORM pricing profile repository.
func NewGormPricingProfileRepository(db *gorm.DB) *GormPricingProfileRepository {
	return &GormPricingProfileRepository{db: db}
}

// GetBySeller lists every profile configured for a seller.
func (r *GormPricingProfileRepository) GetBySeller(
	ctx context.Context,
	sellerID kernel.UUID,
) ([]pricing.Profile, error) {
	if err := sellerID.Validate(); err != nil {
		return nil, err
	}

	var dtos []ProfileDTO
	err := r.db.WithContext(ctx).
		Where("seller_id = ?", sellerID.Bytes()).
		Order("vendor_id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	profiles := make([]pricing.Profile, 0, len(dtos))
	for _, dto := range dtos {
		p, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

// GetBySellerAndVendor loads one seller's profile for one vendor.
func (r *GormPricingProfileRepository) GetBySellerAndVendor(
	ctx context.Context,
	sellerID kernel.UUID,
	vendorID string,
) (pricing.Profile, error) {
	if err := sellerID.Validate(); err != nil {
		return pricing.Profile{}, err
	}

	var dto ProfileDTO
	err := r.db.WithContext(ctx).
		First(&dto, "seller_id = ? AND vendor_id = ?", sellerID.Bytes(), vendorID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pricing.Profile{}, errs.NewObjectNotFoundError("pricing profile", vendorID)
		}
		return pricing.Profile{}, err
	}

	return toDomain(dto)
}
