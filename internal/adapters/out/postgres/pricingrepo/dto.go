// Package pricingrepo loads seller-vendor pricing profiles. Profiles are
// written by back-office tooling; this repository only reads them.
package pricingrepo

import (
	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/core/domain/model/pricing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProfileDTO represents one seller-vendor pricing agreement. The five zone
// rate tables are flattened into base/increment column pairs; the billable
// slab weight is shared across zones.
type ProfileDTO struct {
	SellerID uuid.UUID `gorm:"type:uuid;primaryKey"`
	VendorID string    `gorm:"type:varchar(32);primaryKey"`

	CODHard    decimal.Decimal `gorm:"type:numeric(8,2)"`
	CODPercent decimal.Decimal `gorm:"type:numeric(6,4)"`
	SlabKg     decimal.Decimal `gorm:"type:numeric(6,3)"`

	WithinCityBase       decimal.Decimal `gorm:"type:numeric(8,2)"`
	WithinCityIncrement  decimal.Decimal `gorm:"type:numeric(8,2)"`
	WithinZoneBase       decimal.Decimal `gorm:"type:numeric(8,2)"`
	WithinZoneIncrement  decimal.Decimal `gorm:"type:numeric(8,2)"`
	WithinMetroBase      decimal.Decimal `gorm:"type:numeric(8,2)"`
	WithinMetroIncrement decimal.Decimal `gorm:"type:numeric(8,2)"`
	RestOfIndiaBase      decimal.Decimal `gorm:"type:numeric(8,2)"`
	RestOfIndiaIncrement decimal.Decimal `gorm:"type:numeric(8,2)"`
	NorthEastBase        decimal.Decimal `gorm:"type:numeric(8,2)"`
	NorthEastIncrement   decimal.Decimal `gorm:"type:numeric(8,2)"`
}

// TableName specifies the database table name for pricing profiles.
func (ProfileDTO) TableName() string {
	return "pricing_profiles"
}

// toDomain converts a profile row to the domain profile.
func toDomain(dto ProfileDTO) (pricing.Profile, error) {
	sellerID, err := kernel.UUIDFromBytes(dto.SellerID[:])
	if err != nil {
		return pricing.Profile{}, err
	}

	table := func(base, increment decimal.Decimal) pricing.RateTable {
		return pricing.RateTable{Base: base, Increment: increment, SlabKg: dto.SlabKg}
	}

	return pricing.Profile{
		SellerID: sellerID,
		VendorID: dto.VendorID,
		COD: pricing.CODRule{
			Hard:    dto.CODHard,
			Percent: dto.CODPercent,
		},
		Tables: map[pricing.Zone]pricing.RateTable{
			pricing.WithinCity:  table(dto.WithinCityBase, dto.WithinCityIncrement),
			pricing.WithinZone:  table(dto.WithinZoneBase, dto.WithinZoneIncrement),
			pricing.WithinMetro: table(dto.WithinMetroBase, dto.WithinMetroIncrement),
			pricing.RestOfIndia: table(dto.RestOfIndiaBase, dto.RestOfIndiaIncrement),
			pricing.NorthEast:   table(dto.NorthEastBase, dto.NorthEastIncrement),
		},
	}, nil
}
