package pricing

import (
	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// RateTable holds the freight rates for one zone: a base price covering the
// first billable slab and an increment price for each additional slab.
// SlabKg is the billable weight unit; couriers always bill whole slabs,
// rounding the shipment weight up.
type RateTable struct {
	Base      decimal.Decimal
	Increment decimal.Decimal
	SlabKg    decimal.Decimal
}

// Validate checks rates are non-negative and the slab weight is positive.
func (r RateTable) Validate() error {
	if r.Base.IsNegative() || r.Increment.IsNegative() {
		return errs.NewValueIsInvalidError("rate table prices")
	}
	if !r.SlabKg.IsPositive() {
		return errs.NewValueIsOutOfRangeError("slab weight", r.SlabKg.String(), "> 0", "none")
	}
	return nil
}

// CODRule describes how a vendor charges for cash on delivery for a seller:
// the larger of a flat fee and a percentage of the collectable amount.
type CODRule struct {
	Hard    decimal.Decimal
	Percent decimal.Decimal
}

// Fee computes the COD fee for a collectable amount: max(hard,
// percent*collectable). The hard floor protects against under-pricing small
// COD orders.
func (c CODRule) Fee(collectable decimal.Decimal) decimal.Decimal {
	pct := collectable.Mul(c.Percent)
	if pct.GreaterThan(c.Hard) {
		return pct
	}
	return c.Hard
}

// Profile is the commercial agreement between one seller and one vendor: the
// COD rule and a rate table for each of the five zones. A profile missing any
// zone table is inactive and must be excluded from rate shopping.
type Profile struct {
	SellerID kernel.UUID
	VendorID string
	COD      CODRule
	Tables   map[Zone]RateTable
}

// Active reports whether the profile carries a valid rate table for every
// zone.
func (p Profile) Active() bool {
	for _, z := range Zones() {
		table, ok := p.Tables[z]
		if !ok || table.Validate() != nil {
			return false
		}
	}
	return true
}

// TableFor resolves the rate table for a zone. Returns InvalidProfileError
// when the table is absent or invalid.
func (p Profile) TableFor(zone Zone) (RateTable, error) {
	if err := zone.Validate(); err != nil {
		return RateTable{}, err
	}
	table, ok := p.Tables[zone]
	if !ok {
		return RateTable{}, errs.NewInvalidProfileError(p.VendorID, "missing "+zone.String()+" rate table")
	}
	if err := table.Validate(); err != nil {
		return RateTable{}, errs.NewInvalidProfileError(p.VendorID, "invalid "+zone.String()+" rate table")
	}
	return table, nil
}
