package services

import (
	"courierhub/internal/core/domain/model/order"
	"courierhub/internal/core/domain/model/pricing"
	"courierhub/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// PriceCalculator computes the charge for one shipment against one vendor's
// rate table. It is a pure domain service: no I/O, no shared state.
//
// Billing model:
//   - billable slabs = ceil(weight / slab weight), minimum one slab
//   - freight = base + (slabs - 1) * increment
//   - COD fee = max(hard fee, percent * collectable), prepaid orders pay none
type PriceCalculator struct{}

// NewPriceCalculator creates a new PriceCalculator instance.
func NewPriceCalculator() PriceCalculator {
	return PriceCalculator{}
}

// Calculate prices a shipment of the given weight against a rate table and
// COD rule. The collectable amount is ignored for prepaid orders.
func (p PriceCalculator) Calculate(
	table pricing.RateTable,
	cod pricing.CODRule,
	weightKg decimal.Decimal,
	paymentMode order.PaymentMode,
	collectable decimal.Decimal,
) (pricing.Charge, error) {
	if err := table.Validate(); err != nil {
		return pricing.Charge{}, err
	}
	if !weightKg.IsPositive() {
		return pricing.Charge{}, errs.NewValueIsOutOfRangeError("weight", weightKg.String(), "> 0 kg", "none")
	}
	if err := paymentMode.Validate(); err != nil {
		return pricing.Charge{}, err
	}

	slabs := weightKg.Div(table.SlabKg).Ceil()
	extra := slabs.Sub(decimal.NewFromInt(1))
	if extra.IsNegative() {
		extra = decimal.Zero
	}
	freight := table.Base.Add(extra.Mul(table.Increment))

	codFee := decimal.Zero
	if paymentMode == order.PaymentCOD {
		codFee = cod.Fee(collectable)
	}

	return pricing.Charge{
		Freight: freight,
		CODFee:  codFee,
		Total:   freight.Add(codFee),
	}, nil
}
