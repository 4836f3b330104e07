package remittance

import (
	"time"

	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Remittance is one seller's COD payout for one cycle date: the sum of
// collectable amounts across orders delivered on that date. Cycles are
// computed once, a second run for the same seller and date is a no-op.
type Remittance struct {
	id        kernel.UUID
	sellerID  kernel.UUID
	cycleDate time.Time
	amount    decimal.Decimal
	orderIDs  []kernel.UUID
	createdAt time.Time
}

// NewRemittance creates a payout record for a seller's delivered COD orders
// on a cycle date. The order list must be non-empty and the amount positive.
func NewRemittance(
	sellerID kernel.UUID,
	cycleDate time.Time,
	amount decimal.Decimal,
	orderIDs []kernel.UUID,
	createdAt time.Time,
) (*Remittance, error) {
	if err := sellerID.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("sellerID", err)
	}
	if cycleDate.IsZero() {
		return nil, errs.NewValueIsRequiredError("cycleDate")
	}
	if !amount.IsPositive() {
		return nil, errs.NewValueIsInvalidError("amount")
	}
	if len(orderIDs) == 0 {
		return nil, errs.NewValueIsRequiredError("orderIDs")
	}

	return &Remittance{
		id:        kernel.NewUUID(),
		sellerID:  sellerID,
		cycleDate: cycleDate.Truncate(24 * time.Hour),
		amount:    amount,
		orderIDs:  append([]kernel.UUID(nil), orderIDs...),
		createdAt: createdAt,
	}, nil
}

// RestoreRemittance rebuilds a remittance from storage without validation of
// business rules beyond identity.
func RestoreRemittance(
	id kernel.UUID,
	sellerID kernel.UUID,
	cycleDate time.Time,
	amount decimal.Decimal,
	orderIDs []kernel.UUID,
	createdAt time.Time,
) (*Remittance, error) {
	if err := id.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("id", err)
	}
	if err := sellerID.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("sellerID", err)
	}
	return &Remittance{
		id:        id,
		sellerID:  sellerID,
		cycleDate: cycleDate,
		amount:    amount,
		orderIDs:  append([]kernel.UUID(nil), orderIDs...),
		createdAt: createdAt,
	}, nil
}

func (r *Remittance) ID() kernel.UUID         { return r.id }
func (r *Remittance) SellerID() kernel.UUID   { return r.sellerID }
func (r *Remittance) CycleDate() time.Time    { return r.cycleDate }
func (r *Remittance) Amount() decimal.Decimal { return r.amount }
func (r *Remittance) CreatedAt() time.Time    { return r.createdAt }

// OrderIDs returns the orders covered by this payout.
func (r *Remittance) OrderIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), r.orderIDs...)
}
