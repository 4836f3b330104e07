package order

import (
	"fmt"
	"time"

	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// CustomerDetails is the buyer-side address block snapshotted onto the order
// at creation time. The pincode is the destination of forward shipments and
// the pickup point of reverse shipments.
type CustomerDetails struct {
	Name    string
	Phone   string
	Email   string
	Address string
	Pincode kernel.Pincode
	City    string
	State   string
}

// Validate checks the required customer fields.
func (c CustomerDetails) Validate() error {
	if c.Name == "" {
		return errs.NewValueIsRequiredError("customer name")
	}
	if c.Phone == "" {
		return errs.NewValueIsRequiredError("customer phone")
	}
	if c.Address == "" {
		return errs.NewValueIsRequiredError("customer address")
	}
	return c.Pincode.Validate()
}

// SellerDetails is the seller-side snapshot taken at order creation, used on
// shipping labels and vendor bookings. It is a copy, not a reference: later
// seller profile edits must not alter already-created orders.
type SellerDetails struct {
	Name    string
	GSTIN   string
	Address string
	Pincode kernel.Pincode
	City    string
	State   string
	Phone   string
}

// Validate checks the required seller snapshot fields.
func (s SellerDetails) Validate() error {
	if s.Name == "" {
		return errs.NewValueIsRequiredError("seller name")
	}
	return s.Pincode.Validate()
}

// PackageDetails carries the physical attributes of the shipment. Weight is
// in kilograms and box dimensions in centimetres; inbound adapters normalize
// other units before the order is created. These values are authoritative for
// pricing and vendor bookings.
type PackageDetails struct {
	WeightKg decimal.Decimal
	LengthCm decimal.Decimal
	WidthCm  decimal.Decimal
	HeightCm decimal.Decimal
	BoxCount int
}

// Validate checks that weight and dimensions are positive.
func (p PackageDetails) Validate() error {
	if !p.WeightKg.IsPositive() {
		return errs.NewValueIsOutOfRangeError("package weight", p.WeightKg.String(), "> 0", "none")
	}
	for name, d := range map[string]decimal.Decimal{
		"box length": p.LengthCm,
		"box width":  p.WidthCm,
		"box height": p.HeightCm,
	} {
		if !d.IsPositive() {
			return errs.NewValueIsOutOfRangeError(name, d.String(), "> 0", "none")
		}
	}
	if p.BoxCount < 1 {
		return errs.NewValueIsOutOfRangeErrorWithCause("box count", p.BoxCount, 1, 100,
			fmt.Errorf("%d boxes", p.BoxCount))
	}
	return nil
}

// ProductLine is the snapshot of the single product line item attached to the
// order.
type ProductLine struct {
	Name         string
	Category     string
	Quantity     int
	TaxableValue decimal.Decimal
	TaxRate      decimal.Decimal
}

// Validate checks the required product fields.
func (p ProductLine) Validate() error {
	if p.Name == "" {
		return errs.NewValueIsRequiredError("product name")
	}
	if p.Quantity < 1 {
		return errs.NewValueIsOutOfRangeError("product quantity", p.Quantity, 1, "none")
	}
	if p.TaxableValue.IsNegative() {
		return errs.NewValueIsOutOfRangeError("taxable value", p.TaxableValue.String(), "0", "none")
	}
	return nil
}

// PickupHub is the snapshot of the seller warehouse the shipment is collected
// from. Its pincode is the origin of forward shipments.
type PickupHub struct {
	ID      kernel.UUID
	Name    string
	Phone   string
	Address string
	Pincode kernel.Pincode
	City    string
	State   string
}

// Validate checks the required hub fields.
func (h PickupHub) Validate() error {
	if err := h.ID.Validate(); err != nil {
		return err
	}
	if h.Name == "" {
		return errs.NewValueIsRequiredError("hub name")
	}
	return h.Pincode.Validate()
}

// Booking records a confirmed shipment with a vendor. An order carries at
// most one booking; once set it is never replaced.
type Booking struct {
	VendorID         string
	VendorOrderID    string
	VendorShipmentID string
	AWB              string
	BookedAt         time.Time
}

// Validate checks the required booking fields.
func (b Booking) Validate() error {
	if b.VendorID == "" {
		return errs.NewValueIsRequiredError("booking vendor id")
	}
	if b.VendorOrderID == "" {
		return errs.NewValueIsRequiredError("booking vendor order id")
	}
	if b.BookedAt.IsZero() {
		return errs.NewValueIsRequiredError("booking time")
	}
	return nil
}
