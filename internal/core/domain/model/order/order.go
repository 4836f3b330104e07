package order

import (
	"errors"
	"time"

	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrCollectableRequired is returned when a COD order is created without a
	// positive collectable amount.
	ErrCollectableRequired = errors.New("collectable amount must be greater than 0 for COD orders")

	// ErrInconsistentHistory is returned when a restored order's bucket does
	// not match the last entry of its stage history.
	ErrInconsistentHistory = errors.New("order bucket must equal the last stage of its history")
)

// newOrderAction is the note recorded on the initial stage entry.
const newOrderAction = "Order placed by seller"

// Order is the aggregate root for a shipment order. It owns the lifecycle
// bucket and the append-only stage history, the package and payment details,
// and the snapshots of customer, seller, product and pickup hub taken at
// creation time.
//
// Invariants:
//   - the bucket always equals the bucket of the last stage history entry
//   - stage entries are never mutated or removed once appended
//   - the lifecycle graph (forward or reverse, per the reverse flag) is the
//     only way the bucket changes
//   - a COD order carries a positive collectable amount
//   - at most one vendor booking is ever recorded
type Order struct {
	id          kernel.UUID
	sellerID    kernel.UUID
	referenceID string

	// channelName/channelOrderID are set only for orders ingested from an
	// external sales channel.
	channelName    string
	channelOrderID string

	isReverse bool
	bucket    Bucket
	stages    []Stage

	pkg         PackageDetails
	paymentMode PaymentMode
	collectable decimal.Decimal

	customer CustomerDetails
	seller   SellerDetails
	product  ProductLine
	hub      PickupHub

	booking *Booking

	// version supports optimistic concurrency control in the repository.
	version int

	isConstructed bool
}

// NewOrder creates a new Order in the initial bucket of its lifecycle with a
// single history entry stamped at createdAt. All snapshots are validated; a
// COD payment mode requires a positive collectable amount.
func NewOrder(
	id kernel.UUID,
	sellerID kernel.UUID,
	referenceID string,
	isReverse bool,
	pkg PackageDetails,
	paymentMode PaymentMode,
	collectable decimal.Decimal,
	customer CustomerDetails,
	seller SellerDetails,
	product ProductLine,
	hub PickupHub,
	createdAt time.Time,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		sellerID.Validate(),
		requireReference(referenceID),
		pkg.Validate(),
		paymentMode.Validate(),
		customer.Validate(),
		seller.Validate(),
		product.Validate(),
		hub.Validate(),
	); err != nil {
		return nil, err
	}
	if paymentMode == PaymentCOD && !collectable.IsPositive() {
		return nil, ErrCollectableRequired
	}

	initial := InitialBucket(isReverse)
	stage, err := NewStage(initial, createdAt, newOrderAction)
	if err != nil {
		return nil, err
	}

	return &Order{
		id:            id,
		sellerID:      sellerID,
		referenceID:   referenceID,
		isReverse:     isReverse,
		bucket:        initial,
		stages:        []Stage{stage},
		pkg:           pkg,
		paymentMode:   paymentMode,
		collectable:   collectable,
		customer:      customer,
		seller:        seller,
		product:       product,
		hub:           hub,
		isConstructed: true,
	}, nil
}

// RestoreOrder reconstructs an Order from persistence. The stage history must
// be non-empty and internally consistent: its last entry must match bucket.
func RestoreOrder(
	id kernel.UUID,
	sellerID kernel.UUID,
	referenceID string,
	channelName string,
	channelOrderID string,
	isReverse bool,
	bucket Bucket,
	stages []Stage,
	pkg PackageDetails,
	paymentMode PaymentMode,
	collectable decimal.Decimal,
	customer CustomerDetails,
	seller SellerDetails,
	product ProductLine,
	hub PickupHub,
	booking *Booking,
	version int,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		sellerID.Validate(),
		bucket.Validate(),
	); err != nil {
		return nil, err
	}
	if len(stages) == 0 {
		return nil, errs.NewValueIsRequiredError("stage history")
	}
	if stages[len(stages)-1].Bucket() != bucket {
		return nil, ErrInconsistentHistory
	}
	if booking != nil {
		if err := booking.Validate(); err != nil {
			return nil, err
		}
	}

	history := make([]Stage, len(stages))
	copy(history, stages)

	return &Order{
		id:             id,
		sellerID:       sellerID,
		referenceID:    referenceID,
		channelName:    channelName,
		channelOrderID: channelOrderID,
		isReverse:      isReverse,
		bucket:         bucket,
		stages:         history,
		pkg:            pkg,
		paymentMode:    paymentMode,
		collectable:    collectable,
		customer:       customer,
		seller:         seller,
		product:        product,
		hub:            hub,
		booking:        booking,
		version:        version,
		isConstructed:  true,
	}, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// ApplyEvent applies a lifecycle status event to the order.
//
// An event whose stage is already recorded with the same or a later timestamp
// is a no-op: vendor webhooks are delivered at least once and duplicates must
// not grow the history. Otherwise the event stage must be a defined successor
// of the current bucket; if it is not, an InvalidTransitionError is returned
// and the order is left unchanged. On acceptance the entry is appended and
// the bucket updated.
func (o *Order) ApplyEvent(stage Bucket, at time.Time, note string) error {
	if err := o.Validate(); err != nil {
		return err
	}
	entry, err := NewStage(stage, at, note)
	if err != nil {
		return err
	}

	for _, recorded := range o.stages {
		if recorded.Bucket() == stage && !recorded.At().Before(at) {
			return nil
		}
	}

	next, err := o.bucket.Transition(stage)
	if err != nil {
		return err
	}

	o.stages = append(o.stages, entry)
	o.bucket = next
	return nil
}

// RecordBooking records the vendor booking for this order. Recording is
// idempotent: if a booking already exists it is returned unchanged and the
// new one discarded, so a repeated book call never creates a duplicate
// shipment reference.
func (o *Order) RecordBooking(b Booking) (Booking, error) {
	if err := o.Validate(); err != nil {
		return Booking{}, err
	}
	if o.booking != nil {
		return *o.booking, nil
	}
	if err := b.Validate(); err != nil {
		return Booking{}, err
	}
	o.booking = &b
	return b, nil
}

// AttachChannel marks the order as ingested from an external sales channel.
func (o *Order) AttachChannel(name, channelOrderID string) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if name == "" || channelOrderID == "" {
		return errs.NewValueIsRequiredError("channel reference")
	}
	o.channelName = name
	o.channelOrderID = channelOrderID
	return nil
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// SellerID returns the owning seller's identifier.
func (o *Order) SellerID() kernel.UUID {
	return o.sellerID
}

// ReferenceID returns the seller-supplied order reference.
func (o *Order) ReferenceID() string {
	return o.referenceID
}

// Channel returns the external channel name and order id, empty for orders
// created directly by the seller.
func (o *Order) Channel() (name, channelOrderID string) {
	return o.channelName, o.channelOrderID
}

// IsReverse reports whether the order follows the reverse lifecycle.
func (o *Order) IsReverse() bool {
	return o.isReverse
}

// Bucket returns the current lifecycle state.
func (o *Order) Bucket() Bucket {
	return o.bucket
}

// Stages returns a copy of the append-only stage history in recorded order.
func (o *Order) Stages() []Stage {
	history := make([]Stage, len(o.stages))
	copy(history, o.stages)
	return history
}

// Package returns the shipment's physical attributes.
func (o *Order) Package() PackageDetails {
	return o.pkg
}

// PaymentMode returns the order's payment mode.
func (o *Order) PaymentMode() PaymentMode {
	return o.paymentMode
}

// Collectable returns the COD collectable amount; zero for prepaid orders.
func (o *Order) Collectable() decimal.Decimal {
	return o.collectable
}

// Customer returns the buyer address snapshot.
func (o *Order) Customer() CustomerDetails {
	return o.customer
}

// Seller returns the seller address snapshot.
func (o *Order) Seller() SellerDetails {
	return o.seller
}

// Product returns the product line snapshot.
func (o *Order) Product() ProductLine {
	return o.product
}

// Hub returns the pickup hub snapshot.
func (o *Order) Hub() PickupHub {
	return o.hub
}

// Booking returns the recorded vendor booking, or nil before booking.
func (o *Order) Booking() *Booking {
	if o.booking == nil {
		return nil
	}
	b := *o.booking
	return &b
}

// OriginPincode returns the pincode the shipment departs from: the hub for
// forward orders, the customer for reverse orders.
func (o *Order) OriginPincode() kernel.Pincode {
	if o.isReverse {
		return o.customer.Pincode
	}
	return o.hub.Pincode
}

// DestinationPincode returns the pincode the shipment is delivered to: the
// customer for forward orders, the hub for reverse orders.
func (o *Order) DestinationPincode() kernel.Pincode {
	if o.isReverse {
		return o.hub.Pincode
	}
	return o.customer.Pincode
}

// Version returns the persisted aggregate version for optimistic locking.
func (o *Order) Version() int {
	return o.version
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func requireReference(referenceID string) error {
	if referenceID == "" {
		return errs.NewValueIsRequiredError("order reference id")
	}
	return nil
}
