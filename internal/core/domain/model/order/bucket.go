package order

import (
	"fmt"

	"courierhub/internal/pkg/errs"
)

// Bucket represents the lifecycle state of a shipment order. Forward orders
// and reverse (return) orders move through two disjoint state graphs; which
// graph applies is fixed by the order's reverse flag at creation time.
//
// Forward graph:
//
//	NEW ──> READY_TO_SHIP ──> IN_TRANSIT ──┬──> DELIVERED
//	                              ^        │
//	                              │        └──> NDR ──> RTO
//	                              └─────────────┘
//	                         (re-attempt after NDR)
//
// Reverse graph:
//
//	RETURN_CONFIRMED ──> RETURN_PICKED ──> RETURN_IN_TRANSIT ──> RETURN_DELIVERED
//	        │                  │                   │
//	        └──────────────────┴───────────────────┴──> RETURN_CANCELLATION
//
// DELIVERED, RTO, RETURN_DELIVERED and RETURN_CANCELLATION are terminal.
type Bucket int

const (
	// Unknown represents an invalid or undefined bucket.
	// This value (0) helps catch uninitialized Bucket values.
	Unknown Bucket = iota

	// New is the initial bucket for forward orders.
	New

	// ReadyToShip indicates a vendor booking exists and pickup is pending.
	ReadyToShip

	// InTransit indicates the shipment is moving through the courier network.
	InTransit

	// Delivered is the terminal bucket of the forward happy path.
	Delivered

	// NDR indicates the courier attempted delivery and failed
	// (non-delivery report).
	NDR

	// RTO indicates the shipment is being returned to the seller after a
	// failed delivery. Terminal.
	RTO

	// ReturnConfirmed is the initial bucket for reverse orders.
	ReturnConfirmed

	// ReturnPicked indicates the return shipment was collected from the buyer.
	ReturnPicked

	// ReturnInTransit indicates the return shipment is moving back to the seller.
	ReturnInTransit

	// ReturnDelivered is the terminal bucket of the reverse happy path.
	ReturnDelivered

	// ReturnCancellation indicates the return was cancelled. Terminal.
	ReturnCancellation
)

// bucketCodes maps buckets to the stage codes recorded in history entries and
// exchanged with vendor webhooks.
func bucketCodes() map[Bucket]string {
	return map[Bucket]string{
		Unknown:            "UNKNOWN",
		New:                "NEW",
		ReadyToShip:        "READY_TO_SHIP",
		InTransit:          "IN_TRANSIT",
		Delivered:          "DELIVERED",
		NDR:                "NDR",
		RTO:                "RTO",
		ReturnConfirmed:    "RETURN_CONFIRMED",
		ReturnPicked:       "RETURN_PICKED",
		ReturnInTransit:    "RETURN_IN_TRANSIT",
		ReturnDelivered:    "RETURN_DELIVERED",
		ReturnCancellation: "RETURN_CANCELLATION",
	}
}

// successors defines the full transition graph over both lifecycles.
// A bucket absent from the map is terminal.
func successors() map[Bucket][]Bucket {
	return map[Bucket][]Bucket{
		New:             {ReadyToShip},
		ReadyToShip:     {InTransit},
		InTransit:       {Delivered, NDR},
		NDR:             {RTO, InTransit},
		ReturnConfirmed: {ReturnPicked, ReturnCancellation},
		ReturnPicked:    {ReturnInTransit, ReturnCancellation},
		ReturnInTransit: {ReturnDelivered, ReturnCancellation},
	}
}

// BucketFromCode resolves a stage code (as carried by vendor webhooks) to its
// Bucket. Returns an error for codes outside the defined set.
func BucketFromCode(code string) (Bucket, error) {
	for b, c := range bucketCodes() {
		if b != Unknown && c == code {
			return b, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("stage code",
		fmt.Errorf("%q is not a defined stage", code))
}

// InitialBucket returns the sole entry state of the lifecycle selected by the
// reverse flag: New for forward orders, ReturnConfirmed for reverse orders.
func InitialBucket(isReverse bool) Bucket {
	if isReverse {
		return ReturnConfirmed
	}
	return New
}

// String returns the stage code for the bucket, or "UNKNOWN" for invalid values.
func (b Bucket) String() string {
	if code, ok := bucketCodes()[b]; ok {
		return code
	}
	return "UNKNOWN"
}

// Validate checks that the bucket is one of the defined lifecycle states.
func (b Bucket) Validate() error {
	if b == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("bucket",
			fmt.Errorf("%d is not a valid bucket", int(b)))
	}
	if _, ok := bucketCodes()[b]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("bucket",
			fmt.Errorf("%d is not a valid bucket", int(b)))
	}
	return nil
}

// IsTerminal reports whether no further transitions are defined from b.
func (b Bucket) IsTerminal() bool {
	if b.Validate() != nil {
		return false
	}
	_, hasSuccessors := successors()[b]
	return !hasSuccessors
}

// IsReverse reports whether the bucket belongs to the reverse lifecycle.
func (b Bucket) IsReverse() bool {
	return b >= ReturnConfirmed && b <= ReturnCancellation
}

// CanTransitionTo reports whether next is a defined successor of b.
func (b Bucket) CanTransitionTo(next Bucket) bool {
	for _, s := range successors()[b] {
		if s == next {
			return true
		}
	}
	return false
}

// Transition validates and performs the move from b to next. It returns next
// on success, or an InvalidTransitionError naming both stages when next is
// not a defined successor.
func (b Bucket) Transition(next Bucket) (Bucket, error) {
	if err := next.Validate(); err != nil {
		return Unknown, err
	}
	if !b.CanTransitionTo(next) {
		return Unknown, errs.NewInvalidTransitionError(b.String(), next.String())
	}
	return next, nil
}
