package queries

import (
	"errors"
	"fmt"
	"time"

	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/core/domain/model/order"
	"courierhub/internal/pkg/errs"
	"courierhub/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrGetOrdersQueryIsNotConstructed = errors.New(
		"GetOrdersQuery must be created via NewGetOrdersQuery constructor",
	)
)

// bucketGroups maps the dashboard filter names to the buckets they cover.
// An empty group selects every bucket.
func bucketGroups() map[string][]order.Bucket {
	return map[string][]order.Bucket{
		"new":           {order.New},
		"ready-to-ship": {order.ReadyToShip},
		"in-transit":    {order.InTransit},
		"delivered":     {order.Delivered},
		"ndr":           {order.NDR},
		"rto":           {order.RTO},
		"returns": {
			order.ReturnConfirmed,
			order.ReturnPicked,
			order.ReturnInTransit,
			order.ReturnDelivered,
			order.ReturnCancellation,
		},
	}
}

// GetOrdersQuery lists a seller's orders, optionally narrowed to one
// dashboard bucket group.
//
// Example:
//
//	query, err := NewGetOrdersQuery(sellerID, "in-transit")
//	if err != nil {
//	    return err
//	}
//
//	orders, err := handler.Handle(ctx, query)
type GetOrdersQuery struct {
	guard guard.ConstructorGuard

	sellerID kernel.UUID
	buckets  []order.Bucket
}

// NewGetOrdersQuery creates a listing query for one seller. The group names
// a dashboard filter ("new", "ready-to-ship", "in-transit", "delivered",
// "ndr", "rto", "returns"); an empty group lists every order.
func NewGetOrdersQuery(sellerID kernel.UUID, group string) (GetOrdersQuery, error) {
	if err := sellerID.Validate(); err != nil {
		return GetOrdersQuery{}, err
	}

	var buckets []order.Bucket
	if group != "" {
		selected, ok := bucketGroups()[group]
		if !ok {
			return GetOrdersQuery{}, errs.NewValueIsInvalidErrorWithCause("group",
				fmt.Errorf("%q is not a defined bucket group", group))
		}
		buckets = selected
	}

	return GetOrdersQuery{
		guard:    guard.NewConstructorGuard(),
		sellerID: sellerID,
		buckets:  buckets,
	}, nil
}

// SellerID returns the seller whose orders are listed.
func (q GetOrdersQuery) SellerID() kernel.UUID {
	return q.sellerID
}

// Buckets returns the buckets selected by the group filter. Empty means all.
func (q GetOrdersQuery) Buckets() []order.Bucket {
	return q.buckets
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrdersQueryIsNotConstructed if validation fails.
func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}

// GetOrdersQueryResponse is one row of the seller's order listing.
type GetOrdersQueryResponse struct {
	ID          kernel.UUID
	ReferenceID string
	IsReverse   bool
	Bucket      string
	PaymentMode string
	Collectable decimal.Decimal
	VendorID    string
	AWB         string
	CreatedAt   time.Time
}
