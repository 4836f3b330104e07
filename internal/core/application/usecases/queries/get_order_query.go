package queries

import (
	"errors"
	"time"

	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)
)

// GetOrderQuery retrieves one order with its full stage history.
type GetOrderQuery struct {
	guard guard.ConstructorGuard

	orderID kernel.UUID
}

// NewGetOrderQuery creates a query for the order with the given id.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{
		guard:   guard.NewConstructorGuard(),
		orderID: orderID,
	}, nil
}

// OrderID returns the id of the requested order.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderQueryIsNotConstructed if validation fails.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// GetOrderQueryResponse is the full view of one order.
type GetOrderQueryResponse struct {
	ID              kernel.UUID
	SellerID        kernel.UUID
	ReferenceID     string
	IsReverse       bool
	Bucket          string
	PaymentMode     string
	Collectable     decimal.Decimal
	WeightKg        decimal.Decimal
	CustomerName    string
	CustomerPincode string
	CustomerCity    string
	HubPincode      string
	VendorID        string
	AWB             string
	CreatedAt       time.Time
	Stages          []GetOrderQueryStage
}

// GetOrderQueryStage is one lifecycle history entry of the order.
type GetOrderQueryStage struct {
	Bucket string
	At     time.Time
	Action string
}
