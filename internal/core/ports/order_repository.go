// Package ports defines the contracts between the application core and
// infrastructure: persistence, the vendor gateway pool, sales channel
// clients and the quote cache. Adapters implement these interfaces,
// enabling dependency inversion and testability.
package ports

import (
	"context"
	"time"

	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate. The stored
	// version must match the aggregate's loaded version, otherwise a
	// VersionIsInvalidError is returned and the caller must reload.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns the complete order with its full lifecycle history.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByAWB retrieves the order carrying the given air waybill for a
	// vendor. Used to resolve webhook callbacks to an order.
	GetByAWB(ctx context.Context, vendorID, awb string) (*order.Order, error)

	// GetBySellerAndBuckets lists a seller's orders whose current bucket is
	// in the given set, newest first. An empty bucket set lists everything.
	GetBySellerAndBuckets(ctx context.Context, sellerID kernel.UUID, buckets []order.Bucket) ([]*order.Order, error)

	// GetDeliveredCODOn lists COD orders whose delivery stage falls on the
	// given calendar day. Used by the remittance cycle.
	GetDeliveredCODOn(ctx context.Context, day time.Time) ([]*order.Order, error)

	// ExistsByChannelRef reports whether an order imported from the named
	// sales channel with that channel order id is already stored.
	ExistsByChannelRef(ctx context.Context, channelName, channelOrderID string) (bool, error)
}
