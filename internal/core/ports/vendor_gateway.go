package ports

import (
	"context"

	"courierhub/internal/core/domain/model/order"
	"courierhub/internal/core/domain/model/vendor"
)

// VendorGateway is the outbound contract for one courier vendor's API. Each
// gateway owns its cached auth session and refreshes it transparently when a
// call finds it expired.
//
// Gateways advertise their capabilities; callers must check Supports before
// invoking an optional operation and treat a false answer as
// CapabilityUnsupportedError territory.
type VendorGateway interface {
	// VendorID returns the stable slug identifying this vendor.
	VendorID() string

	// Name returns the vendor's display name.
	Name() string

	// Supports reports whether the vendor implements the given capability.
	Supports(capability vendor.Capability) bool

	// RefreshSession forces a new auth session regardless of the cached
	// one's state. The background refresh job calls this near expiry.
	RefreshSession(ctx context.Context) error

	// CreateShipment books a forward shipment for the order with the
	// vendor and returns the vendor's identifiers.
	CreateShipment(ctx context.Context, aggregate *order.Order) (order.Booking, error)

	// CreateReturnShipment books a reverse pickup for the order.
	// Only valid when the vendor supports CreateReturnShipment.
	CreateReturnShipment(ctx context.Context, aggregate *order.Order) (order.Booking, error)

	// CancelShipment cancels a booked shipment by its air waybill.
	// Only valid when the vendor supports CancelShipment.
	CancelShipment(ctx context.Context, awb string) error
}

// VendorGatewayPool is the registry of configured vendor gateways. The pool
// is assembled once at startup and is safe for concurrent use.
type VendorGatewayPool interface {
	// Get resolves a gateway by vendor slug. Returns ObjectNotFoundError
	// for unknown vendors.
	Get(vendorID string) (VendorGateway, error)

	// All returns every configured gateway in registration order. The
	// position in this list is the vendor's ranking priority.
	All() []VendorGateway
}
