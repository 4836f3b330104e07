package commands

import (
	"context"
	"time"

	"courierhub/internal/core/domain/model/order"
	"courierhub/internal/core/domain/model/vendor"
	"courierhub/internal/core/ports"
	"courierhub/internal/pkg/errs"
)

// BookVendorCommandHandler books an order with the seller's chosen vendor.
//
// The quote must come from the order's latest shopping round and still be
// inside its validity window. Booking is idempotent: re-booking an already
// booked order with the same vendor returns the stored booking, a different
// vendor is rejected. A successful forward booking moves the order to
// READY_TO_SHIP; reverse orders advance only when the vendor reports the
// pickup.
type BookVendorCommandHandler struct {
	uowFactory OrderUoWFactory
	pool       ports.VendorGatewayPool
	quoteCache ports.QuoteCache
}

// NewBookVendorCommandHandler creates a handler for vendor booking.
func NewBookVendorCommandHandler(
	uowFactory OrderUoWFactory,
	pool ports.VendorGatewayPool,
	quoteCache ports.QuoteCache,
) BookVendorCommandHandler {
	return BookVendorCommandHandler{
		uowFactory: uowFactory,
		pool:       pool,
		quoteCache: quoteCache,
	}
}

// Handle books the order and returns the booking record.
func (h *BookVendorCommandHandler) Handle(ctx context.Context, cmd BookVendorCommand) (order.Booking, error) {
	if err := cmd.Validate(); err != nil {
		return order.Booking{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return order.Booking{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return order.Booking{}, err
	}

	if existing := aggregate.Booking(); existing != nil {
		if existing.VendorID != cmd.VendorID() {
			return order.Booking{}, errs.NewValueIsInvalidError("vendorID")
		}
		return *existing, nil
	}

	quote, err := h.quoteCache.Get(ctx, cmd.OrderID(), cmd.QuoteID())
	if err != nil {
		return order.Booking{}, err
	}
	now := time.Now().UTC()
	if quote.VendorID != cmd.VendorID() || !quote.Usable(now) {
		return order.Booking{}, errs.NewObjectNotFoundError("quoteID", cmd.QuoteID().String())
	}

	gateway, err := h.pool.Get(cmd.VendorID())
	if err != nil {
		return order.Booking{}, err
	}

	booking, err := h.createShipment(ctx, gateway, aggregate)
	if err != nil {
		return order.Booking{}, err
	}

	recorded, err := aggregate.RecordBooking(booking)
	if err != nil {
		return order.Booking{}, err
	}

	// Reverse orders stay in RETURN_CONFIRMED until the vendor reports the
	// pickup; only forward orders advance on booking.
	if !aggregate.IsReverse() {
		if err = aggregate.ApplyEvent(order.ReadyToShip, now, "Shipment booked with "+gateway.Name()); err != nil {
			return order.Booking{}, err
		}
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return order.Booking{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return order.Booking{}, err
	}

	return recorded, nil
}

func (h *BookVendorCommandHandler) createShipment(
	ctx context.Context,
	gateway ports.VendorGateway,
	aggregate *order.Order,
) (order.Booking, error) {
	if aggregate.IsReverse() {
		if !gateway.Supports(vendor.CreateReturnShipment) {
			return order.Booking{}, errs.NewCapabilityUnsupportedError(
				gateway.VendorID(), vendor.CreateReturnShipment.String())
		}
		return gateway.CreateReturnShipment(ctx, aggregate)
	}
	if !gateway.Supports(vendor.CreateShipment) {
		return order.Booking{}, errs.NewCapabilityUnsupportedError(
			gateway.VendorID(), vendor.CreateShipment.String())
	}
	return gateway.CreateShipment(ctx, aggregate)
}
