package commands

import (
	"errors"

	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/pkg/guard"
)

var ErrShopRatesCommandIsNotConstructed = errors.New(
	"ShopRatesCommand must be created via NewShopRatesCommand constructor",
)

// ShopRatesCommand requests a fresh rate shopping round for an order: price
// the shipment against every configured vendor and cache the resulting
// quotes for booking.
type ShopRatesCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewShopRatesCommand creates a command to shop rates for an order.
func NewShopRatesCommand(orderID kernel.UUID) (ShopRatesCommand, error) {
	cmd := ShopRatesCommand{guard: guard.NewConstructorGuard()}
	if err := orderID.Validate(); err != nil {
		return ShopRatesCommand{}, err
	}
	cmd.orderID = orderID
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ShopRatesCommand) Validate() error {
	return c.guard.Validate(ErrShopRatesCommandIsNotConstructed)
}

// OrderID returns the order to shop rates for.
func (c ShopRatesCommand) OrderID() kernel.UUID {
	return c.orderID
}
