package commands

import (
	"errors"

	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/pkg/guard"
)

var (
	ErrBookVendorCommandIsNotConstructed = errors.New(
		"BookVendorCommand must be created via NewBookVendorCommand constructor",
	)
	ErrVendorIDIsRequired = errors.New("vendor id is required")
)

// BookVendorCommand requests booking an order with a chosen vendor against a
// quote from the latest rate shopping round.
type BookVendorCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	vendorID string
	quoteID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewBookVendorCommand creates a command to book an order with a vendor.
func NewBookVendorCommand(orderID kernel.UUID, vendorID string, quoteID kernel.UUID) (BookVendorCommand, error) {
	cmd := BookVendorCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setVendorID(vendorID),
		cmd.setQuoteID(quoteID),
	); err != nil {
		return BookVendorCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c BookVendorCommand) Validate() error {
	return c.guard.Validate(ErrBookVendorCommandIsNotConstructed)
}

func (c BookVendorCommand) OrderID() kernel.UUID { return c.orderID }
func (c BookVendorCommand) VendorID() string     { return c.vendorID }
func (c BookVendorCommand) QuoteID() kernel.UUID { return c.quoteID }

func (c *BookVendorCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *BookVendorCommand) setVendorID(vendorID string) error {
	if vendorID == "" {
		return ErrVendorIDIsRequired
	}
	c.vendorID = vendorID
	return nil
}

func (c *BookVendorCommand) setQuoteID(quoteID kernel.UUID) error {
	if err := quoteID.Validate(); err != nil {
		return err
	}
	c.quoteID = quoteID
	return nil
}
