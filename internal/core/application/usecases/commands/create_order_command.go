package commands

import (
	"errors"

	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/core/domain/model/order"
	"courierhub/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrReferenceIDIsRequired = errors.New("reference id is required")
)

// CreateOrderCommand represents a request to register a new shipment order.
// Carries everything the seller submits: package dimensions, payment terms,
// consignee, product and pickup hub.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	sellerID    kernel.UUID
	referenceID string
	isReverse   bool
	paymentMode order.PaymentMode
	collectable decimal.Decimal
	pkg         order.PackageDetails
	customer    order.CustomerDetails
	seller      order.SellerDetails
	product     order.ProductLine
	hub         order.PickupHub

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order. Every
// detail block is validated; the COD collectable rule is enforced by the
// order aggregate itself.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	sellerID kernel.UUID,
	referenceID string,
	isReverse bool,
	paymentMode order.PaymentMode,
	collectable decimal.Decimal,
	pkg order.PackageDetails,
	customer order.CustomerDetails,
	seller order.SellerDetails,
	product order.ProductLine,
	hub order.PickupHub,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setSellerID(sellerID),
		cmd.setReferenceID(referenceID),
		cmd.setPaymentMode(paymentMode),
		cmd.setPackage(pkg),
		cmd.setCustomer(customer),
		cmd.setSeller(seller),
		cmd.setProduct(product),
		cmd.setHub(hub),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	cmd.isReverse = isReverse
	cmd.collectable = collectable
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID             { return c.orderID }
func (c CreateOrderCommand) SellerID() kernel.UUID            { return c.sellerID }
func (c CreateOrderCommand) ReferenceID() string              { return c.referenceID }
func (c CreateOrderCommand) IsReverse() bool                  { return c.isReverse }
func (c CreateOrderCommand) PaymentMode() order.PaymentMode   { return c.paymentMode }
func (c CreateOrderCommand) Collectable() decimal.Decimal     { return c.collectable }
func (c CreateOrderCommand) Package() order.PackageDetails    { return c.pkg }
func (c CreateOrderCommand) Customer() order.CustomerDetails  { return c.customer }
func (c CreateOrderCommand) Seller() order.SellerDetails      { return c.seller }
func (c CreateOrderCommand) Product() order.ProductLine       { return c.product }
func (c CreateOrderCommand) Hub() order.PickupHub             { return c.hub }

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setSellerID(sellerID kernel.UUID) error {
	if err := sellerID.Validate(); err != nil {
		return err
	}
	c.sellerID = sellerID
	return nil
}

func (c *CreateOrderCommand) setReferenceID(referenceID string) error {
	if referenceID == "" {
		return ErrReferenceIDIsRequired
	}
	c.referenceID = referenceID
	return nil
}

func (c *CreateOrderCommand) setPaymentMode(mode order.PaymentMode) error {
	if err := mode.Validate(); err != nil {
		return err
	}
	c.paymentMode = mode
	return nil
}

func (c *CreateOrderCommand) setPackage(pkg order.PackageDetails) error {
	if err := pkg.Validate(); err != nil {
		return err
	}
	c.pkg = pkg
	return nil
}

func (c *CreateOrderCommand) setCustomer(customer order.CustomerDetails) error {
	if err := customer.Validate(); err != nil {
		return err
	}
	c.customer = customer
	return nil
}

func (c *CreateOrderCommand) setSeller(seller order.SellerDetails) error {
	if err := seller.Validate(); err != nil {
		return err
	}
	c.seller = seller
	return nil
}

func (c *CreateOrderCommand) setProduct(product order.ProductLine) error {
	if err := product.Validate(); err != nil {
		return err
	}
	c.product = product
	return nil
}

func (c *CreateOrderCommand) setHub(hub order.PickupHub) error {
	if err := hub.Validate(); err != nil {
		return err
	}
	c.hub = hub
	return nil
}
