// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The stage history lives in the order_stages child table; everything else,
// including the address and booking snapshots, is flattened into the orders
// table with column prefixes.
type OrderDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	SellerID       uuid.UUID `gorm:"type:uuid;not null;index"`
	ReferenceID    string    `gorm:"type:varchar(64);not null"`
	ChannelName    string    `gorm:"type:varchar(32);index:idx_orders_channel_ref"`
	ChannelOrderID string    `gorm:"type:varchar(64);index:idx_orders_channel_ref"`
	IsReverse      bool      `gorm:"not null"`
	Bucket         int       `gorm:"not null;index"`
	PaymentMode    int       `gorm:"not null"`
	Collectable    decimal.Decimal `gorm:"type:numeric(12,2)"`

	WeightKg decimal.Decimal `gorm:"type:numeric(8,3)"`
	LengthCm decimal.Decimal `gorm:"type:numeric(8,2)"`
	WidthCm  decimal.Decimal `gorm:"type:numeric(8,2)"`
	HeightCm decimal.Decimal `gorm:"type:numeric(8,2)"`
	BoxCount int             `gorm:"not null"`

	Customer PartyDTO   `gorm:"embedded;embeddedPrefix:customer_"`
	Seller   PartyDTO   `gorm:"embedded;embeddedPrefix:seller_"`
	Product  ProductDTO `gorm:"embedded;embeddedPrefix:product_"`
	Hub      HubDTO     `gorm:"embedded;embeddedPrefix:hub_"`
	Booking  BookingDTO `gorm:"embedded;embeddedPrefix:booking_"`

	Version   int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`

	Stages []StageDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// PartyDTO is the flattened address block shared by the customer and seller
// snapshots.
type PartyDTO struct {
	Name    string `gorm:"type:varchar(255)"`
	Phone   string `gorm:"type:varchar(20)"`
	Email   string `gorm:"type:varchar(255)"`
	GSTIN   string `gorm:"type:varchar(20)"`
	Address string `gorm:"type:varchar(512)"`
	Pincode string `gorm:"type:varchar(6)"`
	City    string `gorm:"type:varchar(128)"`
	State   string `gorm:"type:varchar(128)"`
}

// ProductDTO is the flattened product line snapshot.
type ProductDTO struct {
	Name         string          `gorm:"type:varchar(255)"`
	Category     string          `gorm:"type:varchar(64)"`
	Quantity     int
	TaxableValue decimal.Decimal `gorm:"type:numeric(12,2)"`
	TaxRate      decimal.Decimal `gorm:"type:numeric(5,2)"`
}

// HubDTO is the flattened pickup hub snapshot.
type HubDTO struct {
	ID      *uuid.UUID `gorm:"type:uuid"`
	Name    string     `gorm:"type:varchar(255)"`
	Phone   string     `gorm:"type:varchar(20)"`
	Address string     `gorm:"type:varchar(512)"`
	Pincode string     `gorm:"type:varchar(6)"`
	City    string     `gorm:"type:varchar(128)"`
	State   string     `gorm:"type:varchar(128)"`
}

// BookingDTO is the flattened vendor booking. An order without a booking has
// an empty vendor id and a null booked_at.
type BookingDTO struct {
	VendorID   string     `gorm:"type:varchar(32);index"`
	OrderID    string     `gorm:"type:varchar(64)"`
	ShipmentID string     `gorm:"type:varchar(64)"`
	AWB        string     `gorm:"type:varchar(64);index"`
	BookedAt   *time.Time
}

// StageDTO is one lifecycle history entry. Seq preserves the append order of
// the history; (order_id, seq) is the primary key so replayed saves cannot
// duplicate entries.
type StageDTO struct {
	OrderID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq     int       `gorm:"primaryKey"`
	Bucket  int       `gorm:"not null"`
	At      time.Time `gorm:"not null"`
	Action  string    `gorm:"type:varchar(255)"`
}

// TableName specifies the database table name for stage history entries.
func (StageDTO) TableName() string {
	return "order_stages"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	id := aggregate.ID().Bytes()
	channelName, channelOrderID := aggregate.Channel()

	stages := aggregate.Stages()
	stageDTOs := make([]StageDTO, 0, len(stages))
	for i, s := range stages {
		stageDTOs = append(stageDTOs, StageDTO{
			OrderID: id,
			Seq:     i,
			Bucket:  int(s.Bucket()),
			At:      s.At(),
			Action:  s.Action(),
		})
	}

	var booking BookingDTO
	if b := aggregate.Booking(); b != nil {
		bookedAt := b.BookedAt
		booking = BookingDTO{
			VendorID:   b.VendorID,
			OrderID:    b.VendorOrderID,
			ShipmentID: b.VendorShipmentID,
			AWB:        b.AWB,
			BookedAt:   &bookedAt,
		}
	}

	customer := aggregate.Customer()
	seller := aggregate.Seller()
	product := aggregate.Product()
	hub := aggregate.Hub()
	hubID := hub.ID.Bytes()
	pkg := aggregate.Package()

	return OrderDTO{
		ID:             id,
		SellerID:       aggregate.SellerID().Bytes(),
		ReferenceID:    aggregate.ReferenceID(),
		ChannelName:    channelName,
		ChannelOrderID: channelOrderID,
		IsReverse:      aggregate.IsReverse(),
		Bucket:         int(aggregate.Bucket()),
		PaymentMode:    int(aggregate.PaymentMode()),
		Collectable:    aggregate.Collectable(),
		WeightKg:       pkg.WeightKg,
		LengthCm:       pkg.LengthCm,
		WidthCm:        pkg.WidthCm,
		HeightCm:       pkg.HeightCm,
		BoxCount:       pkg.BoxCount,
		Customer: PartyDTO{
			Name:    customer.Name,
			Phone:   customer.Phone,
			Email:   customer.Email,
			Address: customer.Address,
			Pincode: customer.Pincode.String(),
			City:    customer.City,
			State:   customer.State,
		},
		Seller: PartyDTO{
			Name:    seller.Name,
			Phone:   seller.Phone,
			GSTIN:   seller.GSTIN,
			Address: seller.Address,
			Pincode: seller.Pincode.String(),
			City:    seller.City,
			State:   seller.State,
		},
		Product: ProductDTO{
			Name:         product.Name,
			Category:     product.Category,
			Quantity:     product.Quantity,
			TaxableValue: product.TaxableValue,
			TaxRate:      product.TaxRate,
		},
		Hub: HubDTO{
			ID:      &hubID,
			Name:    hub.Name,
			Phone:   hub.Phone,
			Address: hub.Address,
			Pincode: hub.Pincode.String(),
			City:    hub.City,
			State:   hub.State,
		},
		Booking:   booking,
		Version:   aggregate.Version(),
		CreatedAt: stages[0].At(),
		Stages:    stageDTOs,
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including its history using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	sellerID, err := kernel.UUIDFromBytes(dto.SellerID[:])
	if err != nil {
		return nil, err
	}

	customerPincode, err := kernel.NewPincode(dto.Customer.Pincode)
	if err != nil {
		return nil, err
	}
	sellerPincode, err := kernel.NewPincode(dto.Seller.Pincode)
	if err != nil {
		return nil, err
	}
	hubPincode, err := kernel.NewPincode(dto.Hub.Pincode)
	if err != nil {
		return nil, err
	}

	var hubID kernel.UUID
	if dto.Hub.ID != nil {
		hubID, err = kernel.UUIDFromBytes((*dto.Hub.ID)[:])
		if err != nil {
			return nil, err
		}
	}

	stages := make([]order.Stage, 0, len(dto.Stages))
	for _, s := range dto.Stages {
		stage, stageErr := order.NewStage(order.Bucket(s.Bucket), s.At, s.Action)
		if stageErr != nil {
			return nil, stageErr
		}
		stages = append(stages, stage)
	}

	var booking *order.Booking
	if dto.Booking.VendorID != "" && dto.Booking.BookedAt != nil {
		booking = &order.Booking{
			VendorID:         dto.Booking.VendorID,
			VendorOrderID:    dto.Booking.OrderID,
			VendorShipmentID: dto.Booking.ShipmentID,
			AWB:              dto.Booking.AWB,
			BookedAt:         *dto.Booking.BookedAt,
		}
	}

	return order.RestoreOrder(
		id,
		sellerID,
		dto.ReferenceID,
		dto.ChannelName,
		dto.ChannelOrderID,
		dto.IsReverse,
		order.Bucket(dto.Bucket),
		stages,
		order.PackageDetails{
			WeightKg: dto.WeightKg,
			LengthCm: dto.LengthCm,
			WidthCm:  dto.WidthCm,
			HeightCm: dto.HeightCm,
			BoxCount: dto.BoxCount,
		},
		order.PaymentMode(dto.PaymentMode),
		dto.Collectable,
		order.CustomerDetails{
			Name:    dto.Customer.Name,
			Phone:   dto.Customer.Phone,
			Email:   dto.Customer.Email,
			Address: dto.Customer.Address,
			Pincode: customerPincode,
			City:    dto.Customer.City,
			State:   dto.Customer.State,
		},
		order.SellerDetails{
			Name:    dto.Seller.Name,
			GSTIN:   dto.Seller.GSTIN,
			Address: dto.Seller.Address,
			Pincode: sellerPincode,
			City:    dto.Seller.City,
			State:   dto.Seller.State,
			Phone:   dto.Seller.Phone,
		},
		order.ProductLine{
			Name:         dto.Product.Name,
			Category:     dto.Product.Category,
			Quantity:     dto.Product.Quantity,
			TaxableValue: dto.Product.TaxableValue,
			TaxRate:      dto.Product.TaxRate,
		},
		order.PickupHub{
			ID:      hubID,
			Name:    dto.Hub.Name,
			Phone:   dto.Hub.Phone,
			Address: dto.Hub.Address,
			Pincode: hubPincode,
			City:    dto.Hub.City,
			State:   dto.Hub.State,
		},
		booking,
		dto.Version,
	)
}
