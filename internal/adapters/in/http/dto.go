package http

import (
	"time"

	"courierhub/internal/core/application/usecases/commands"
	"courierhub/internal/core/application/usecases/queries"
	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/core/domain/model/order"
	"courierhub/internal/core/domain/model/vendor"

	"github.com/shopspring/decimal"
)

// ErrorResponse is the uniform error body returned by every handler.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// PartyRequest is the address block shared by the customer and seller sides
// of an order creation request.
type PartyRequest struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone"`
	Email   string `json:"email" validate:"omitempty,email"`
	GSTIN   string `json:"gstin"`
	Address string `json:"address"`
	Pincode string `json:"pincode" validate:"required,len=6,numeric"`
	City    string `json:"city"`
	State   string `json:"state"`
}

// PackageRequest carries the shipment's physical attributes in kilograms and
// centimetres.
type PackageRequest struct {
	WeightKg string `json:"weight_kg" validate:"required"`
	LengthCm string `json:"length_cm" validate:"required"`
	WidthCm  string `json:"width_cm" validate:"required"`
	HeightCm string `json:"height_cm" validate:"required"`
	BoxCount int    `json:"box_count" validate:"min=1"`
}

// ProductRequest is the single product line of the order.
type ProductRequest struct {
	Name         string `json:"name" validate:"required"`
	Category     string `json:"category"`
	Quantity     int    `json:"quantity" validate:"min=1"`
	TaxableValue string `json:"taxable_value"`
	TaxRate      string `json:"tax_rate"`
}

// HubRequest names the pickup warehouse the shipment leaves from.
type HubRequest struct {
	ID      string `json:"id" validate:"required,uuid"`
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Pincode string `json:"pincode" validate:"required,len=6,numeric"`
	City    string `json:"city"`
	State   string `json:"state"`
}

// CreateOrderRequest is the body of POST /api/orders.
type CreateOrderRequest struct {
	SellerID    string         `json:"seller_id" validate:"required,uuid"`
	ReferenceID string         `json:"reference_id" validate:"required"`
	IsReverse   bool           `json:"is_reverse"`
	PaymentMode string         `json:"payment_mode" validate:"required,oneof=PREPAID COD"`
	Collectable string         `json:"collectable"`
	Package     PackageRequest `json:"package" validate:"required"`
	Customer    PartyRequest   `json:"customer" validate:"required"`
	Seller      PartyRequest   `json:"seller" validate:"required"`
	Product     ProductRequest `json:"product" validate:"required"`
	Hub         HubRequest     `json:"hub" validate:"required"`
}

// toCommand converts a validated request into a creation command with a fresh
// order id.
func (r CreateOrderRequest) toCommand() (commands.CreateOrderCommand, kernel.UUID, error) {
	orderID := kernel.NewUUID()

	sellerID, err := kernel.UUIDFromString(r.SellerID)
	if err != nil {
		return commands.CreateOrderCommand{}, kernel.UUID{}, err
	}
	hubID, err := kernel.UUIDFromString(r.Hub.ID)
	if err != nil {
		return commands.CreateOrderCommand{}, kernel.UUID{}, err
	}

	customerPin, err := kernel.NewPincode(r.Customer.Pincode)
	if err != nil {
		return commands.CreateOrderCommand{}, kernel.UUID{}, err
	}
	sellerPin, err := kernel.NewPincode(r.Seller.Pincode)
	if err != nil {
		return commands.CreateOrderCommand{}, kernel.UUID{}, err
	}
	hubPin, err := kernel.NewPincode(r.Hub.Pincode)
	if err != nil {
		return commands.CreateOrderCommand{}, kernel.UUID{}, err
	}

	weight, err := decimal.NewFromString(r.Package.WeightKg)
	if err != nil {
		return commands.CreateOrderCommand{}, kernel.UUID{}, err
	}
	length, err := decimal.NewFromString(r.Package.LengthCm)
	if err != nil {
		return commands.CreateOrderCommand{}, kernel.UUID{}, err
	}
	width, err := decimal.NewFromString(r.Package.WidthCm)
	if err != nil {
		return commands.CreateOrderCommand{}, kernel.UUID{}, err
	}
	height, err := decimal.NewFromString(r.Package.HeightCm)
	if err != nil {
		return commands.CreateOrderCommand{}, kernel.UUID{}, err
	}

	paymentMode := order.PaymentPrepaid
	if r.PaymentMode == "COD" {
		paymentMode = order.PaymentCOD
	}

	collectable := decimal.Zero
	if r.Collectable != "" {
		collectable, err = decimal.NewFromString(r.Collectable)
		if err != nil {
			return commands.CreateOrderCommand{}, kernel.UUID{}, err
		}
	}

	taxableValue := decimal.Zero
	if r.Product.TaxableValue != "" {
		taxableValue, err = decimal.NewFromString(r.Product.TaxableValue)
		if err != nil {
			return commands.CreateOrderCommand{}, kernel.UUID{}, err
		}
	}
	taxRate := decimal.Zero
	if r.Product.TaxRate != "" {
		taxRate, err = decimal.NewFromString(r.Product.TaxRate)
		if err != nil {
			return commands.CreateOrderCommand{}, kernel.UUID{}, err
		}
	}

	cmd, err := commands.NewCreateOrderCommand(
		orderID,
		sellerID,
		r.ReferenceID,
		r.IsReverse,
		paymentMode,
		collectable,
		order.PackageDetails{
			WeightKg: weight,
			LengthCm: length,
			WidthCm:  width,
			HeightCm: height,
			BoxCount: r.Package.BoxCount,
		},
		order.CustomerDetails{
			Name:    r.Customer.Name,
			Phone:   r.Customer.Phone,
			Email:   r.Customer.Email,
			Address: r.Customer.Address,
			Pincode: customerPin,
			City:    r.Customer.City,
			State:   r.Customer.State,
		},
		order.SellerDetails{
			Name:    r.Seller.Name,
			GSTIN:   r.Seller.GSTIN,
			Address: r.Seller.Address,
			Pincode: sellerPin,
			City:    r.Seller.City,
			State:   r.Seller.State,
			Phone:   r.Seller.Phone,
		},
		order.ProductLine{
			Name:         r.Product.Name,
			Category:     r.Product.Category,
			Quantity:     r.Product.Quantity,
			TaxableValue: taxableValue,
			TaxRate:      taxRate,
		},
		order.PickupHub{
			ID:      hubID,
			Name:    r.Hub.Name,
			Phone:   r.Hub.Phone,
			Address: r.Hub.Address,
			Pincode: hubPin,
			City:    r.Hub.City,
			State:   r.Hub.State,
		},
	)
	if err != nil {
		return commands.CreateOrderCommand{}, kernel.UUID{}, err
	}
	return cmd, orderID, nil
}

// CreateOrderResponse returns the id assigned to a newly created order.
type CreateOrderResponse struct {
	ID string `json:"id"`
}

// BookVendorRequest is the body of POST /api/orders/:id/book.
type BookVendorRequest struct {
	VendorID string `json:"vendor_id" validate:"required"`
	QuoteID  string `json:"quote_id" validate:"required,uuid"`
}

// WebhookRequest is the body of POST /api/webhooks/vendor/:vendor. At is an
// RFC 3339 timestamp; a missing value defaults to the ingestion time.
type WebhookRequest struct {
	AWB   string `json:"awb" validate:"required"`
	Stage string `json:"stage" validate:"required"`
	At    string `json:"at"`
	Note  string `json:"note"`
}

// QuoteResponse is one ranked rate in GET /api/orders/:id/rates.
type QuoteResponse struct {
	QuoteID         string `json:"quote_id"`
	VendorID        string `json:"vendor_id"`
	VendorName      string `json:"vendor_name"`
	Zone            string `json:"zone"`
	Freight         string `json:"freight"`
	CODFee          string `json:"cod_fee"`
	Total           string `json:"total"`
	TransitEstimate string `json:"transit_estimate"`
	ValidUntil      string `json:"valid_until"`
}

func quoteResponses(quotes []vendor.Quote) []QuoteResponse {
	out := make([]QuoteResponse, len(quotes))
	for i, q := range quotes {
		out[i] = QuoteResponse{
			QuoteID:         q.ID.String(),
			VendorID:        q.VendorID,
			VendorName:      q.VendorName,
			Zone:            q.Zone.String(),
			Freight:         q.Charge.Freight.String(),
			CODFee:          q.Charge.CODFee.String(),
			Total:           q.Charge.Total.String(),
			TransitEstimate: q.TransitEstimate,
			ValidUntil:      q.ValidUntil.UTC().Format(time.RFC3339),
		}
	}
	return out
}

// BookingResponse is the confirmed shipment returned by the book endpoint.
type BookingResponse struct {
	VendorID         string `json:"vendor_id"`
	VendorOrderID    string `json:"vendor_order_id"`
	VendorShipmentID string `json:"vendor_shipment_id"`
	AWB              string `json:"awb"`
	BookedAt         string `json:"booked_at"`
}

// OrderSummaryResponse is one row of GET /api/orders.
type OrderSummaryResponse struct {
	ID          string `json:"id"`
	ReferenceID string `json:"reference_id"`
	IsReverse   bool   `json:"is_reverse"`
	Bucket      string `json:"bucket"`
	PaymentMode string `json:"payment_mode"`
	Collectable string `json:"collectable"`
	VendorID    string `json:"vendor_id,omitempty"`
	AWB         string `json:"awb,omitempty"`
	CreatedAt   string `json:"created_at"`
}

func orderSummaries(rows []queries.GetOrdersQueryResponse) []OrderSummaryResponse {
	out := make([]OrderSummaryResponse, len(rows))
	for i, row := range rows {
		out[i] = OrderSummaryResponse{
			ID:          row.ID.String(),
			ReferenceID: row.ReferenceID,
			IsReverse:   row.IsReverse,
			Bucket:      row.Bucket,
			PaymentMode: row.PaymentMode,
			Collectable: row.Collectable.String(),
			VendorID:    row.VendorID,
			AWB:         row.AWB,
			CreatedAt:   row.CreatedAt.UTC().Format(time.RFC3339),
		}
	}
	return out
}

// StageResponse is one lifecycle history entry of an order detail.
type StageResponse struct {
	Bucket string `json:"bucket"`
	At     string `json:"at"`
	Action string `json:"action"`
}

// OrderDetailResponse is the body of GET /api/orders/:id.
type OrderDetailResponse struct {
	ID              string          `json:"id"`
	SellerID        string          `json:"seller_id"`
	ReferenceID     string          `json:"reference_id"`
	IsReverse       bool            `json:"is_reverse"`
	Bucket          string          `json:"bucket"`
	PaymentMode     string          `json:"payment_mode"`
	Collectable     string          `json:"collectable"`
	WeightKg        string          `json:"weight_kg"`
	CustomerName    string          `json:"customer_name"`
	CustomerPincode string          `json:"customer_pincode"`
	CustomerCity    string          `json:"customer_city"`
	HubPincode      string          `json:"hub_pincode"`
	VendorID        string          `json:"vendor_id,omitempty"`
	AWB             string          `json:"awb,omitempty"`
	CreatedAt       string          `json:"created_at"`
	Stages          []StageResponse `json:"stages"`
}

func orderDetail(row queries.GetOrderQueryResponse) OrderDetailResponse {
	stages := make([]StageResponse, len(row.Stages))
	for i, s := range row.Stages {
		stages[i] = StageResponse{
			Bucket: s.Bucket,
			At:     s.At.UTC().Format(time.RFC3339),
			Action: s.Action,
		}
	}
	return OrderDetailResponse{
		ID:              row.ID.String(),
		SellerID:        row.SellerID.String(),
		ReferenceID:     row.ReferenceID,
		IsReverse:       row.IsReverse,
		Bucket:          row.Bucket,
		PaymentMode:     row.PaymentMode,
		Collectable:     row.Collectable.String(),
		WeightKg:        row.WeightKg.String(),
		CustomerName:    row.CustomerName,
		CustomerPincode: row.CustomerPincode,
		CustomerCity:    row.CustomerCity,
		HubPincode:      row.HubPincode,
		VendorID:        row.VendorID,
		AWB:             row.AWB,
		CreatedAt:       row.CreatedAt.UTC().Format(time.RFC3339),
		Stages:          stages,
	}
}
