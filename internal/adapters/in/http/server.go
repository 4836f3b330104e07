// Package http exposes the seller-facing REST API and the vendor webhook
// endpoint over echo.
package http

import (
	"errors"
	"net/http"
	"time"

	"courierhub/internal/core/application/usecases/commands"
	"courierhub/internal/core/application/usecases/queries"
	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/core/domain/model/order"
	"courierhub/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Server wires the HTTP endpoints to the application use cases.
type Server struct {
	// Command handlers
	createOrderHandler commands.CreateOrderCommandHandler
	shopRatesHandler   commands.ShopRatesCommandHandler
	bookVendorHandler  commands.BookVendorCommandHandler
	statusEventHandler commands.ApplyStatusEventCommandHandler

	// Query handlers
	getOrdersHandler queries.GetOrdersQueryHandler
	getOrderHandler  queries.GetOrderQueryHandler

	validate *validator.Validate
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	shopRatesHandler commands.ShopRatesCommandHandler,
	bookVendorHandler commands.BookVendorCommandHandler,
	statusEventHandler commands.ApplyStatusEventCommandHandler,
	getOrdersHandler queries.GetOrdersQueryHandler,
	getOrderHandler queries.GetOrderQueryHandler,
) *Server {
	return &Server{
		createOrderHandler: createOrderHandler,
		shopRatesHandler:   shopRatesHandler,
		bookVendorHandler:  bookVendorHandler,
		statusEventHandler: statusEventHandler,
		getOrdersHandler:   getOrdersHandler,
		getOrderHandler:    getOrderHandler,
		validate:           validator.New(),
	}
}

// RegisterRoutes attaches every endpoint to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/orders", s.CreateOrder)
	e.GET("/api/orders", s.GetOrders)
	e.GET("/api/orders/:id", s.GetOrder)
	e.GET("/api/orders/:id/rates", s.ShopRates)
	e.POST("/api/orders/:id/book", s.BookVendor)
	e.POST("/api/webhooks/vendor/:vendor", s.VendorWebhook)
}

// CreateOrder handles POST /api/orders - registers a new shipment order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	if err := s.validate.Struct(req); err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	cmd, orderID, err := req.toCommand()
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if handleErr := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, CreateOrderResponse{ID: orderID.String()})
}

// ShopRates handles GET /api/orders/:id/rates - runs a rate shopping round
// and returns the ranked quotes.
func (s *Server) ShopRates(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewShopRatesCommand(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	quotes, err := s.shopRatesHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, quoteResponses(quotes))
}

// BookVendor handles POST /api/orders/:id/book - books the shipment with the
// chosen vendor against a previously shopped quote.
func (s *Server) BookVendor(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req BookVendorRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	if err = s.validate.Struct(req); err != nil {
		return badRequest(ctx, "Invalid booking data: "+err.Error())
	}

	quoteID, err := kernel.UUIDFromString(req.QuoteID)
	if err != nil {
		return badRequest(ctx, "Invalid quote id")
	}

	cmd, err := commands.NewBookVendorCommand(orderID, req.VendorID, quoteID)
	if err != nil {
		return badRequest(ctx, "Invalid booking data: "+err.Error())
	}

	booking, err := s.bookVendorHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, BookingResponse{
		VendorID:         booking.VendorID,
		VendorOrderID:    booking.VendorOrderID,
		VendorShipmentID: booking.VendorShipmentID,
		AWB:              booking.AWB,
		BookedAt:         booking.BookedAt.UTC().Format(time.RFC3339),
	})
}

// VendorWebhook handles POST /api/webhooks/vendor/:vendor - ingests one
// tracking event pushed by a courier vendor.
func (s *Server) VendorWebhook(ctx echo.Context) error {
	vendorID := ctx.Param("vendor")

	var req WebhookRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	if err := s.validate.Struct(req); err != nil {
		return badRequest(ctx, "Invalid event data: "+err.Error())
	}

	stage, err := order.BucketFromCode(req.Stage)
	if err != nil {
		return badRequest(ctx, "Unknown stage code: "+req.Stage)
	}

	at := time.Now().UTC()
	if req.At != "" {
		at, err = time.Parse(time.RFC3339, req.At)
		if err != nil {
			return badRequest(ctx, "Invalid event time: "+req.At)
		}
	}

	cmd, err := commands.NewApplyStatusEventCommand(vendorID, req.AWB, stage, at, req.Note)
	if err != nil {
		return badRequest(ctx, "Invalid event data: "+err.Error())
	}

	if handleErr := s.statusEventHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusOK)
}

// GetOrders handles GET /api/orders - lists a seller's orders, optionally
// narrowed to one bucket group.
func (s *Server) GetOrders(ctx echo.Context) error {
	sellerID, err := kernel.UUIDFromString(ctx.QueryParam("seller_id"))
	if err != nil {
		return badRequest(ctx, "Invalid seller id")
	}

	query, err := queries.NewGetOrdersQuery(sellerID, ctx.QueryParam("group"))
	if err != nil {
		return writeError(ctx, err)
	}

	orders, err := s.getOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderSummaries(orders))
}

// GetOrder handles GET /api/orders/:id - retrieves one order with its stage
// history.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	detail, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderDetail(detail))
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// writeError maps a use case error onto an HTTP status.
func writeError(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrInvalidTransition),
		errors.Is(err, errs.ErrVersionIsInvalid):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrVendorUnavailable):
		status = http.StatusBadGateway
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrUnknownPincode):
		status = http.StatusBadRequest
	}

	return ctx.JSON(status, ErrorResponse{
		Code:    status,
		Message: err.Error(),
	})
}
