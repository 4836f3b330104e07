package commands_test

import (
	"context"
	"testing"
	"time"

	"courierhub/internal/core/application/usecases/commands"
	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/core/domain/model/order"
	"courierhub/internal/core/domain/model/pricing"
	"courierhub/internal/core/domain/model/vendor"
	"courierhub/internal/core/ports"
	"courierhub/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockQuoteCache struct{ mock.Mock }

func (m *MockQuoteCache) Put(ctx context.Context, orderID kernel.UUID, quotes []vendor.Quote) error {
	args := m.Called(ctx, orderID, quotes)
	return args.Error(0)
}
func (m *MockQuoteCache) Get(ctx context.Context, orderID, quoteID kernel.UUID) (vendor.Quote, error) {
	args := m.Called(ctx, orderID, quoteID)
	return args.Get(0).(vendor.Quote), args.Error(1)
}

type MockVendorGateway struct{ mock.Mock }

func (m *MockVendorGateway) VendorID() string {
	return m.Called().String(0)
}
func (m *MockVendorGateway) Name() string {
	return m.Called().String(0)
}
func (m *MockVendorGateway) Supports(capability vendor.Capability) bool {
	return m.Called(capability).Bool(0)
}
func (m *MockVendorGateway) RefreshSession(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
func (m *MockVendorGateway) CreateShipment(ctx context.Context, o *order.Order) (order.Booking, error) {
	args := m.Called(ctx, o)
	return args.Get(0).(order.Booking), args.Error(1)
}
func (m *MockVendorGateway) CreateReturnShipment(ctx context.Context, o *order.Order) (order.Booking, error) {
	args := m.Called(ctx, o)
	return args.Get(0).(order.Booking), args.Error(1)
}
func (m *MockVendorGateway) CancelShipment(ctx context.Context, awb string) error {
	return m.Called(ctx, awb).Error(0)
}

type MockVendorGatewayPool struct{ mock.Mock }

func (m *MockVendorGatewayPool) Get(vendorID string) (ports.VendorGateway, error) {
	args := m.Called(vendorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(ports.VendorGateway), args.Error(1)
}
func (m *MockVendorGatewayPool) All() []ports.VendorGateway {
	return m.Called().Get(0).([]ports.VendorGateway)
}

func usableQuote(orderVendor string) vendor.Quote {
	return vendor.Quote{
		ID:         kernel.NewUUID(),
		VendorID:   orderVendor,
		VendorName: "SwiftShip",
		Charge: pricing.Charge{
			Freight: decimal.NewFromInt(80),
			CODFee:  decimal.NewFromInt(25),
			Total:   decimal.NewFromInt(105),
		},
		Zone:       pricing.WithinZone,
		ValidUntil: time.Now().Add(10 * time.Minute),
	}
}

func TestBookVendorCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	aggregate := testOrder(t)
	quote := usableQuote("swiftship")
	cmd, err := commands.NewBookVendorCommand(aggregate.ID(), "swiftship", quote.ID)
	require.NoError(t, err)

	booking := order.Booking{
		VendorID:         "swiftship",
		VendorOrderID:    "SW-100",
		VendorShipmentID: "SH-200",
		AWB:              "AWB123",
		BookedAt:         time.Now().UTC(),
	}

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	cache := new(MockQuoteCache)
	gateway := new(MockVendorGateway)
	pool := new(MockVendorGatewayPool)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Twice()
	repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()
	cache.On("Get", mock.Anything, aggregate.ID(), quote.ID).Return(quote, nil).Once()
	pool.On("Get", "swiftship").Return(gateway, nil).Once()
	gateway.On("Supports", vendor.CreateShipment).Return(true).Once()
	gateway.On("Name").Return("SwiftShip").Once()
	gateway.On("VendorID").Return("swiftship").Maybe()
	gateway.On("CreateShipment", mock.Anything, aggregate).Return(booking, nil).Once()
	repo.On("Update", mock.Anything, aggregate).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewBookVendorCommandHandler(factory, pool, cache)
	got, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, booking, got)
	assert.Equal(t, order.ReadyToShip, aggregate.Bucket())
	require.NotNil(t, aggregate.Booking())
	assert.Equal(t, "AWB123", aggregate.Booking().AWB)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	gateway.AssertExpectations(t)
}

func TestBookVendorCommandHandler_Handle_IdempotentRebooking(t *testing.T) {
	ctx := t.Context()
	aggregate := testOrder(t)
	existing := order.Booking{
		VendorID:      "swiftship",
		VendorOrderID: "SW-100",
		AWB:           "AWB123",
		BookedAt:      time.Now().UTC(),
	}
	_, err := aggregate.RecordBooking(existing)
	require.NoError(t, err)

	cmd, err := commands.NewBookVendorCommand(aggregate.ID(), "swiftship", kernel.NewUUID())
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	cache := new(MockQuoteCache)
	pool := new(MockVendorGatewayPool)

	h := commands.NewBookVendorCommandHandler(factory, pool, cache)
	got, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, existing, got)
	cache.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything)
	pool.AssertNotCalled(t, "Get", mock.Anything)
}

func TestBookVendorCommandHandler_Handle_RebookingDifferentVendor(t *testing.T) {
	ctx := t.Context()
	aggregate := testOrder(t)
	_, err := aggregate.RecordBooking(order.Booking{
		VendorID:      "swiftship",
		VendorOrderID: "SW-100",
		AWB:           "AWB123",
		BookedAt:      time.Now().UTC(),
	})
	require.NoError(t, err)

	cmd, err := commands.NewBookVendorCommand(aggregate.ID(), "bluedash", kernel.NewUUID())
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewBookVendorCommandHandler(factory, new(MockVendorGatewayPool), new(MockQuoteCache))
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestBookVendorCommandHandler_Handle_ExpiredQuote(t *testing.T) {
	ctx := t.Context()
	aggregate := testOrder(t)
	quote := usableQuote("swiftship")
	quote.ValidUntil = time.Now().Add(-time.Minute)

	cmd, err := commands.NewBookVendorCommand(aggregate.ID(), "swiftship", quote.ID)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	cache := new(MockQuoteCache)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()
	cache.On("Get", mock.Anything, aggregate.ID(), quote.ID).Return(quote, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewBookVendorCommandHandler(factory, new(MockVendorGatewayPool), cache)
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.Nil(t, aggregate.Booking())
}

func TestBookVendorCommandHandler_Handle_ReverseUnsupported(t *testing.T) {
	ctx := t.Context()
	aggregate, err := order.NewOrder(
		kernel.NewUUID(),
		kernel.NewUUID(),
		"REF-2001",
		true,
		testPackage(),
		order.PaymentPrepaid,
		decimal.Zero,
		testCustomer(t),
		testSeller(t),
		testProduct(),
		testHub(t),
		time.Now().UTC(),
	)
	require.NoError(t, err)

	quote := usableQuote("quickquote")
	cmd, err := commands.NewBookVendorCommand(aggregate.ID(), "quickquote", quote.ID)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	cache := new(MockQuoteCache)
	gateway := new(MockVendorGateway)
	pool := new(MockVendorGatewayPool)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()
	cache.On("Get", mock.Anything, aggregate.ID(), quote.ID).Return(quote, nil).Once()
	pool.On("Get", "quickquote").Return(gateway, nil).Once()
	gateway.On("Supports", vendor.CreateReturnShipment).Return(false).Once()
	gateway.On("VendorID").Return("quickquote").Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewBookVendorCommandHandler(factory, pool, cache)
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrCapabilityUnsupported)
	gateway.AssertNotCalled(t, "CreateReturnShipment", mock.Anything, mock.Anything)
}
