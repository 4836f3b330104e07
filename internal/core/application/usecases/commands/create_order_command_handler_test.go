package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"courierhub/internal/core/application/usecases/commands"
	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/core/domain/model/order"
	"courierhub/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}
func (m *MockOrderRepository) GetByAWB(ctx context.Context, vendorID, awb string) (*order.Order, error) {
	args := m.Called(ctx, vendorID, awb)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}
func (m *MockOrderRepository) GetBySellerAndBuckets(
	ctx context.Context, sellerID kernel.UUID, buckets []order.Bucket,
) ([]*order.Order, error) {
	args := m.Called(ctx, sellerID, buckets)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}
func (m *MockOrderRepository) GetDeliveredCODOn(ctx context.Context, day time.Time) ([]*order.Order, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}
func (m *MockOrderRepository) ExistsByChannelRef(ctx context.Context, channelName, channelOrderID string) (bool, error) {
	args := m.Called(ctx, channelName, channelOrderID)
	return args.Bool(0), args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

func mustPincode(t *testing.T, value string) kernel.Pincode {
	t.Helper()
	p, err := kernel.NewPincode(value)
	require.NoError(t, err)
	return p
}

func testCustomer(t *testing.T) order.CustomerDetails {
	t.Helper()
	return order.CustomerDetails{
		Name:    "Asha Rao",
		Phone:   "9876543210",
		Address: "14 MG Road",
		Pincode: mustPincode(t, "560001"),
		City:    "Bengaluru",
		State:   "Karnataka",
	}
}

func testSeller(t *testing.T) order.SellerDetails {
	t.Helper()
	return order.SellerDetails{
		Name:    "Acme Retail",
		Address: "7 Industrial Estate",
		Pincode: mustPincode(t, "110001"),
		City:    "New Delhi",
		State:   "Delhi",
		Phone:   "9812345678",
	}
}

func testPackage() order.PackageDetails {
	return order.PackageDetails{
		WeightKg: decimal.NewFromFloat(2.4),
		LengthCm: decimal.NewFromInt(30),
		WidthCm:  decimal.NewFromInt(20),
		HeightCm: decimal.NewFromInt(10),
		BoxCount: 1,
	}
}

func testProduct() order.ProductLine {
	return order.ProductLine{
		Name:         "Wireless Mouse",
		Category:     "electronics",
		Quantity:     1,
		TaxableValue: decimal.NewFromInt(500),
	}
}

func testHub(t *testing.T) order.PickupHub {
	t.Helper()
	return order.PickupHub{
		ID:      kernel.NewUUID(),
		Name:    "Delhi Hub",
		Phone:   "9812345678",
		Address: "7 Industrial Estate",
		Pincode: mustPincode(t, "110001"),
		City:    "New Delhi",
		State:   "Delhi",
	}
}

func testCreateOrderCommand(t *testing.T) commands.CreateOrderCommand {
	t.Helper()
	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(),
		kernel.NewUUID(),
		"REF-1001",
		false,
		order.PaymentCOD,
		decimal.NewFromInt(500),
		testPackage(),
		testCustomer(t),
		testSeller(t),
		testProduct(),
		testHub(t),
	)
	require.NoError(t, err)
	return cmd
}

func testOrder(t *testing.T) *order.Order {
	t.Helper()
	aggregate, err := order.NewOrder(
		kernel.NewUUID(),
		kernel.NewUUID(),
		"REF-1001",
		false,
		testPackage(),
		order.PaymentCOD,
		decimal.NewFromInt(500),
		testCustomer(t),
		testSeller(t),
		testProduct(),
		testHub(t),
		time.Now().UTC(),
	)
	require.NoError(t, err)
	return aggregate
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd := testCreateOrderCommand(t)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory)
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CreateOrderCommand{} // not constructed properly
	factory := new(MockOrderUoWFactory)
	h := commands.NewCreateOrderCommandHandler(factory)
	err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
}

func TestCreateOrderCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()
	cmd := testCreateOrderCommand(t)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(errors.New("add error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory)
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}
