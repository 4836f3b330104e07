package commands_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"courierhub/internal/core/application/usecases/commands"
	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/core/domain/model/order"
	"courierhub/internal/core/ports"
	"courierhub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockChannelClient struct{ mock.Mock }

func (m *MockChannelClient) Name() string {
	return m.Called().String(0)
}
func (m *MockChannelClient) FetchNewOrders(ctx context.Context, since time.Time) ([]ports.ChannelOrder, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.ChannelOrder), args.Error(1)
}

func channelOrder(id string) ports.ChannelOrder {
	return ports.ChannelOrder{
		ChannelOrderID:  id,
		CustomerName:    "Asha Rao",
		CustomerPhone:   "9876543210",
		CustomerAddress: "14 MG Road",
		CustomerPincode: "560001",
		CustomerCity:    "Bengaluru",
		CustomerState:   "Karnataka",
		PaymentCOD:      true,
		Collectable:     "750",
		WeightKg:        "1.2",
		ProductName:     "Ceramic Mug",
		Quantity:        2,
		PlacedAt:        time.Now().UTC().Add(-time.Hour),
	}
}

func pollHandler(
	t *testing.T,
	factory commands.OrderUoWFactory,
	client ports.ChannelClient,
) *commands.PollChannelCommandHandler {
	t.Helper()
	return commands.NewPollChannelCommandHandler(factory, []commands.ChannelAccount{{
		Client:   client,
		SellerID: kernel.NewUUID(),
		Seller:   testSeller(t),
		Hub:      testHub(t),
	}}, slog.Default())
}

func TestPollChannelCommandHandler_Handle_ImportsNewOrders(t *testing.T) {
	ctx := t.Context()
	client := new(MockChannelClient)
	client.On("Name").Return("shopify")
	client.On("FetchNewOrders", mock.Anything, mock.AnythingOfType("time.Time")).
		Return([]ports.ChannelOrder{channelOrder("1001"), channelOrder("1002")}, nil).Once()

	repo := new(MockOrderRepository)
	repo.On("ExistsByChannelRef", mock.Anything, "shopify", "1001").Return(false, nil).Once()
	repo.On("ExistsByChannelRef", mock.Anything, "shopify", "1002").Return(true, nil).Once()
	repo.On("Add", mock.Anything, mock.MatchedBy(func(o *order.Order) bool {
		name, channelOrderID := o.Channel()
		return name == "shopify" && channelOrderID == "1001" && o.Bucket() == order.New
	})).Return(nil).Once()

	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Twice()
	uow.On("OrderRepository").Return(repo).Twice()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Twice()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Twice()

	h := pollHandler(t, factory, client)
	cmd, err := commands.NewPollChannelCommand("shopify")
	require.NoError(t, err)

	imported, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, 1, imported)
	repo.AssertExpectations(t)
}

func TestPollChannelCommandHandler_Handle_MalformedOrderIsSkipped(t *testing.T) {
	ctx := t.Context()
	bad := channelOrder("2001")
	bad.CustomerPincode = "bogus"

	client := new(MockChannelClient)
	client.On("Name").Return("shopify")
	client.On("FetchNewOrders", mock.Anything, mock.AnythingOfType("time.Time")).
		Return([]ports.ChannelOrder{bad, channelOrder("2002")}, nil).Once()

	repo := new(MockOrderRepository)
	repo.On("ExistsByChannelRef", mock.Anything, "shopify", mock.AnythingOfType("string")).
		Return(false, nil).Twice()
	repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once()

	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Twice()
	uow.On("OrderRepository").Return(repo).Twice()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Twice()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Twice()

	h := pollHandler(t, factory, client)
	cmd, err := commands.NewPollChannelCommand("shopify")
	require.NoError(t, err)

	imported, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, 1, imported)
}

func TestPollChannelCommandHandler_Handle_UnknownChannel(t *testing.T) {
	ctx := t.Context()
	client := new(MockChannelClient)
	client.On("Name").Return("shopify")

	h := pollHandler(t, new(MockOrderUoWFactory), client)
	cmd, err := commands.NewPollChannelCommand("woocommerce")
	require.NoError(t, err)

	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}
