package commands_test

import (
	"testing"
	"time"

	"courierhub/internal/core/application/usecases/commands"
	"courierhub/internal/core/domain/model/order"
	"courierhub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func bookedOrder(t *testing.T) *order.Order {
	t.Helper()
	aggregate := testOrder(t)
	_, err := aggregate.RecordBooking(order.Booking{
		VendorID:      "swiftship",
		VendorOrderID: "SW-100",
		AWB:           "AWB123",
		BookedAt:      time.Now().UTC(),
	})
	require.NoError(t, err)
	require.NoError(t, aggregate.ApplyEvent(order.ReadyToShip, time.Now().UTC(), "booked"))
	return aggregate
}

func TestApplyStatusEventCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	aggregate := bookedOrder(t)
	cmd, err := commands.NewApplyStatusEventCommand(
		"swiftship", "AWB123", order.InTransit, time.Now().UTC(), "Picked up")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetByAWB", mock.Anything, "swiftship", "AWB123").Return(aggregate, nil).Once(),
		repo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewApplyStatusEventCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, order.InTransit, aggregate.Bucket())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestApplyStatusEventCommandHandler_Handle_RetriesOnVersionConflict(t *testing.T) {
	ctx := t.Context()
	stale := bookedOrder(t)
	fresh := bookedOrder(t)
	cmd, err := commands.NewApplyStatusEventCommand(
		"swiftship", "AWB123", order.InTransit, time.Now().UTC(), "Picked up")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Twice()
	uow.On("OrderRepository").Return(repo).Twice()
	repo.On("GetByAWB", mock.Anything, "swiftship", "AWB123").Return(stale, nil).Once()
	repo.On("Update", mock.Anything, stale).
		Return(errs.NewVersionIsInvalidError("order", nil)).Once()
	repo.On("GetByAWB", mock.Anything, "swiftship", "AWB123").Return(fresh, nil).Once()
	repo.On("Update", mock.Anything, fresh).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Twice()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Twice()

	h := commands.NewApplyStatusEventCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, order.InTransit, fresh.Bucket())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestApplyStatusEventCommandHandler_Handle_InvalidTransition(t *testing.T) {
	ctx := t.Context()
	aggregate := testOrder(t) // still in NEW
	cmd, err := commands.NewApplyStatusEventCommand(
		"swiftship", "AWB123", order.InTransit, time.Now().UTC(), "Picked up")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetByAWB", mock.Anything, "swiftship", "AWB123").Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewApplyStatusEventCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrInvalidTransition)
	assert.Equal(t, order.New, aggregate.Bucket())
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestApplyStatusEventCommandHandler_Handle_DuplicateEventIsNoOp(t *testing.T) {
	ctx := t.Context()
	aggregate := bookedOrder(t)
	at := time.Now().UTC()
	require.NoError(t, aggregate.ApplyEvent(order.InTransit, at, "Picked up"))
	stagesBefore := len(aggregate.Stages())

	cmd, err := commands.NewApplyStatusEventCommand("swiftship", "AWB123", order.InTransit, at, "Picked up")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetByAWB", mock.Anything, "swiftship", "AWB123").Return(aggregate, nil).Once(),
		repo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewApplyStatusEventCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Len(t, aggregate.Stages(), stagesBefore)
	assert.Equal(t, order.InTransit, aggregate.Bucket())
}
