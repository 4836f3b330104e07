package commands

import (
	"context"
	"errors"

	"courierhub/internal/pkg/errs"
)

// ApplyStatusEventCommandHandler ingests vendor tracking callbacks. The
// shipment is resolved by vendor and air waybill, the reported stage is
// applied through the order's lifecycle rules and the order is saved.
//
// Callbacks for the same shipment can race. A save that loses the version
// check is retried once against a fresh copy of the order; the event rules
// are idempotent so replaying is safe.
type ApplyStatusEventCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewApplyStatusEventCommandHandler creates a handler for tracking callbacks.
func NewApplyStatusEventCommandHandler(uowFactory OrderUoWFactory) ApplyStatusEventCommandHandler {
	return ApplyStatusEventCommandHandler{uowFactory: uowFactory}
}

// Handle applies one tracking event to the shipment it names.
func (h *ApplyStatusEventCommandHandler) Handle(ctx context.Context, cmd ApplyStatusEventCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	err := h.apply(ctx, cmd)
	var versionErr *errs.VersionIsInvalidError
	if errors.As(err, &versionErr) {
		return h.apply(ctx, cmd)
	}
	return err
}

func (h *ApplyStatusEventCommandHandler) apply(ctx context.Context, cmd ApplyStatusEventCommand) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	aggregate, err := repo.GetByAWB(ctx, cmd.VendorID(), cmd.AWB())
	if err != nil {
		return err
	}

	if err = aggregate.ApplyEvent(cmd.Stage(), cmd.At(), cmd.Note()); err != nil {
		return err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
