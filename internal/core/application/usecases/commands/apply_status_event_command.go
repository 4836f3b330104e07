package commands

import (
	"errors"
	"time"

	"courierhub/internal/core/domain/model/order"
	"courierhub/internal/pkg/guard"
)

var (
	ErrApplyStatusEventCommandIsNotConstructed = errors.New(
		"ApplyStatusEventCommand must be created via NewApplyStatusEventCommand constructor",
	)
	ErrAWBIsRequired         = errors.New("awb is required")
	ErrEventTimeIsRequired   = errors.New("event time is required")
)

// ApplyStatusEventCommand carries one vendor tracking callback: which
// shipment it concerns and the lifecycle stage the vendor reports.
type ApplyStatusEventCommand struct { //nolint:recvcheck //using for validation
	vendorID string
	awb      string
	stage    order.Bucket
	at       time.Time
	note     string

	guard guard.ConstructorGuard
}

// NewApplyStatusEventCommand creates a command from a vendor callback.
func NewApplyStatusEventCommand(
	vendorID string,
	awb string,
	stage order.Bucket,
	at time.Time,
	note string,
) (ApplyStatusEventCommand, error) {
	cmd := ApplyStatusEventCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setVendorID(vendorID),
		cmd.setAWB(awb),
		cmd.setStage(stage),
		cmd.setAt(at),
	); err != nil {
		return ApplyStatusEventCommand{}, err
	}

	cmd.note = note
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ApplyStatusEventCommand) Validate() error {
	return c.guard.Validate(ErrApplyStatusEventCommandIsNotConstructed)
}

func (c ApplyStatusEventCommand) VendorID() string   { return c.vendorID }
func (c ApplyStatusEventCommand) AWB() string        { return c.awb }
func (c ApplyStatusEventCommand) Stage() order.Bucket { return c.stage }
func (c ApplyStatusEventCommand) At() time.Time      { return c.at }
func (c ApplyStatusEventCommand) Note() string       { return c.note }

func (c *ApplyStatusEventCommand) setVendorID(vendorID string) error {
	if vendorID == "" {
		return ErrVendorIDIsRequired
	}
	c.vendorID = vendorID
	return nil
}

func (c *ApplyStatusEventCommand) setAWB(awb string) error {
	if awb == "" {
		return ErrAWBIsRequired
	}
	c.awb = awb
	return nil
}

func (c *ApplyStatusEventCommand) setStage(stage order.Bucket) error {
	if err := stage.Validate(); err != nil {
		return err
	}
	c.stage = stage
	return nil
}

func (c *ApplyStatusEventCommand) setAt(at time.Time) error {
	if at.IsZero() {
		return ErrEventTimeIsRequired
	}
	c.at = at
	return nil
}
