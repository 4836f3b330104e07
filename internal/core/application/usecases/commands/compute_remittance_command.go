package commands

import (
	"errors"
	"time"

	"courierhub/internal/pkg/guard"
)

var (
	ErrComputeRemittanceCommandIsNotConstructed = errors.New(
		"ComputeRemittanceCommand must be created via NewComputeRemittanceCommand constructor",
	)
	ErrCycleDateIsRequired = errors.New("cycle date is required")
)

// ComputeRemittanceCommand requests the COD payout cycle for one delivery
// date.
type ComputeRemittanceCommand struct { //nolint:recvcheck //using for validation
	cycleDate time.Time

	guard guard.ConstructorGuard
}

// NewComputeRemittanceCommand creates a command for the given cycle date.
// The time of day is ignored, cycles cover whole calendar days.
func NewComputeRemittanceCommand(cycleDate time.Time) (ComputeRemittanceCommand, error) {
	cmd := ComputeRemittanceCommand{guard: guard.NewConstructorGuard()}
	if cycleDate.IsZero() {
		return ComputeRemittanceCommand{}, ErrCycleDateIsRequired
	}
	cmd.cycleDate = cycleDate.UTC().Truncate(24 * time.Hour)
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ComputeRemittanceCommand) Validate() error {
	return c.guard.Validate(ErrComputeRemittanceCommandIsNotConstructed)
}

// CycleDate returns the calendar day the cycle covers.
func (c ComputeRemittanceCommand) CycleDate() time.Time {
	return c.cycleDate
}
