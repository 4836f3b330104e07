package ports

import (
	"context"
	"time"

	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/core/domain/model/remittance"
)

// RemittanceRepository defines the persistence contract for COD payout
// cycles.
type RemittanceRepository interface {
	// Add persists a new remittance.
	Add(ctx context.Context, aggregate *remittance.Remittance) error

	// ExistsForCycle reports whether a remittance was already computed for
	// the seller on the given cycle date.
	ExistsForCycle(ctx context.Context, sellerID kernel.UUID, cycleDate time.Time) (bool, error)

	// GetBySeller lists a seller's remittances, newest cycle first.
	GetBySeller(ctx context.Context, sellerID kernel.UUID) ([]*remittance.Remittance, error)
}
