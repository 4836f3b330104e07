package ports

import (
	"context"

	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/core/domain/model/vendor"
)

// QuoteCache holds the quotes produced by a rate shopping round until one of
// them is booked or the validity window closes. Entries expire on their own,
// the cache is never the source of truth for anything.
type QuoteCache interface {
	// Put stores the quotes of one shopping round for an order, replacing
	// any previous round.
	Put(ctx context.Context, orderID kernel.UUID, quotes []vendor.Quote) error

	// Get retrieves one quote of the order's latest round. Returns
	// ObjectNotFoundError when the round expired or the quote id is not
	// part of it.
	Get(ctx context.Context, orderID, quoteID kernel.UUID) (vendor.Quote, error)
}
