package commands

import (
	"context"
	"time"

	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/core/domain/model/order"
	"courierhub/internal/core/domain/model/remittance"

	"github.com/shopspring/decimal"
)

// ComputeRemittanceCommandHandler builds COD payout records for one delivery
// date. COD orders delivered that day are grouped by seller and each group
// becomes one remittance summing the collectable amounts.
//
// Sellers whose cycle for the date already exists are skipped, so re-running
// a cycle is safe.
type ComputeRemittanceCommandHandler struct {
	uowFactory RemittanceUoWFactory
}

// NewComputeRemittanceCommandHandler creates a handler for payout cycles.
func NewComputeRemittanceCommandHandler(uowFactory RemittanceUoWFactory) ComputeRemittanceCommandHandler {
	return ComputeRemittanceCommandHandler{uowFactory: uowFactory}
}

// Handle computes the cycle and returns the number of remittances created.
func (h *ComputeRemittanceCommandHandler) Handle(ctx context.Context, cmd ComputeRemittanceCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	delivered, err := uow.OrderRepository().GetDeliveredCODOn(ctx, cmd.CycleDate())
	if err != nil {
		return 0, err
	}

	type group struct {
		amount   decimal.Decimal
		orderIDs []kernel.UUID
	}
	bySeller := make(map[kernel.UUID]*group)
	sellers := make([]kernel.UUID, 0)
	for _, o := range delivered {
		if o.PaymentMode() != order.PaymentCOD {
			continue
		}
		g, ok := bySeller[o.SellerID()]
		if !ok {
			g = &group{amount: decimal.Zero}
			bySeller[o.SellerID()] = g
			sellers = append(sellers, o.SellerID())
		}
		g.amount = g.amount.Add(o.Collectable())
		g.orderIDs = append(g.orderIDs, o.ID())
	}

	remittances := uow.RemittanceRepository()
	created := 0
	now := time.Now().UTC()
	for _, sellerID := range sellers {
		exists, err := remittances.ExistsForCycle(ctx, sellerID, cmd.CycleDate())
		if err != nil {
			return 0, err
		}
		if exists {
			continue
		}

		g := bySeller[sellerID]
		payout, err := remittance.NewRemittance(sellerID, cmd.CycleDate(), g.amount, g.orderIDs, now)
		if err != nil {
			return 0, err
		}
		if err = remittances.Add(ctx, payout); err != nil {
			return 0, err
		}
		created++
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}
	return created, nil
}
