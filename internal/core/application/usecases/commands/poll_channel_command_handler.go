package commands

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/core/domain/model/order"
	"courierhub/internal/core/ports"
	"courierhub/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ChannelAccount binds a channel client to the seller operating the store:
// the account the imported orders belong to and the hub they will be picked
// up from.
type ChannelAccount struct {
	Client   ports.ChannelClient
	SellerID kernel.UUID
	Seller   order.SellerDetails
	Hub      order.PickupHub
}

// PollChannelCommandHandler imports new orders from external sales channels.
// Each channel order becomes a NEW order under the channel's seller account.
// Orders already imported, identified by channel name and channel order id,
// are skipped, so polling is safe to repeat.
//
// One malformed channel order does not abort the run: it is logged and
// skipped, the rest of the batch still imports.
type PollChannelCommandHandler struct {
	uowFactory OrderUoWFactory
	accounts   map[string]ChannelAccount
	logger     *slog.Logger

	mu       sync.Mutex
	lastPoll map[string]time.Time
}

// NewPollChannelCommandHandler creates a handler over the configured channel
// accounts.
func NewPollChannelCommandHandler(
	uowFactory OrderUoWFactory,
	accounts []ChannelAccount,
	logger *slog.Logger,
) *PollChannelCommandHandler {
	index := make(map[string]ChannelAccount, len(accounts))
	for _, a := range accounts {
		index[a.Client.Name()] = a
	}
	return &PollChannelCommandHandler{
		uowFactory: uowFactory,
		accounts:   index,
		logger:     logger.With("component", "channel-poll"),
		lastPoll:   make(map[string]time.Time),
	}
}

// Handle polls the named channel and imports whatever is new. Returns the
// number of orders imported.
func (h *PollChannelCommandHandler) Handle(ctx context.Context, cmd PollChannelCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	account, ok := h.accounts[cmd.ChannelName()]
	if !ok {
		return 0, errs.NewObjectNotFoundError("channelName", cmd.ChannelName())
	}

	now := time.Now().UTC()
	since := h.sinceFor(cmd.ChannelName(), now)

	fetched, err := account.Client.FetchNewOrders(ctx, since)
	if err != nil {
		return 0, err
	}

	imported := 0
	for _, channelOrder := range fetched {
		ok, err := h.importOne(ctx, account, channelOrder, now)
		if err != nil {
			h.logger.Warn("skipping channel order",
				"channel", cmd.ChannelName(),
				"channelOrderID", channelOrder.ChannelOrderID,
				"error", err)
			continue
		}
		if ok {
			imported++
		}
	}

	h.markPolled(cmd.ChannelName(), now)
	return imported, nil
}

func (h *PollChannelCommandHandler) importOne(
	ctx context.Context,
	account ChannelAccount,
	channelOrder ports.ChannelOrder,
	now time.Time,
) (bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	exists, err := repo.ExistsByChannelRef(ctx, account.Client.Name(), channelOrder.ChannelOrderID)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	aggregate, err := h.toAggregate(account, channelOrder, now)
	if err != nil {
		return false, err
	}

	if err = repo.Add(ctx, aggregate); err != nil {
		return false, err
	}
	if err = uow.Commit(ctx); err != nil {
		return false, err
	}
	return true, nil
}

func (h *PollChannelCommandHandler) toAggregate(
	account ChannelAccount,
	channelOrder ports.ChannelOrder,
	now time.Time,
) (*order.Order, error) {
	pincode, err := kernel.NewPincode(channelOrder.CustomerPincode)
	if err != nil {
		return nil, err
	}

	weight, err := decimal.NewFromString(channelOrder.WeightKg)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("weightKg", err)
	}

	mode := order.PaymentPrepaid
	collectable := decimal.Zero
	if channelOrder.PaymentCOD {
		mode = order.PaymentCOD
		collectable, err = decimal.NewFromString(channelOrder.Collectable)
		if err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause("collectable", err)
		}
	}

	aggregate, err := order.NewOrder(
		kernel.NewUUID(),
		account.SellerID,
		account.Client.Name()+"-"+channelOrder.ChannelOrderID,
		false,
		order.PackageDetails{
			WeightKg: weight,
			LengthCm: decimal.NewFromInt(10),
			WidthCm:  decimal.NewFromInt(10),
			HeightCm: decimal.NewFromInt(10),
			BoxCount: 1,
		},
		mode,
		collectable,
		order.CustomerDetails{
			Name:    channelOrder.CustomerName,
			Phone:   channelOrder.CustomerPhone,
			Address: channelOrder.CustomerAddress,
			Pincode: pincode,
			City:    channelOrder.CustomerCity,
			State:   channelOrder.CustomerState,
		},
		account.Seller,
		order.ProductLine{
			Name:         channelOrder.ProductName,
			Category:     "channel",
			Quantity:     channelOrder.Quantity,
			TaxableValue: collectable,
		},
		account.Hub,
		channelOrder.PlacedAt,
	)
	if err != nil {
		return nil, err
	}

	if err = aggregate.AttachChannel(account.Client.Name(), channelOrder.ChannelOrderID); err != nil {
		return nil, err
	}
	return aggregate, nil
}

func (h *PollChannelCommandHandler) sinceFor(channel string, now time.Time) time.Time {
	h.mu.Lock()
	defer h.mu.Unlock()
	if since, ok := h.lastPoll[channel]; ok {
		return since
	}
	return now.Add(-24 * time.Hour)
}

func (h *PollChannelCommandHandler) markPolled(channel string, now time.Time) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.lastPoll[channel] = now
}
