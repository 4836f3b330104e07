package commands

import (
	"context"
	"time"

	"courierhub/internal/core/domain/model/vendor"
	"courierhub/internal/core/domain/services"
	"courierhub/internal/core/ports"
)

// ShopRatesCommandHandler runs one rate shopping round: classify the
// shipment's zone, price it against every vendor the seller has a profile
// for, cache the ranked quotes and return them.
//
// The round replaces any previous round for the order. A vendor without an
// active profile or without the FetchQuote capability is skipped; the caller
// gets quotes from the rest.
type ShopRatesCommandHandler struct {
	uowFactory OrderUoWFactory
	profiles   ports.PricingProfileRepository
	pool       ports.VendorGatewayPool
	classifier *services.ZoneClassifier
	shopper    *services.RateShopper
	quoteCache ports.QuoteCache
}

// NewShopRatesCommandHandler creates a handler for rate shopping rounds.
func NewShopRatesCommandHandler(
	uowFactory OrderUoWFactory,
	profiles ports.PricingProfileRepository,
	pool ports.VendorGatewayPool,
	classifier *services.ZoneClassifier,
	shopper *services.RateShopper,
	quoteCache ports.QuoteCache,
) ShopRatesCommandHandler {
	return ShopRatesCommandHandler{
		uowFactory: uowFactory,
		profiles:   profiles,
		pool:       pool,
		classifier: classifier,
		shopper:    shopper,
		quoteCache: quoteCache,
	}
}

// Handle executes the shopping round and returns the quotes cheapest first.
func (h *ShopRatesCommandHandler) Handle(ctx context.Context, cmd ShopRatesCommand) ([]vendor.Quote, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	zone, err := h.classifier.Classify(aggregate.OriginPincode(), aggregate.DestinationPincode())
	if err != nil {
		return nil, err
	}

	sellerProfiles, err := h.profiles.GetBySeller(ctx, aggregate.SellerID())
	if err != nil {
		return nil, err
	}
	byVendor := make(map[string]int, len(sellerProfiles))
	for i, p := range sellerProfiles {
		byVendor[p.VendorID] = i
	}

	offers := make([]services.VendorOffer, 0, len(sellerProfiles))
	for priority, gateway := range h.pool.All() {
		if !gateway.Supports(vendor.FetchQuote) {
			continue
		}
		i, ok := byVendor[gateway.VendorID()]
		if !ok {
			continue
		}
		offers = append(offers, services.VendorOffer{
			Profile:    sellerProfiles[i],
			VendorName: gateway.Name(),
			Priority:   priority,
		})
	}

	quotes, err := h.shopper.Shop(ctx, time.Now().UTC(), services.ShopRequest{
		Zone:        zone,
		WeightKg:    aggregate.Package().WeightKg,
		PaymentMode: aggregate.PaymentMode(),
		Collectable: aggregate.Collectable(),
		Vendors:     offers,
	})
	if err != nil {
		return nil, err
	}

	if len(quotes) > 0 {
		if err = h.quoteCache.Put(ctx, aggregate.ID(), quotes); err != nil {
			return nil, err
		}
	}

	return quotes, nil
}
