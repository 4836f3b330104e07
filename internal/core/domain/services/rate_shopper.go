package services

import (
	"context"
	"sort"
	"time"

	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/core/domain/model/order"
	"courierhub/internal/core/domain/model/pricing"
	"courierhub/internal/core/domain/model/vendor"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// quoteTTL is how long a produced quote stays bookable.
const quoteTTL = 15 * time.Minute

// transitEstimates maps a zone to the vendor-agnostic delivery window shown
// alongside each quote.
var transitEstimates = map[pricing.Zone]string{
	pricing.WithinCity:  "1-2 days",
	pricing.WithinZone:  "2-4 days",
	pricing.WithinMetro: "3-5 days",
	pricing.RestOfIndia: "4-7 days",
	pricing.NorthEast:   "5-10 days",
}

// VendorOffer pairs one seller-vendor pricing profile with the vendor's
// display name and its priority in the seller's vendor list. Priority breaks
// ties between equally priced quotes, lower wins.
type VendorOffer struct {
	Profile    pricing.Profile
	VendorName string
	Priority   int
}

// ShopRequest describes one rate shopping round: the shipment parameters and
// the candidate vendors to price it against.
type ShopRequest struct {
	Zone        pricing.Zone
	WeightKg    decimal.Decimal
	PaymentMode order.PaymentMode
	Collectable decimal.Decimal
	Vendors     []VendorOffer
}

// RateShopper prices a shipment against every candidate vendor concurrently
// and ranks the resulting quotes by total charge ascending.
//
// Vendors with inactive profiles are skipped silently: a seller missing a
// rate table for one vendor still gets quotes from the rest. Only a shipment
// that no vendor can price yields an empty result.
type RateShopper struct {
	calculator PriceCalculator
}

// NewRateShopper creates a RateShopper over the given calculator.
func NewRateShopper(calculator PriceCalculator) *RateShopper {
	return &RateShopper{calculator: calculator}
}

// Shop prices the shipment for every vendor in the request and returns the
// quotes ordered cheapest first. Quotes are valid for fifteen minutes from
// now.
func (r *RateShopper) Shop(ctx context.Context, now time.Time, req ShopRequest) ([]vendor.Quote, error) {
	results := make([]*vendor.Quote, len(req.Vendors))

	g, _ := errgroup.WithContext(ctx)
	for i, offer := range req.Vendors {
		g.Go(func() error {
			if !offer.Profile.Active() {
				return nil
			}
			table, err := offer.Profile.TableFor(req.Zone)
			if err != nil {
				return nil
			}
			charge, err := r.calculator.Calculate(
				table, offer.Profile.COD, req.WeightKg, req.PaymentMode, req.Collectable)
			if err != nil {
				return err
			}
			results[i] = &vendor.Quote{
				ID:              kernel.NewUUID(),
				VendorID:        offer.Profile.VendorID,
				VendorName:      offer.VendorName,
				Charge:          charge,
				Zone:            req.Zone,
				TransitEstimate: transitEstimates[req.Zone],
				ValidUntil:      now.Add(quoteTTL),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	type ranked struct {
		quote    vendor.Quote
		priority int
	}
	quotes := make([]ranked, 0, len(results))
	for i, q := range results {
		if q != nil {
			quotes = append(quotes, ranked{quote: *q, priority: req.Vendors[i].Priority})
		}
	}
	sort.SliceStable(quotes, func(i, j int) bool {
		if !quotes[i].quote.Charge.Total.Equal(quotes[j].quote.Charge.Total) {
			return quotes[i].quote.Charge.Total.LessThan(quotes[j].quote.Charge.Total)
		}
		return quotes[i].priority < quotes[j].priority
	})

	out := make([]vendor.Quote, len(quotes))
	for i, q := range quotes {
		out[i] = q.quote
	}
	return out, nil
}
