package services_test

import (
	"context"
	"testing"
	"time"

	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/core/domain/model/order"
	"courierhub/internal/core/domain/model/pricing"
	"courierhub/internal/core/domain/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func profileWithBase(t *testing.T, vendorID string, base int64) pricing.Profile {
	t.Helper()
	tables := make(map[pricing.Zone]pricing.RateTable)
	for _, z := range pricing.Zones() {
		tables[z] = pricing.RateTable{
			Base:      decimal.NewFromInt(base),
			Increment: decimal.NewFromInt(20),
			SlabKg:    decimal.NewFromInt(1),
		}
	}
	return pricing.Profile{
		SellerID: kernel.NewUUID(),
		VendorID: vendorID,
		COD: pricing.CODRule{
			Hard:    decimal.NewFromInt(25),
			Percent: decimal.NewFromFloat(0.02),
		},
		Tables: tables,
	}
}

func TestRateShopper_Shop(t *testing.T) {
	shopper := services.NewRateShopper(services.NewPriceCalculator())
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("inactive profile is skipped, rest ranked ascending", func(t *testing.T) {
		inactive := profileWithBase(t, "slowpost", 10)
		delete(inactive.Tables, pricing.NorthEast)

		quotes, err := shopper.Shop(context.Background(), now, services.ShopRequest{
			Zone:        pricing.WithinZone,
			WeightKg:    decimal.NewFromFloat(2.4),
			PaymentMode: order.PaymentCOD,
			Collectable: decimal.NewFromInt(500),
			Vendors: []services.VendorOffer{
				{Profile: profileWithBase(t, "swiftship", 60), VendorName: "SwiftShip", Priority: 1},
				{Profile: inactive, VendorName: "SlowPost", Priority: 2},
				{Profile: profileWithBase(t, "bluedash", 40), VendorName: "BlueDash", Priority: 3},
			},
		})
		require.NoError(t, err)
		require.Len(t, quotes, 2)

		assert.Equal(t, "bluedash", quotes[0].VendorID)
		assert.True(t, quotes[0].Charge.Total.Equal(decimal.NewFromInt(105)), "total %s", quotes[0].Charge.Total)
		assert.Equal(t, "swiftship", quotes[1].VendorID)
		assert.True(t, quotes[1].Charge.Total.Equal(decimal.NewFromInt(125)), "total %s", quotes[1].Charge.Total)
	})

	t.Run("equal totals break ties by vendor priority", func(t *testing.T) {
		quotes, err := shopper.Shop(context.Background(), now, services.ShopRequest{
			Zone:        pricing.WithinCity,
			WeightKg:    decimal.NewFromInt(1),
			PaymentMode: order.PaymentPrepaid,
			Vendors: []services.VendorOffer{
				{Profile: profileWithBase(t, "bluedash", 40), VendorName: "BlueDash", Priority: 2},
				{Profile: profileWithBase(t, "swiftship", 40), VendorName: "SwiftShip", Priority: 1},
			},
		})
		require.NoError(t, err)
		require.Len(t, quotes, 2)

		assert.Equal(t, "swiftship", quotes[0].VendorID)
		assert.Equal(t, "bluedash", quotes[1].VendorID)
	})

	t.Run("quotes carry zone, estimate and validity window", func(t *testing.T) {
		quotes, err := shopper.Shop(context.Background(), now, services.ShopRequest{
			Zone:        pricing.NorthEast,
			WeightKg:    decimal.NewFromInt(1),
			PaymentMode: order.PaymentPrepaid,
			Vendors: []services.VendorOffer{
				{Profile: profileWithBase(t, "swiftship", 40), VendorName: "SwiftShip", Priority: 1},
			},
		})
		require.NoError(t, err)
		require.Len(t, quotes, 1)

		q := quotes[0]
		assert.Equal(t, pricing.NorthEast, q.Zone)
		assert.Equal(t, "5-10 days", q.TransitEstimate)
		assert.Equal(t, now.Add(15*time.Minute), q.ValidUntil)
		assert.NoError(t, q.Validate())
	})

	t.Run("no active vendors yields empty result", func(t *testing.T) {
		inactive := profileWithBase(t, "slowpost", 10)
		inactive.Tables = nil

		quotes, err := shopper.Shop(context.Background(), now, services.ShopRequest{
			Zone:        pricing.WithinCity,
			WeightKg:    decimal.NewFromInt(1),
			PaymentMode: order.PaymentPrepaid,
			Vendors:     []services.VendorOffer{{Profile: inactive, VendorName: "SlowPost"}},
		})
		require.NoError(t, err)
		assert.Empty(t, quotes)
	})

	t.Run("invalid shipment weight fails the round", func(t *testing.T) {
		_, err := shopper.Shop(context.Background(), now, services.ShopRequest{
			Zone:        pricing.WithinCity,
			WeightKg:    decimal.Zero,
			PaymentMode: order.PaymentPrepaid,
			Vendors: []services.VendorOffer{
				{Profile: profileWithBase(t, "swiftship", 40), VendorName: "SwiftShip"},
			},
		})
		require.Error(t, err)
	})
}
