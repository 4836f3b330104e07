package services_test

import (
	"testing"

	"courierhub/internal/core/domain/model/order"
	"courierhub/internal/core/domain/model/pricing"
	"courierhub/internal/core/domain/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceCalculator_Calculate(t *testing.T) {
	calculator := services.NewPriceCalculator()
	table := pricing.RateTable{
		Base:      decimal.NewFromInt(40),
		Increment: decimal.NewFromInt(20),
		SlabKg:    decimal.NewFromInt(1),
	}
	cod := pricing.CODRule{
		Hard:    decimal.NewFromInt(25),
		Percent: decimal.NewFromFloat(0.02),
	}

	t.Run("cod order with partial slab rounds up", func(t *testing.T) {
		charge, err := calculator.Calculate(
			table, cod, decimal.NewFromFloat(2.4), order.PaymentCOD, decimal.NewFromInt(500))
		require.NoError(t, err)

		assert.True(t, charge.Freight.Equal(decimal.NewFromInt(80)), "freight %s", charge.Freight)
		assert.True(t, charge.CODFee.Equal(decimal.NewFromInt(25)), "cod fee %s", charge.CODFee)
		assert.True(t, charge.Total.Equal(decimal.NewFromInt(105)), "total %s", charge.Total)
	})

	t.Run("prepaid order pays no cod fee", func(t *testing.T) {
		charge, err := calculator.Calculate(
			table, cod, decimal.NewFromFloat(2.4), order.PaymentPrepaid, decimal.Zero)
		require.NoError(t, err)

		assert.True(t, charge.CODFee.IsZero())
		assert.True(t, charge.Total.Equal(decimal.NewFromInt(80)))
	})

	t.Run("exact slab boundary bills no extra slab", func(t *testing.T) {
		charge, err := calculator.Calculate(
			table, cod, decimal.NewFromInt(2), order.PaymentPrepaid, decimal.Zero)
		require.NoError(t, err)

		assert.True(t, charge.Freight.Equal(decimal.NewFromInt(60)), "freight %s", charge.Freight)
	})

	t.Run("weight below one slab bills the base price", func(t *testing.T) {
		charge, err := calculator.Calculate(
			table, cod, decimal.NewFromFloat(0.3), order.PaymentPrepaid, decimal.Zero)
		require.NoError(t, err)

		assert.True(t, charge.Freight.Equal(decimal.NewFromInt(40)))
	})

	t.Run("percentage cod fee wins for large collectables", func(t *testing.T) {
		charge, err := calculator.Calculate(
			table, cod, decimal.NewFromInt(1), order.PaymentCOD, decimal.NewFromInt(5000))
		require.NoError(t, err)

		assert.True(t, charge.CODFee.Equal(decimal.NewFromInt(100)), "cod fee %s", charge.CODFee)
	})

	t.Run("half kilo slabs", func(t *testing.T) {
		halfKg := pricing.RateTable{
			Base:      decimal.NewFromInt(30),
			Increment: decimal.NewFromInt(15),
			SlabKg:    decimal.NewFromFloat(0.5),
		}
		charge, err := calculator.Calculate(
			halfKg, cod, decimal.NewFromFloat(1.2), order.PaymentPrepaid, decimal.Zero)
		require.NoError(t, err)

		assert.True(t, charge.Freight.Equal(decimal.NewFromInt(60)), "freight %s", charge.Freight)
	})

	t.Run("non positive weight is rejected", func(t *testing.T) {
		_, err := calculator.Calculate(table, cod, decimal.Zero, order.PaymentPrepaid, decimal.Zero)
		require.Error(t, err)

		_, err = calculator.Calculate(table, cod, decimal.NewFromInt(-1), order.PaymentPrepaid, decimal.Zero)
		require.Error(t, err)
	})

	t.Run("invalid rate table is rejected", func(t *testing.T) {
		broken := pricing.RateTable{Base: decimal.NewFromInt(40)}
		_, err := calculator.Calculate(broken, cod, decimal.NewFromInt(1), order.PaymentPrepaid, decimal.Zero)
		require.Error(t, err)
	})
}
