package delivery_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetops/internal/core/domain/model/delivery"
	"fleetops/internal/pkg/errs"
)

func TestParseCluster(t *testing.T) {
	assert.Equal(t, delivery.ClusterSmall, delivery.ParseCluster("Small"))
	assert.Equal(t, delivery.ClusterMedium, delivery.ParseCluster("Medium"))
	assert.Equal(t, delivery.ClusterLarge, delivery.ParseCluster("Large"))
	assert.Equal(t, delivery.ClusterExtraLarge, delivery.ParseCluster("Extra Large"))
	assert.Equal(t, delivery.ClusterSmall, delivery.ParseCluster("gigantic"))
	assert.Equal(t, delivery.ClusterSmall, delivery.ParseCluster(""))
}

func TestCalculatePricing(t *testing.T) {
	t.Run("breakdown components", func(t *testing.T) {
		p := delivery.CalculatePricing(10, 20, delivery.ClusterMedium)

		assert.InDelta(t, 50.0, p.BasePrice(), 1e-9)
		assert.InDelta(t, 100.0, p.WeightCharge(), 1e-9)
		assert.InDelta(t, 160.0, p.DistanceCharge(), 1e-9)
		assert.InDelta(t, 50.0, p.ClusterCharge(), 1e-9)
		assert.InDelta(t, 360.0, p.TotalPrice(), 1e-9)
	})

	t.Run("cluster surcharges", func(t *testing.T) {
		small := delivery.CalculatePricing(1, 1, delivery.ClusterSmall)
		medium := delivery.CalculatePricing(1, 1, delivery.ClusterMedium)
		large := delivery.CalculatePricing(1, 1, delivery.ClusterLarge)
		extra := delivery.CalculatePricing(1, 1, delivery.ClusterExtraLarge)

		assert.InDelta(t, 0.0, small.ClusterCharge(), 1e-9)
		assert.InDelta(t, 50.0, medium.ClusterCharge(), 1e-9)
		assert.InDelta(t, 100.0, large.ClusterCharge(), 1e-9)
		assert.InDelta(t, 200.0, extra.ClusterCharge(), 1e-9)
	})

	t.Run("deterministic", func(t *testing.T) {
		first := delivery.CalculatePricing(3.5, 12.25, delivery.ClusterLarge)
		second := delivery.CalculatePricing(3.5, 12.25, delivery.ClusterLarge)
		assert.Equal(t, first, second)
	})
}

func TestNewEarnings(t *testing.T) {
	pricing := delivery.CalculatePricing(10, 20, delivery.ClusterMedium)

	t.Run("default commission", func(t *testing.T) {
		e, err := delivery.NewEarnings(pricing, delivery.DefaultCommissionRate)
		require.NoError(t, err)

		assert.InDelta(t, 360.0, e.Gross(), 1e-9)
		assert.InDelta(t, 0.7, e.Commission(), 1e-9)
		assert.InDelta(t, 252.0, e.Net(), 1e-9)
		assert.False(t, e.PaidToDriver())
		assert.Nil(t, e.PaidAt())
	})

	t.Run("commission out of range", func(t *testing.T) {
		_, err := delivery.NewEarnings(pricing, 0)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

		_, err = delivery.NewEarnings(pricing, 1.5)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestRestoreEarnings(t *testing.T) {
	paidAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	e := delivery.RestoreEarnings(360, 0.7, 252, true, &paidAt)

	assert.InDelta(t, 360.0, e.Gross(), 1e-9)
	assert.InDelta(t, 252.0, e.Net(), 1e-9)
	assert.True(t, e.PaidToDriver())
	require.NotNil(t, e.PaidAt())
	assert.Equal(t, paidAt, *e.PaidAt())
}
