package kernel_test

import (
	"errors"
	"testing"

	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeoPoint(t *testing.T) {
	t.Run("valid coordinates", func(t *testing.T) {
		p, err := kernel.NewGeoPoint(12.9716, 77.5946)

		require.NoError(t, err)
		assert.InDelta(t, 12.9716, p.Lat(), 0.000001)
		assert.InDelta(t, 77.5946, p.Lng(), 0.000001)
		assert.False(t, p.IsZero())
	})

	t.Run("latitude out of range", func(t *testing.T) {
		_, err := kernel.NewGeoPoint(91, 0)

		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrValueIsOutOfRange))
	})

	t.Run("longitude out of range", func(t *testing.T) {
		_, err := kernel.NewGeoPoint(0, -181)
		require.Error(t, err)
	})
}

func TestNewAddress(t *testing.T) {
	point, _ := kernel.NewGeoPoint(12.9716, 77.5946)

	t.Run("valid address", func(t *testing.T) {
		a, err := kernel.NewAddress("42 MG Road", point)

		require.NoError(t, err)
		require.NoError(t, a.Validate())
		assert.Equal(t, "42 MG Road", a.Street())
		assert.Equal(t, point, a.Point())
	})

	t.Run("empty street is rejected", func(t *testing.T) {
		_, err := kernel.NewAddress("", point)

		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrValueIsRequired))
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var zero kernel.Address
		require.Error(t, zero.Validate())
	})
}
