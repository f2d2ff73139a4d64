package kernel_test

import (
	"testing"

	"fleetops/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUID(t *testing.T) {
	t.Run("new UUID is valid and unique", func(t *testing.T) {
		a := kernel.NewUUID()
		b := kernel.NewUUID()

		require.NoError(t, a.Validate())
		require.NoError(t, b.Validate())
		assert.False(t, a.IsEqual(b))
	})

	t.Run("round trip through string", func(t *testing.T) {
		a := kernel.NewUUID()

		parsed, err := kernel.UUIDFromString(a.String())
		require.NoError(t, err)
		assert.True(t, a.IsEqual(parsed))
	})

	t.Run("round trip through bytes", func(t *testing.T) {
		a := kernel.NewUUID()
		raw := a.Bytes()

		parsed, err := kernel.UUIDFromBytes(raw[:])
		require.NoError(t, err)
		assert.True(t, a.IsEqual(parsed))
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var zero kernel.UUID
		require.Error(t, zero.Validate())
	})

	t.Run("garbage string fails", func(t *testing.T) {
		_, err := kernel.UUIDFromString("not-a-uuid")
		require.Error(t, err)
	})
}
