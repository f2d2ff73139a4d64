package queries_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetops/internal/core/application/usecases/queries"
	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/pkg/errs"
)

func TestNewGetWalletStatementQuery_Valid(t *testing.T) {
	ownerID := kernel.NewUUID()

	query, err := queries.NewGetWalletStatementQuery(ownerID, 20)
	require.NoError(t, err)
	require.NoError(t, query.Validate())

	assert.True(t, ownerID.IsEqual(query.OwnerID()))
	assert.Equal(t, 20, query.Limit())
}

func TestNewGetWalletStatementQuery_Invalid(t *testing.T) {
	t.Run("empty owner", func(t *testing.T) {
		_, err := queries.NewGetWalletStatementQuery(kernel.UUID{}, 20)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("non-positive limit", func(t *testing.T) {
		_, err := queries.NewGetWalletStatementQuery(kernel.NewUUID(), 0)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestGetWalletStatementQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetWalletStatementQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetWalletStatementQueryIsNotConstructed)
}
