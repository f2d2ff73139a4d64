package account_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetops/internal/core/domain/model/account"
	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/pkg/errs"
)

func postedAt() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func newWallet(t *testing.T, kind account.Kind) *account.Wallet {
	t.Helper()
	w, err := account.NewWallet(kernel.NewUUID(), kernel.NewUUID(), kind)
	require.NoError(t, err)
	return w
}

func TestNewWallet(t *testing.T) {
	t.Run("opens empty", func(t *testing.T) {
		w := newWallet(t, account.KindCustomer)

		assert.NoError(t, w.Validate())
		assert.Zero(t, w.Balance())
		assert.Empty(t, w.Transactions())
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		_, err := account.NewWallet(kernel.UUID{}, kernel.NewUUID(), account.KindCustomer)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = account.NewWallet(kernel.NewUUID(), kernel.NewUUID(), account.KindUnknown)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("not constructed", func(t *testing.T) {
		var w account.Wallet
		assert.ErrorIs(t, w.Validate(), account.ErrWalletIsNotConstructed)
	})
}

func TestWalletPostings(t *testing.T) {
	deliveryRef := kernel.NewUUID()

	t.Run("credit then debit", func(t *testing.T) {
		w := newWallet(t, account.KindCustomer)

		require.NoError(t, w.Credit(500, "Top-up", nil))
		require.NoError(t, w.Debit(360, "Payment for delivery", &deliveryRef))

		assert.InDelta(t, 140.0, w.Balance(), 1e-9)

		txs := w.Transactions()
		require.Len(t, txs, 2)
		assert.Equal(t, account.TransactionCredit, txs[0].Type())
		assert.InDelta(t, 500.0, txs[0].BalanceAfter(), 1e-9)
		assert.Equal(t, account.TransactionDebit, txs[1].Type())
		assert.InDelta(t, 140.0, txs[1].BalanceAfter(), 1e-9)
		require.NotNil(t, txs[1].DeliveryRef())
		assert.Equal(t, deliveryRef, *txs[1].DeliveryRef())
	})

	t.Run("no overdraft", func(t *testing.T) {
		w := newWallet(t, account.KindCustomer)
		require.NoError(t, w.Credit(100, "Top-up", nil))

		err := w.Debit(360, "Payment for delivery", &deliveryRef)
		assert.ErrorIs(t, err, errs.ErrInsufficientBalance)
		assert.EqualError(t, err, "insufficient balance: available 100.00, requested 360.00")

		// Nothing was posted.
		assert.InDelta(t, 100.0, w.Balance(), 1e-9)
		assert.Len(t, w.Transactions(), 1)
	})

	t.Run("withdrawal guard", func(t *testing.T) {
		w := newWallet(t, account.KindDriver)
		require.NoError(t, w.Credit(50, "Earnings", &deliveryRef))

		assert.ErrorIs(t, w.Withdraw(80, "Cash out"), errs.ErrInsufficientBalance)
		require.NoError(t, w.Withdraw(50, "Cash out"))
		assert.Zero(t, w.Balance())
	})

	t.Run("refund credits back", func(t *testing.T) {
		w := newWallet(t, account.KindCustomer)
		require.NoError(t, w.Credit(500, "Top-up", nil))
		require.NoError(t, w.Debit(360, "Payment", &deliveryRef))
		require.NoError(t, w.Refund(288, "Cancellation refund", &deliveryRef))

		assert.InDelta(t, 428.0, w.Balance(), 1e-9)
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		w := newWallet(t, account.KindCustomer)
		assert.ErrorIs(t, w.Credit(0, "", nil), account.ErrAmountIsInvalid)
		assert.ErrorIs(t, w.Debit(-5, "", nil), account.ErrAmountIsInvalid)
	})
}

func TestWalletRunningTotals(t *testing.T) {
	deliveryRef := kernel.NewUUID()

	t.Run("driver earnings accumulate across payouts", func(t *testing.T) {
		w := newWallet(t, account.KindDriver)

		require.NoError(t, w.Credit(252, "Earnings", &deliveryRef))
		require.NoError(t, w.PayoutDebit(252, "Weekly payout"))
		require.NoError(t, w.Credit(100, "Earnings", &deliveryRef))

		assert.InDelta(t, 100.0, w.Balance(), 1e-9)
		assert.InDelta(t, 352.0, w.TotalEarnings(), 1e-9)
	})

	t.Run("platform revenue accumulates", func(t *testing.T) {
		w := newWallet(t, account.KindPlatform)

		require.NoError(t, w.CreditRevenue(108, "Commission", &deliveryRef))
		require.NoError(t, w.CreditRevenue(42, "Commission", &deliveryRef))

		assert.InDelta(t, 150.0, w.TotalRevenue(), 1e-9)
		assert.InDelta(t, 150.0, w.Balance(), 1e-9)
	})

	t.Run("customer credits do not touch totals", func(t *testing.T) {
		w := newWallet(t, account.KindCustomer)
		require.NoError(t, w.Credit(500, "Top-up", nil))

		assert.Zero(t, w.TotalEarnings())
		assert.Zero(t, w.TotalRevenue())
	})
}

func TestWalletReplay(t *testing.T) {
	t.Run("consistent ledger replays clean", func(t *testing.T) {
		w := newWallet(t, account.KindCustomer)
		require.NoError(t, w.Credit(500, "Top-up", nil))
		require.NoError(t, w.Debit(360, "Payment", nil))
		require.NoError(t, w.Refund(180, "Refund", nil))

		assert.NoError(t, w.Replay())
	})

	t.Run("detects tampered balance", func(t *testing.T) {
		owner := kernel.NewUUID()
		txID := kernel.NewUUID()
		tx := account.RestoreTransaction(txID, account.TransactionCredit, 500, "Top-up", nil, postedAt(), 500)

		w, err := account.RestoreWallet(kernel.NewUUID(), owner, account.KindCustomer,
			9999, 0, 0, []account.Transaction{tx}, 1)
		require.NoError(t, err)

		assert.ErrorIs(t, w.Replay(), errs.ErrLedgerInconsistent)
	})
}

func TestRestoreWallet(t *testing.T) {
	owner := kernel.NewUUID()
	tx := account.RestoreTransaction(kernel.NewUUID(), account.TransactionCredit,
		500, "Top-up", nil, postedAt(), 500)

	w, err := account.RestoreWallet(kernel.NewUUID(), owner, account.KindDriver,
		500, 500, 0, []account.Transaction{tx}, 7)
	require.NoError(t, err)

	assert.NoError(t, w.Validate())
	assert.Equal(t, owner, w.OwnerID())
	assert.Equal(t, 7, w.Version())
	assert.InDelta(t, 500.0, w.Balance(), 1e-9)
	require.Len(t, w.Transactions(), 1)

	// Restored wallets keep posting.
	require.NoError(t, w.Debit(200, "Payment", nil))
	assert.InDelta(t, 300.0, w.Balance(), 1e-9)
	assert.Len(t, w.Transactions(), 2)
}
