package account

import (
	"time"

	"fleetops/internal/core/domain/model/kernel"
)

// TransactionType classifies a ledger posting. The type determines the sign
// applied to the amount: credits and refunds add to the balance, the rest
// subtract.
type TransactionType int

const (
	TransactionUnknown TransactionType = iota
	// TransactionCredit is money added to the wallet: top-ups, delivery
	// payments received and driver earnings.
	TransactionCredit
	// TransactionDebit is money leaving the wallet to pay for a delivery.
	TransactionDebit
	// TransactionRefund is money returned after a cancellation.
	TransactionRefund
	// TransactionWithdrawal is an owner taking money out of the platform.
	TransactionWithdrawal
	// TransactionDriverPayout is the platform paying out accumulated driver
	// earnings.
	TransactionDriverPayout
)

// String implements fmt.Stringer.
func (t TransactionType) String() string {
	switch t {
	case TransactionCredit:
		return "Credit"
	case TransactionDebit:
		return "Debit"
	case TransactionRefund:
		return "Refund"
	case TransactionWithdrawal:
		return "Withdrawal"
	case TransactionDriverPayout:
		return "DriverPayout"
	default:
		return "Unknown"
	}
}

// isCredit reports whether the type adds to the balance.
func (t TransactionType) isCredit() bool {
	return t == TransactionCredit || t == TransactionRefund
}

// Transaction is one immutable ledger entry.
type Transaction struct {
	id           kernel.UUID
	txType       TransactionType
	amount       float64
	description  string
	deliveryRef  *kernel.UUID
	at           time.Time
	balanceAfter float64
}

// RestoreTransaction rehydrates a ledger entry from persistence.
func RestoreTransaction(
	id kernel.UUID,
	txType TransactionType,
	amount float64,
	description string,
	deliveryRef *kernel.UUID,
	at time.Time,
	balanceAfter float64,
) Transaction {
	return Transaction{
		id:           id,
		txType:       txType,
		amount:       amount,
		description:  description,
		deliveryRef:  deliveryRef,
		at:           at,
		balanceAfter: balanceAfter,
	}
}

// ID returns the posting identifier.
func (t Transaction) ID() kernel.UUID { return t.id }

// Type returns the posting classification.
func (t Transaction) Type() TransactionType { return t.txType }

// Amount returns the unsigned posted amount.
func (t Transaction) Amount() float64 { return t.amount }

// Description returns the human-readable posting description.
func (t Transaction) Description() string { return t.description }

// DeliveryRef returns the related delivery, nil for top-ups and withdrawals.
func (t Transaction) DeliveryRef() *kernel.UUID { return t.deliveryRef }

// At returns the posting timestamp.
func (t Transaction) At() time.Time { return t.at }

// BalanceAfter returns the wallet balance immediately after this posting.
func (t Transaction) BalanceAfter() float64 { return t.balanceAfter }

// signed returns the amount with the sign the type applies to the balance.
func (t Transaction) signed() float64 {
	if t.txType.isCredit() {
		return t.amount
	}
	return -t.amount
}
