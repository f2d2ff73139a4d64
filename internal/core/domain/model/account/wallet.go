package account

import (
	"errors"
	"math"
	"time"

	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/pkg/errs"
	"fleetops/internal/pkg/guard"
)

// Domain errors for wallet operations.
var (
	// ErrWalletIsNotConstructed is returned when a Wallet bypassed NewWallet.
	ErrWalletIsNotConstructed = errors.New("Wallet must be created via NewWallet constructor")
	// ErrAmountIsInvalid is returned for non-positive posting amounts.
	ErrAmountIsInvalid = errors.New("amount must be greater than 0")
)

// balanceTolerance absorbs float accumulation noise during replay checks.
const balanceTolerance = 1e-6

// Kind distinguishes the three wallet owners on the platform.
type Kind int

const (
	KindUnknown Kind = iota
	KindCustomer
	KindDriver
	// KindPlatform is the single commission-collecting platform wallet.
	KindPlatform
)

// ParseKind maps the wire representation to a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "Customer":
		return KindCustomer, nil
	case "Driver":
		return KindDriver, nil
	case "Platform":
		return KindPlatform, nil
	default:
		return KindUnknown, errs.NewValueIsInvalidError("kind")
	}
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindCustomer:
		return "Customer"
	case KindDriver:
		return "Driver"
	case KindPlatform:
		return "Platform"
	default:
		return "Unknown"
	}
}

// Validate checks that the kind is one of the defined wallet kinds.
func (k Kind) Validate() error {
	if k <= KindUnknown || k > KindPlatform {
		return errs.NewValueIsInvalidError("walletKind")
	}
	return nil
}

// Wallet is the ledger aggregate for one owner. All balance changes go
// through posting methods; each posting validates its precondition, applies
// the signed amount, stamps balanceAfter and appends to the transaction list.
// A failed posting leaves the wallet untouched.
type Wallet struct {
	id      kernel.UUID
	ownerID kernel.UUID
	kind    Kind

	balance float64
	// totalEarnings accumulates gross credited earnings for driver wallets.
	totalEarnings float64
	// totalRevenue accumulates commission for the platform wallet.
	totalRevenue float64

	transactions []Transaction

	version int
	guard   guard.ConstructorGuard
}

// NewWallet opens an empty wallet for an owner.
func NewWallet(id, ownerID kernel.UUID, kind Kind) (*Wallet, error) {
	if err := errors.Join(id.Validate(), ownerID.Validate(), kind.Validate()); err != nil {
		return nil, err
	}

	return &Wallet{
		id:      id,
		ownerID: ownerID,
		kind:    kind,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// RestoreWallet reconstructs a wallet from persistent storage. Transactions
// must be supplied in posting order.
func RestoreWallet(
	id, ownerID kernel.UUID,
	kind Kind,
	balance, totalEarnings, totalRevenue float64,
	transactions []Transaction,
	version int,
) (*Wallet, error) {
	if err := errors.Join(id.Validate(), ownerID.Validate(), kind.Validate()); err != nil {
		return nil, err
	}

	return &Wallet{
		id:            id,
		ownerID:       ownerID,
		kind:          kind,
		balance:       balance,
		totalEarnings: totalEarnings,
		totalRevenue:  totalRevenue,
		transactions:  transactions,
		version:       version,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the wallet was constructed through NewWallet or
// RestoreWallet.
func (w *Wallet) Validate() error {
	if w == nil {
		return ErrWalletIsNotConstructed
	}
	return w.guard.Validate(ErrWalletIsNotConstructed)
}

// IsEqual compares two wallets by identity.
func (w *Wallet) IsEqual(other *Wallet) bool {
	return other != nil && w.id.IsEqual(other.id)
}

// Accessors.

func (w *Wallet) ID() kernel.UUID             { return w.id }
func (w *Wallet) OwnerID() kernel.UUID        { return w.ownerID }
func (w *Wallet) Kind() Kind                  { return w.kind }
func (w *Wallet) Balance() float64            { return w.balance }
func (w *Wallet) TotalEarnings() float64      { return w.totalEarnings }
func (w *Wallet) TotalRevenue() float64       { return w.totalRevenue }
func (w *Wallet) Transactions() []Transaction { return w.transactions }
func (w *Wallet) Version() int                { return w.version }

// Credit adds money to the wallet: top-ups, received delivery payments and
// driver earnings. Driver wallets accumulate totalEarnings.
func (w *Wallet) Credit(amount float64, description string, deliveryRef *kernel.UUID) error {
	if err := w.post(TransactionCredit, amount, description, deliveryRef); err != nil {
		return err
	}
	if w.kind == KindDriver {
		w.totalEarnings += amount
	}
	return nil
}

// CreditRevenue adds commission to the platform wallet, accumulating
// totalRevenue.
func (w *Wallet) CreditRevenue(amount float64, description string, deliveryRef *kernel.UUID) error {
	if err := w.post(TransactionCredit, amount, description, deliveryRef); err != nil {
		return err
	}
	w.totalRevenue += amount
	return nil
}

// Debit removes money to pay for a delivery. Fails before posting when the
// balance does not cover the amount; no overdraft.
func (w *Wallet) Debit(amount float64, description string, deliveryRef *kernel.UUID) error {
	return w.post(TransactionDebit, amount, description, deliveryRef)
}

// Refund returns money after a cancellation.
func (w *Wallet) Refund(amount float64, description string, deliveryRef *kernel.UUID) error {
	return w.post(TransactionRefund, amount, description, deliveryRef)
}

// Withdraw takes money out of the platform. Fails before posting when the
// balance does not cover the amount.
func (w *Wallet) Withdraw(amount float64, description string) error {
	return w.post(TransactionWithdrawal, amount, description, nil)
}

// PayoutDebit removes accumulated driver earnings being paid out.
func (w *Wallet) PayoutDebit(amount float64, description string) error {
	return w.post(TransactionDriverPayout, amount, description, nil)
}

// Replay recomputes the balance from the transaction list and reports a
// ledger inconsistency when it disagrees with the stored balance.
func (w *Wallet) Replay() error {
	replayed := 0.0
	for _, tx := range w.transactions {
		replayed += tx.signed()
	}
	if math.Abs(replayed-w.balance) > balanceTolerance {
		return errs.NewLedgerInconsistencyError(
			w.ownerID.String(),
			"replayed balance does not match stored balance")
	}
	return nil
}

func (w *Wallet) post(txType TransactionType, amount float64, description string, deliveryRef *kernel.UUID) error {
	if amount <= 0 {
		return ErrAmountIsInvalid
	}
	if !txType.isCredit() && w.balance < amount {
		return errs.NewInsufficientBalanceError(w.balance, amount)
	}

	tx := Transaction{
		id:          kernel.NewUUID(),
		txType:      txType,
		amount:      amount,
		description: description,
		deliveryRef: deliveryRef,
		at:          time.Now(),
	}

	w.balance += tx.signed()
	tx.balanceAfter = w.balance
	w.transactions = append(w.transactions, tx)
	return nil
}
