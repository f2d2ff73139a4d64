package delivery

import "fleetops/internal/pkg/errs"

// PaymentStatus tracks whether the customer has paid for the delivery.
type PaymentStatus int

const (
	PaymentPending PaymentStatus = iota
	PaymentPaid
	PaymentFailed
	PaymentRefunded
)

// String implements fmt.Stringer.
func (s PaymentStatus) String() string {
	switch s {
	case PaymentPaid:
		return "Paid"
	case PaymentFailed:
		return "Failed"
	case PaymentRefunded:
		return "Refunded"
	default:
		return "Pending"
	}
}

// PaymentMethod records how a delivery was paid for.
type PaymentMethod int

const (
	PaymentMethodUnset PaymentMethod = iota
	PaymentMethodCash
	PaymentMethodCard
	PaymentMethodWallet
	PaymentMethodUPI
)

// ParsePaymentMethod maps the wire representation to a PaymentMethod.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch s {
	case "Cash":
		return PaymentMethodCash, nil
	case "Card":
		return PaymentMethodCard, nil
	case "Wallet":
		return PaymentMethodWallet, nil
	case "UPI":
		return PaymentMethodUPI, nil
	default:
		return PaymentMethodUnset, errs.NewValueIsInvalidError("paymentMethod")
	}
}

// String implements fmt.Stringer.
func (m PaymentMethod) String() string {
	switch m {
	case PaymentMethodCash:
		return "Cash"
	case PaymentMethodCard:
		return "Card"
	case PaymentMethodWallet:
		return "Wallet"
	case PaymentMethodUPI:
		return "UPI"
	default:
		return ""
	}
}
