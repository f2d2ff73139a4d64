package delivery

import (
	"time"

	"fleetops/internal/core/domain/model/kernel"
)

// RefundStatus tracks the wallet posting produced by a cancellation.
// Pending and Failed refunds are picked up by the reconciliation job.
type RefundStatus int

const (
	RefundPending RefundStatus = iota
	RefundProcessed
	RefundFailed
	// RefundNone marks cancellations that owe no refund (unpaid bookings
	// or zero refund percentage).
	RefundNone
)

// String implements fmt.Stringer.
func (s RefundStatus) String() string {
	switch s {
	case RefundProcessed:
		return "Processed"
	case RefundFailed:
		return "Failed"
	case RefundNone:
		return "None"
	default:
		return "Pending"
	}
}

// Cancellation records who cancelled a delivery, why, and the refund owed.
type Cancellation struct {
	cancelledBy  kernel.UUID
	cancelledAt  time.Time
	reason       string
	refundAmount float64
	refundStatus RefundStatus
}

// RestoreCancellation rehydrates a cancellation record from persistence.
func RestoreCancellation(by kernel.UUID, at time.Time, reason string, refundAmount float64, refundStatus RefundStatus) Cancellation {
	return Cancellation{
		cancelledBy:  by,
		cancelledAt:  at,
		reason:       reason,
		refundAmount: refundAmount,
		refundStatus: refundStatus,
	}
}

// CancelledBy returns who requested the cancellation.
func (c Cancellation) CancelledBy() kernel.UUID { return c.cancelledBy }

// CancelledAt returns when the cancellation happened.
func (c Cancellation) CancelledAt() time.Time { return c.cancelledAt }

// Reason returns the free-text cancellation reason.
func (c Cancellation) Reason() string { return c.reason }

// RefundAmount returns the amount owed back to the customer.
func (c Cancellation) RefundAmount() float64 { return c.refundAmount }

// RefundStatus returns the state of the refund posting.
func (c Cancellation) RefundStatus() RefundStatus { return c.refundStatus }

// RefundPercentage returns the refund fraction owed when cancelling from the
// given status: the earlier in the lifecycle, the larger the refund.
func RefundPercentage(s Status) float64 {
	switch s {
	case Pending, Approved:
		return 1.0
	case Assigned:
		return 0.9
	case Accepted:
		return 0.8
	case OnRoute:
		return 0.5
	default:
		return 0
	}
}
