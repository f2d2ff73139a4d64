package delivery

import (
	"fleetops/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery.
//
// State transitions:
//
//	Pending ──> Approved ──> Assigned ──> Accepted ──> OnRoute ──> Delivered
//	                ▲            │ ▲  │
//	                │            └─┘  └──> Rejected ──┐
//	                └─────────────────────────────────┘
//	                          (re-assignment)
//
//	any non-terminal ──> Cancelled
//
// Delivered and Cancelled are terminal. Assigned -> Assigned is allowed for
// reassignment to a different driver or vehicle.
type Status int

const (
	// Unknown catches uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status of a customer booking awaiting approval.
	Pending

	// Approved means an admin has approved the booking for assignment.
	Approved

	// Assigned means a driver and vehicle have been allocated.
	Assigned

	// Accepted means the assigned driver has taken the job.
	Accepted

	// OnRoute means the driver has started the trip.
	OnRoute

	// Delivered is the terminal happy-path status.
	Delivered

	// Cancelled is terminal; reachable from any non-terminal status.
	Cancelled

	// Rejected means the assigned driver declined; the delivery returns to
	// the unassigned pool and may be re-assigned.
	Rejected
)

func statusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Pending:   "Pending",
		Approved:  "Approved",
		Assigned:  "Assigned",
		Accepted:  "Accepted",
		OnRoute:   "On Route",
		Delivered: "Delivered",
		Cancelled: "Cancelled",
		Rejected:  "Rejected",
	}
}

// String returns the human-readable status name, "Unknown" for invalid values.
func (s Status) String() string {
	if str, ok := statusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Validate checks that the status is one of the defined lifecycle states.
func (s Status) Validate() error {
	if s <= Unknown || s > Rejected {
		return errs.NewValueIsInvalidError("status")
	}
	return nil
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// Approve transitions Pending -> Approved.
func (s Status) Approve() (Status, error) {
	if s != Pending {
		return Unknown, errs.NewInvalidStateError("approve", s.String())
	}
	return Approved, nil
}

// Assign transitions to Assigned. Valid from Approved (first assignment),
// Rejected (re-assignment after a driver declined) and Assigned
// (reassignment to a different driver or vehicle).
func (s Status) Assign() (Status, error) {
	if s != Approved && s != Rejected && s != Assigned {
		return Unknown, errs.NewInvalidStateError("assign", s.String())
	}
	return Assigned, nil
}

// Accept transitions Assigned -> Accepted.
func (s Status) Accept() (Status, error) {
	if s != Assigned {
		return Unknown, errs.NewInvalidStateError("accept", s.String())
	}
	return Accepted, nil
}

// Reject transitions any pre-terminal assigned state to Rejected.
func (s Status) Reject() (Status, error) {
	if s.IsTerminal() || s == Pending || s == Approved || s == Rejected {
		return Unknown, errs.NewInvalidStateError("reject", s.String())
	}
	return Rejected, nil
}

// Start transitions Accepted -> OnRoute.
func (s Status) Start() (Status, error) {
	if s != Accepted {
		return Unknown, errs.NewInvalidStateError("start", s.String())
	}
	return OnRoute, nil
}

// Complete transitions OnRoute -> Delivered.
func (s Status) Complete() (Status, error) {
	if s != OnRoute {
		return Unknown, errs.NewInvalidStateError("complete", s.String())
	}
	return Delivered, nil
}

// Cancel transitions any non-terminal status to Cancelled.
func (s Status) Cancel() (Status, error) {
	if s.IsTerminal() {
		return Unknown, errs.NewInvalidStateError("cancel", s.String())
	}
	return Cancelled, nil
}
