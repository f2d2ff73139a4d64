package delivery_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"fleetops/internal/core/domain/model/delivery"
	"fleetops/internal/pkg/errs"
)

func TestStatusString(t *testing.T) {
	tests := map[delivery.Status]string{
		delivery.Unknown:   "Unknown",
		delivery.Pending:   "Pending",
		delivery.Approved:  "Approved",
		delivery.Assigned:  "Assigned",
		delivery.Accepted:  "Accepted",
		delivery.OnRoute:   "On Route",
		delivery.Delivered: "Delivered",
		delivery.Cancelled: "Cancelled",
		delivery.Rejected:  "Rejected",
		delivery.Status(42): "Unknown",
	}

	for status, want := range tests {
		assert.Equal(t, want, status.String())
	}
}

func TestStatusValidate(t *testing.T) {
	assert.NoError(t, delivery.Pending.Validate())
	assert.NoError(t, delivery.Rejected.Validate())
	assert.ErrorIs(t, delivery.Unknown.Validate(), errs.ErrValueIsInvalid)
	assert.ErrorIs(t, delivery.Status(99).Validate(), errs.ErrValueIsInvalid)
}

func TestStatusIsTerminal(t *testing.T) {
	assert.True(t, delivery.Delivered.IsTerminal())
	assert.True(t, delivery.Cancelled.IsTerminal())
	assert.False(t, delivery.Pending.IsTerminal())
	assert.False(t, delivery.OnRoute.IsTerminal())
	assert.False(t, delivery.Rejected.IsTerminal())
}

func TestStatusTransitions(t *testing.T) {
	all := []delivery.Status{
		delivery.Pending, delivery.Approved, delivery.Assigned, delivery.Accepted,
		delivery.OnRoute, delivery.Delivered, delivery.Cancelled, delivery.Rejected,
	}

	transition := func(name string, apply func(delivery.Status) (delivery.Status, error),
		target delivery.Status, validFrom ...delivery.Status) {
		t.Run(name, func(t *testing.T) {
			valid := make(map[delivery.Status]bool)
			for _, s := range validFrom {
				valid[s] = true
			}

			for _, from := range all {
				got, err := apply(from)
				if valid[from] {
					assert.NoError(t, err, "from %s", from)
					assert.Equal(t, target, got, "from %s", from)
				} else {
					assert.ErrorIs(t, err, errs.ErrInvalidState, "from %s", from)
					assert.Equal(t, delivery.Unknown, got, "from %s", from)
				}
			}
		})
	}

	transition("approve", delivery.Status.Approve, delivery.Approved,
		delivery.Pending)
	transition("assign", delivery.Status.Assign, delivery.Assigned,
		delivery.Approved, delivery.Rejected, delivery.Assigned)
	transition("accept", delivery.Status.Accept, delivery.Accepted,
		delivery.Assigned)
	transition("reject", delivery.Status.Reject, delivery.Rejected,
		delivery.Assigned, delivery.Accepted, delivery.OnRoute)
	transition("start", delivery.Status.Start, delivery.OnRoute,
		delivery.Accepted)
	transition("complete", delivery.Status.Complete, delivery.Delivered,
		delivery.OnRoute)
	transition("cancel", delivery.Status.Cancel, delivery.Cancelled,
		delivery.Pending, delivery.Approved, delivery.Assigned,
		delivery.Accepted, delivery.OnRoute, delivery.Rejected)
}
