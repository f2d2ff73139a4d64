package delivery_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetops/internal/core/domain/model/delivery"
	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/pkg/errs"
)

func mustAddress(t *testing.T, street string, lat, lng float64) kernel.Address {
	t.Helper()
	point, err := kernel.NewGeoPoint(lat, lng)
	require.NoError(t, err)
	addr, err := kernel.NewAddress(street, point)
	require.NoError(t, err)
	return addr
}

func bookDelivery(t *testing.T, customerID kernel.UUID) *delivery.Delivery {
	t.Helper()
	d, err := delivery.NewDelivery(
		kernel.NewUUID(),
		customerID,
		mustAddress(t, "12 Dock Rd", 51.5074, -0.1278),
		mustAddress(t, "7 Harbour Ln", 51.5155, -0.0922),
		delivery.PackageDetails{WeightKg: 10, Description: "Spare parts", Cluster: delivery.ClusterMedium},
		20,
		"+44 20 7946 0000",
		"Ring the bell twice",
	)
	require.NoError(t, err)
	return d
}

// assignedDelivery walks a fresh booking to Assigned and returns the driver
// and vehicle ids used.
func assignedDelivery(t *testing.T, customerID kernel.UUID) (*delivery.Delivery, kernel.UUID, kernel.UUID) {
	t.Helper()
	d := bookDelivery(t, customerID)
	admin := kernel.NewUUID()
	driver := kernel.NewUUID()
	vehicle := kernel.NewUUID()
	require.NoError(t, d.Approve(admin))
	require.NoError(t, d.Assign(admin, driver, vehicle, 20, "Assigned"))
	return d, driver, vehicle
}

func TestNewDelivery(t *testing.T) {
	customer := kernel.NewUUID()

	t.Run("books pending with initial history", func(t *testing.T) {
		d := bookDelivery(t, customer)

		assert.NoError(t, d.Validate())
		assert.Equal(t, delivery.Pending, d.Status())
		assert.Equal(t, customer, d.CustomerID())
		assert.False(t, d.AdminApproved())
		assert.Nil(t, d.AssignedDriver())
		assert.Regexp(t, `^DEL-\d+-[0-9A-F]{6}$`, d.Reference())

		require.Len(t, d.History(), 1)
		assert.Equal(t, delivery.Pending, d.History()[0].Status())
		assert.Equal(t, customer, d.History()[0].Actor())
	})

	t.Run("prices the booking at creation", func(t *testing.T) {
		d := bookDelivery(t, customer)

		assert.InDelta(t, 360.0, d.Pricing().TotalPrice(), 1e-9)
		assert.InDelta(t, 252.0, d.Earnings().Net(), 1e-9)
		assert.Equal(t, delivery.PaymentPending, d.PaymentStatus())
	})

	t.Run("rejects invalid bookings", func(t *testing.T) {
		pickup := mustAddress(t, "12 Dock Rd", 51.5, -0.1)
		drop := mustAddress(t, "7 Harbour Ln", 51.6, -0.2)
		pkg := delivery.PackageDetails{WeightKg: 10, Cluster: delivery.ClusterSmall}

		_, err := delivery.NewDelivery(kernel.NewUUID(), customer, pickup, drop,
			delivery.PackageDetails{WeightKg: 0}, 20, "+44", "")
		assert.ErrorIs(t, err, delivery.ErrWeightIsInvalid)

		_, err = delivery.NewDelivery(kernel.NewUUID(), customer, pickup, drop, pkg, 0, "+44", "")
		assert.ErrorIs(t, err, delivery.ErrDistanceIsInvalid)

		_, err = delivery.NewDelivery(kernel.NewUUID(), customer, pickup, drop, pkg, 20, "", "")
		assert.ErrorIs(t, err, delivery.ErrContactNumberIsRequired)

		_, err = delivery.NewDelivery(kernel.NewUUID(), customer, kernel.Address{}, drop, pkg, 20, "+44", "")
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = delivery.NewDelivery(kernel.UUID{}, customer, pickup, drop, pkg, 20, "+44", "")
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("not constructed", func(t *testing.T) {
		var d delivery.Delivery
		assert.ErrorIs(t, d.Validate(), delivery.ErrDeliveryIsNotConstructed)
	})
}

func TestDeliveryAssign(t *testing.T) {
	customer := kernel.NewUUID()
	admin := kernel.NewUUID()

	t.Run("requires admin approval", func(t *testing.T) {
		d := bookDelivery(t, customer)
		err := d.Assign(admin, kernel.NewUUID(), kernel.NewUUID(), 20, "")
		assert.ErrorIs(t, err, delivery.ErrNotApproved)
		assert.Equal(t, delivery.Pending, d.Status())
	})

	t.Run("assigns driver and vehicle and reprices", func(t *testing.T) {
		d := bookDelivery(t, customer)
		driver := kernel.NewUUID()
		vehicle := kernel.NewUUID()
		require.NoError(t, d.Approve(admin))

		require.NoError(t, d.Assign(admin, driver, vehicle, 30, "First assignment"))

		assert.Equal(t, delivery.Assigned, d.Status())
		require.NotNil(t, d.AssignedDriver())
		assert.Equal(t, driver, *d.AssignedDriver())
		require.NotNil(t, d.AssignedVehicle())
		assert.Equal(t, vehicle, *d.AssignedVehicle())
		assert.False(t, d.DriverAccepted())

		// 50 + 10*10 + 30*8 + 50, repriced for the revised distance.
		assert.InDelta(t, 440.0, d.Pricing().TotalPrice(), 1e-9)
		assert.InDelta(t, 308.0, d.Earnings().Net(), 1e-9)
	})

	t.Run("reassignment resets driver acceptance", func(t *testing.T) {
		d, driver, _ := assignedDelivery(t, customer)
		require.NoError(t, d.Accept(driver))
		require.True(t, d.DriverAccepted())

		// Accepted cannot be reassigned directly.
		err := d.Assign(admin, kernel.NewUUID(), kernel.NewUUID(), 20, "")
		assert.ErrorIs(t, err, errs.ErrInvalidState)

		d2, _, _ := assignedDelivery(t, customer)
		newDriver := kernel.NewUUID()
		require.NoError(t, d2.Assign(admin, newDriver, kernel.NewUUID(), 20, "Reassigned"))
		assert.Equal(t, newDriver, *d2.AssignedDriver())
		assert.False(t, d2.DriverAccepted())
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		d := bookDelivery(t, customer)
		require.NoError(t, d.Approve(admin))

		err := d.Assign(admin, kernel.UUID{}, kernel.NewUUID(), 20, "")
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)

		err = d.Assign(admin, kernel.NewUUID(), kernel.NewUUID(), -1, "")
		assert.ErrorIs(t, err, delivery.ErrDistanceIsInvalid)
	})
}

func TestDeliveryDriverTransitions(t *testing.T) {
	customer := kernel.NewUUID()

	t.Run("only the assigned driver may act", func(t *testing.T) {
		d, _, _ := assignedDelivery(t, customer)
		stranger := kernel.NewUUID()

		assert.ErrorIs(t, d.Accept(stranger), errs.ErrNotAuthorized)
		assert.ErrorIs(t, d.Start(stranger), errs.ErrNotAuthorized)
		assert.ErrorIs(t, d.Complete(stranger), errs.ErrNotAuthorized)
		assert.Equal(t, delivery.Assigned, d.Status())
	})

	t.Run("unassigned delivery has no driver to act", func(t *testing.T) {
		d := bookDelivery(t, customer)
		assert.ErrorIs(t, d.Accept(kernel.NewUUID()), delivery.ErrNoDriverAssigned)
	})

	t.Run("happy path to delivered", func(t *testing.T) {
		d, driver, _ := assignedDelivery(t, customer)

		require.NoError(t, d.Accept(driver))
		assert.True(t, d.DriverAccepted())

		require.NoError(t, d.Start(driver))
		assert.Equal(t, delivery.OnRoute, d.Status())
		require.NotNil(t, d.StartTime())

		require.NoError(t, d.Complete(driver))
		assert.Equal(t, delivery.Delivered, d.Status())
		require.NotNil(t, d.EndTime())
		assert.Equal(t, delivery.PaymentPaid, d.PaymentStatus())
		assert.True(t, d.Earnings().PaidToDriver())
		require.NotNil(t, d.Earnings().PaidAt())

		// Pending, Approved, Assigned, Accepted, On Route, Delivered.
		require.Len(t, d.History(), 6)
		assert.Equal(t, delivery.Delivered, d.History()[5].Status())
	})

	t.Run("reject returns delivery to the pool", func(t *testing.T) {
		d, driver, _ := assignedDelivery(t, customer)

		require.NoError(t, d.Reject(driver, "vehicle breakdown"))

		assert.Equal(t, delivery.Rejected, d.Status())
		assert.Nil(t, d.AssignedDriver())
		assert.Nil(t, d.AssignedVehicle())
		assert.Equal(t, "vehicle breakdown", d.DriverRejectedReason())

		// Rejected deliveries can be assigned again.
		admin := kernel.NewUUID()
		require.NoError(t, d.Assign(admin, kernel.NewUUID(), kernel.NewUUID(), 20, "Retry"))
		assert.Equal(t, delivery.Assigned, d.Status())
		assert.Empty(t, d.DriverRejectedReason())
	})
}

func TestDeliveryCancel(t *testing.T) {
	customer := kernel.NewUUID()

	t.Run("refund fractions by status", func(t *testing.T) {
		// Booking total is 360 throughout.
		t.Run("pending refunds in full", func(t *testing.T) {
			d := bookDelivery(t, customer)
			require.NoError(t, d.Cancel(customer, "changed my mind", true))

			require.NotNil(t, d.Cancellation())
			assert.InDelta(t, 360.0, d.Cancellation().RefundAmount(), 1e-9)
			assert.Equal(t, delivery.RefundPending, d.Cancellation().RefundStatus())
		})

		t.Run("accepted refunds 80 percent", func(t *testing.T) {
			d, driver, _ := assignedDelivery(t, customer)
			require.NoError(t, d.Accept(driver))
			require.NoError(t, d.Cancel(customer, "no longer needed", true))

			assert.InDelta(t, 288.0, d.Cancellation().RefundAmount(), 1e-9)
		})

		t.Run("on route refunds half", func(t *testing.T) {
			d, driver, _ := assignedDelivery(t, customer)
			require.NoError(t, d.Accept(driver))
			require.NoError(t, d.Start(driver))
			require.NoError(t, d.Cancel(customer, "wrong address", true))

			assert.InDelta(t, 180.0, d.Cancellation().RefundAmount(), 1e-9)
		})
	})

	t.Run("unpaid cancellation owes nothing", func(t *testing.T) {
		d := bookDelivery(t, customer)
		require.NoError(t, d.Cancel(customer, "duplicate booking", false))

		require.NotNil(t, d.Cancellation())
		assert.Zero(t, d.Cancellation().RefundAmount())
		assert.Equal(t, delivery.RefundNone, d.Cancellation().RefundStatus())
	})

	t.Run("terminal deliveries cannot be cancelled", func(t *testing.T) {
		d, driver, _ := assignedDelivery(t, customer)
		require.NoError(t, d.Accept(driver))
		require.NoError(t, d.Start(driver))
		require.NoError(t, d.Complete(driver))

		assert.ErrorIs(t, d.Cancel(customer, "too late", true), errs.ErrInvalidState)
	})

	t.Run("refund settlement marks", func(t *testing.T) {
		d := bookDelivery(t, customer)

		assert.Error(t, d.MarkRefundProcessed())

		require.NoError(t, d.Cancel(customer, "changed my mind", true))
		require.NoError(t, d.MarkRefundFailed())
		assert.Equal(t, delivery.RefundFailed, d.Cancellation().RefundStatus())
		require.NoError(t, d.MarkRefundProcessed())
		assert.Equal(t, delivery.RefundProcessed, d.Cancellation().RefundStatus())
	})
}

func TestDeliveryRate(t *testing.T) {
	customer := kernel.NewUUID()

	delivered := func(t *testing.T) *delivery.Delivery {
		t.Helper()
		d, driver, _ := assignedDelivery(t, customer)
		require.NoError(t, d.Accept(driver))
		require.NoError(t, d.Start(driver))
		require.NoError(t, d.Complete(driver))
		return d
	}

	t.Run("customer rates once", func(t *testing.T) {
		d := delivered(t)

		require.NoError(t, d.Rate(customer, 4, "quick and careful"))
		require.NotNil(t, d.Rating())
		assert.Equal(t, 4, d.Rating().Stars())

		assert.ErrorIs(t, d.Rate(customer, 5, "even better"), delivery.ErrAlreadyRated)
		assert.Equal(t, 4, d.Rating().Stars())
	})

	t.Run("only the customer may rate", func(t *testing.T) {
		d := delivered(t)
		assert.ErrorIs(t, d.Rate(kernel.NewUUID(), 5, ""), errs.ErrNotAuthorized)
	})

	t.Run("only delivered shipments", func(t *testing.T) {
		d := bookDelivery(t, customer)
		assert.ErrorIs(t, d.Rate(customer, 5, ""), errs.ErrInvalidState)
	})

	t.Run("stars bounds", func(t *testing.T) {
		d := delivered(t)
		assert.ErrorIs(t, d.Rate(customer, 0, ""), errs.ErrValueIsOutOfRange)
		assert.ErrorIs(t, d.Rate(customer, 6, ""), errs.ErrValueIsOutOfRange)
		assert.Nil(t, d.Rating())
	})
}

func TestDeliveryPaymentAndLocation(t *testing.T) {
	customer := kernel.NewUUID()

	t.Run("mark paid", func(t *testing.T) {
		d := bookDelivery(t, customer)

		require.NoError(t, d.MarkPaid(delivery.PaymentMethodWallet))
		assert.Equal(t, delivery.PaymentPaid, d.PaymentStatus())
		assert.Equal(t, delivery.PaymentMethodWallet, d.PaymentMethod())
		require.NotNil(t, d.PaidAt())

		assert.ErrorIs(t, d.MarkPaid(delivery.PaymentMethodCard), delivery.ErrAlreadyPaid)
	})

	t.Run("location updates do not touch status", func(t *testing.T) {
		d, driver, _ := assignedDelivery(t, customer)
		require.NoError(t, d.Accept(driver))
		require.NoError(t, d.Start(driver))

		point, err := kernel.NewGeoPoint(51.51, -0.1)
		require.NoError(t, err)
		require.NoError(t, d.UpdateLocation(driver, point))

		require.NotNil(t, d.CurrentLocation())
		assert.Equal(t, point, d.CurrentLocation().Point)
		assert.Equal(t, delivery.OnRoute, d.Status())

		assert.ErrorIs(t, d.UpdateLocation(kernel.NewUUID(), point), errs.ErrNotAuthorized)
	})
}

func TestRestoreDelivery(t *testing.T) {
	customer := kernel.NewUUID()

	t.Run("round trip", func(t *testing.T) {
		original, driver, vehicle := assignedDelivery(t, customer)

		restored, err := delivery.RestoreDelivery(delivery.Snapshot{
			ID:                  original.ID(),
			Reference:           original.Reference(),
			CustomerID:          original.CustomerID(),
			Pickup:              original.Pickup(),
			Drop:                original.Drop(),
			Package:             original.Package(),
			Contact:             original.Contact(),
			EstimatedDistanceKm: original.EstimatedDistanceKm(),
			AssignedDriverID:    &driver,
			AssignedVehicleID:   &vehicle,
			Status:              original.Status(),
			AdminApproved:       true,
			Pricing:             original.Pricing(),
			Earnings:            original.Earnings(),
			History:             original.History(),
			Version:             3,
		})
		require.NoError(t, err)

		assert.NoError(t, restored.Validate())
		assert.True(t, restored.IsEqual(original))
		assert.Equal(t, delivery.Assigned, restored.Status())
		assert.Equal(t, 3, restored.Version())

		// Restored aggregates accept transitions.
		require.NoError(t, restored.Accept(driver))
		assert.Equal(t, delivery.Accepted, restored.Status())
	})

	t.Run("rejects invalid snapshots", func(t *testing.T) {
		_, err := delivery.RestoreDelivery(delivery.Snapshot{
			ID:         kernel.NewUUID(),
			CustomerID: kernel.NewUUID(),
			Status:     delivery.Unknown,
		})
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = delivery.RestoreDelivery(delivery.Snapshot{
			CustomerID: kernel.NewUUID(),
			Status:     delivery.Pending,
		})
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}
