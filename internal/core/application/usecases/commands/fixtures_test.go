package commands_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"fleetops/internal/core/domain/model/account"
	"fleetops/internal/core/domain/model/delivery"
	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/core/domain/model/user"
	"fleetops/internal/core/domain/model/vehicle"
)

func fixtureAddress(t *testing.T, street string) kernel.Address {
	t.Helper()
	point, err := kernel.NewGeoPoint(51.5, -0.12)
	require.NoError(t, err)
	addr, err := kernel.NewAddress(street, point)
	require.NoError(t, err)
	return addr
}

func fixtureAdmin(t *testing.T) *user.User {
	t.Helper()
	u, err := user.NewUser(kernel.NewUUID(), "Ops Admin", "ops@example.com", "", user.RoleAdmin)
	require.NoError(t, err)
	return u
}

func fixtureDriver(t *testing.T) *user.User {
	t.Helper()
	u, err := user.NewUser(kernel.NewUUID(), "Priya N", "priya@example.com", "", user.RoleDriver)
	require.NoError(t, err)
	return u
}

func fixtureCustomer(t *testing.T) *user.User {
	t.Helper()
	u, err := user.NewUser(kernel.NewUUID(), "Sam K", "sam@example.com", "", user.RoleCustomer)
	require.NoError(t, err)
	return u
}

func fixtureVehicle(t *testing.T) *vehicle.Vehicle {
	t.Helper()
	v, err := vehicle.NewVehicle(kernel.NewUUID(), "Van 7", "KA-01-AB-1234", "Van")
	require.NoError(t, err)
	return v
}

// fixtureBooking creates a Pending delivery for the customer with total
// price 360 (weight 10, distance 20, Medium).
func fixtureBooking(t *testing.T, customerID kernel.UUID) *delivery.Delivery {
	t.Helper()
	d, err := delivery.NewDelivery(
		kernel.NewUUID(),
		customerID,
		fixtureAddress(t, "12 Dock Rd"),
		fixtureAddress(t, "7 Harbour Ln"),
		delivery.PackageDetails{WeightKg: 10, Description: "Spare parts", Cluster: delivery.ClusterMedium},
		20,
		"+44 20 7946 0000",
		"",
	)
	require.NoError(t, err)
	return d
}

// fixtureOnRoute walks a booking to On Route with the given driver and
// vehicle holding it.
func fixtureOnRoute(t *testing.T, customerID, driverID, vehicleID kernel.UUID) *delivery.Delivery {
	t.Helper()
	d := fixtureBooking(t, customerID)
	admin := kernel.NewUUID()
	require.NoError(t, d.Approve(admin))
	require.NoError(t, d.Assign(admin, driverID, vehicleID, 20, ""))
	require.NoError(t, d.Accept(driverID))
	require.NoError(t, d.Start(driverID))
	return d
}

func fixtureWallet(t *testing.T, ownerID kernel.UUID, kind account.Kind, balance float64) *account.Wallet {
	t.Helper()
	w, err := account.NewWallet(kernel.NewUUID(), ownerID, kind)
	require.NoError(t, err)
	if balance > 0 {
		require.NoError(t, w.Credit(balance, "Opening balance", nil))
	}
	return w
}
