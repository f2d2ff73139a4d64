package services

import (
	"errors"

	"fleetops/internal/core/domain/model/delivery"
	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/core/domain/model/user"
	"fleetops/internal/core/domain/model/vehicle"
	"fleetops/internal/pkg/errs"
)

// ErrInvalidDriver is returned when the candidate is not an active,
// assignable driver.
var ErrInvalidDriver = errors.New("driver cannot take deliveries")

// ErrInvalidVehicle is returned when the candidate vehicle is not in an
// assignable status.
var ErrInvalidVehicle = errors.New("vehicle is not assignable")

// ResourceCoordinator is a domain service that keeps drivers and vehicles
// exclusively held: at most one active delivery (Assigned, Accepted or On
// Route) may hold a given driver or vehicle at a time.
//
// The coordinator carries no state of its own. Callers load the candidate
// driver, vehicle and the current set of active deliveries inside one
// unit-of-work transaction and pass them in; the coordinator only decides.
//
// Reassignment is the one sanctioned overlap: when the delivery being
// assigned is itself the active holder, its old vehicle is released and the
// new resources are taken in the same decision.
type ResourceCoordinator struct{}

// NewResourceCoordinator creates a new ResourceCoordinator instance.
func NewResourceCoordinator() ResourceCoordinator {
	return ResourceCoordinator{}
}

// Allocation is the outcome of a successful assignment decision.
type Allocation struct {
	// ReleasedVehicleID is the vehicle freed by a reassignment, nil when the
	// delivery held none or keeps the same vehicle.
	ReleasedVehicleID *kernel.UUID
}

// Allocate validates that the driver and vehicle can be given to the
// delivery and marks the vehicle held. active must contain every delivery
// currently in a holding status; the delivery being assigned may be among
// them (reassignment).
//
// Returns a resource-conflict error when another active delivery already
// holds the driver or the vehicle, ErrInvalidDriver when the driver cannot
// take work, and ErrInvalidVehicle when the vehicle is not assignable.
func (c ResourceCoordinator) Allocate(
	d *delivery.Delivery,
	driver *user.User,
	veh *vehicle.Vehicle,
	active []*delivery.Delivery,
) (Allocation, error) {
	if err := d.Validate(); err != nil {
		return Allocation{}, err
	}
	if !driver.IsAssignableDriver() {
		return Allocation{}, ErrInvalidDriver
	}

	for _, other := range active {
		if other.IsEqual(d) || !other.IsActive() {
			continue
		}
		if holds(other.AssignedDriver(), driver.ID()) {
			return Allocation{}, errs.NewResourceConflictError("driver", driver.ID().String())
		}
		if holds(other.AssignedVehicle(), veh.ID()) {
			return Allocation{}, errs.NewResourceConflictError("vehicle", veh.ID().String())
		}
	}

	prev := d.AssignedVehicle()
	sameVehicle := prev != nil && prev.IsEqual(veh.ID())

	// A reassignment keeping the vehicle re-marks an already held vehicle,
	// which MarkAssigned permits. Any other assignment needs a free vehicle.
	if !sameVehicle && !veh.Status().IsAssignable() {
		return Allocation{}, ErrInvalidVehicle
	}
	if err := veh.MarkAssigned(); err != nil {
		return Allocation{}, ErrInvalidVehicle
	}

	var released *kernel.UUID
	if prev != nil && !sameVehicle {
		released = prev
	}

	return Allocation{ReleasedVehicleID: released}, nil
}

// Release frees the vehicle held by a delivery that left its holding status
// (delivered, cancelled or rejected). Releasing an already free vehicle is
// not an error; terminal cleanup must be idempotent.
func (c ResourceCoordinator) Release(veh *vehicle.Vehicle) error {
	if veh == nil {
		return nil
	}
	if veh.Status() != vehicle.StatusAssigned && veh.Status() != vehicle.StatusOnRoute {
		return nil
	}
	return veh.Release()
}

func holds(held *kernel.UUID, id kernel.UUID) bool {
	return held != nil && held.IsEqual(id)
}
