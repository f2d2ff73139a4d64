// Package vehicle contains the Vehicle aggregate. A vehicle is a fleet
// resource held by at most one active delivery at a time; the hold itself is
// enforced by the resource coordinator, the aggregate only tracks its own
// status and position.
package vehicle

import (
	"errors"
	"strings"

	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/pkg/errs"
	"fleetops/internal/pkg/guard"
)

// Domain errors for vehicle operations.
var (
	// ErrVehicleIsNotConstructed is returned when a Vehicle bypassed NewVehicle.
	ErrVehicleIsNotConstructed = errors.New("Vehicle must be created via NewVehicle constructor")
)

// Status is the operational state of a vehicle.
type Status int

const (
	StatusUnknown Status = iota
	// StatusAvailable means the vehicle can be assigned to a delivery.
	StatusAvailable
	// StatusAssigned means an active delivery holds the vehicle.
	StatusAssigned
	// StatusOnRoute means the holding delivery is in transit.
	StatusOnRoute
	// StatusMaintenance and StatusOutOfService take the vehicle out of the
	// assignable pool.
	StatusMaintenance
	StatusOutOfService
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case StatusAvailable:
		return "Available"
	case StatusAssigned:
		return "Assigned"
	case StatusOnRoute:
		return "On Route"
	case StatusMaintenance:
		return "Maintenance"
	case StatusOutOfService:
		return "Out of Service"
	default:
		return "Unknown"
	}
}

// Validate checks that the status is one of the defined states.
func (s Status) Validate() error {
	if s <= StatusUnknown || s > StatusOutOfService {
		return errs.NewValueIsInvalidError("vehicleStatus")
	}
	return nil
}

// IsAssignable reports whether the vehicle can be given to a delivery.
func (s Status) IsAssignable() bool {
	return s == StatusAvailable
}

// Vehicle is the aggregate root for one fleet vehicle.
type Vehicle struct {
	id       kernel.UUID
	name     string
	plate    string
	kind     string
	status   Status
	location kernel.GeoPoint

	version int
	guard   guard.ConstructorGuard
}

// NewVehicle registers a new vehicle in the fleet, starting Available.
// The plate is normalized to upper case; uniqueness is enforced by storage.
func NewVehicle(id kernel.UUID, name, plate, kind string) (*Vehicle, error) {
	v := &Vehicle{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		v.setID(id),
		v.setName(name),
		v.setPlate(plate),
	); err != nil {
		return nil, err
	}

	v.kind = kind
	v.status = StatusAvailable
	return v, nil
}

// RestoreVehicle reconstructs a vehicle from persistent storage.
func RestoreVehicle(id kernel.UUID, name, plate, kind string, status Status, location kernel.GeoPoint, version int) (*Vehicle, error) {
	if err := errors.Join(id.Validate(), status.Validate()); err != nil {
		return nil, err
	}

	return &Vehicle{
		id:       id,
		name:     name,
		plate:    plate,
		kind:     kind,
		status:   status,
		location: location,
		version:  version,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the vehicle was constructed through NewVehicle or
// RestoreVehicle.
func (v *Vehicle) Validate() error {
	if v == nil {
		return ErrVehicleIsNotConstructed
	}
	return v.guard.Validate(ErrVehicleIsNotConstructed)
}

// IsEqual compares two vehicles by identity.
func (v *Vehicle) IsEqual(other *Vehicle) bool {
	return other != nil && v.id.IsEqual(other.id)
}

// Accessors.

func (v *Vehicle) ID() kernel.UUID           { return v.id }
func (v *Vehicle) Name() string              { return v.name }
func (v *Vehicle) Plate() string             { return v.plate }
func (v *Vehicle) Kind() string              { return v.kind }
func (v *Vehicle) Status() Status            { return v.status }
func (v *Vehicle) Location() kernel.GeoPoint { return v.location }
func (v *Vehicle) Version() int              { return v.version }

// MarkAssigned records a delivery taking hold of the vehicle.
func (v *Vehicle) MarkAssigned() error {
	if !v.status.IsAssignable() && v.status != StatusOnRoute && v.status != StatusAssigned {
		return errs.NewInvalidStateError("assign vehicle", v.status.String())
	}
	v.status = StatusAssigned
	return nil
}

// MarkOnRoute records the holding delivery moving. Both acceptance and the
// trip start put the vehicle on route, so OnRoute -> OnRoute is allowed.
func (v *Vehicle) MarkOnRoute() error {
	if v.status != StatusAssigned && v.status != StatusOnRoute {
		return errs.NewInvalidStateError("start vehicle", v.status.String())
	}
	v.status = StatusOnRoute
	return nil
}

// Release returns the vehicle to the assignable pool after the holding
// delivery reaches a terminal status or is rejected.
func (v *Vehicle) Release() error {
	if v.status != StatusAssigned && v.status != StatusOnRoute {
		return errs.NewInvalidStateError("release vehicle", v.status.String())
	}
	v.status = StatusAvailable
	return nil
}

// StartMaintenance takes an idle vehicle out of the pool.
func (v *Vehicle) StartMaintenance() error {
	if v.status == StatusAssigned || v.status == StatusOnRoute {
		return errs.NewInvalidStateError("start maintenance", v.status.String())
	}
	v.status = StatusMaintenance
	return nil
}

// Decommission takes the vehicle permanently out of service.
func (v *Vehicle) Decommission() error {
	if v.status == StatusAssigned || v.status == StatusOnRoute {
		return errs.NewInvalidStateError("decommission", v.status.String())
	}
	v.status = StatusOutOfService
	return nil
}

// ReturnToService brings a maintained or decommissioned vehicle back.
func (v *Vehicle) ReturnToService() error {
	if v.status != StatusMaintenance && v.status != StatusOutOfService {
		return errs.NewInvalidStateError("return to service", v.status.String())
	}
	v.status = StatusAvailable
	return nil
}

// UpdateLocation records the vehicle's current position. Independent of the
// delivery lifecycle.
func (v *Vehicle) UpdateLocation(point kernel.GeoPoint) {
	v.location = point
}

func (v *Vehicle) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	v.id = id
	return nil
}

func (v *Vehicle) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	v.name = name
	return nil
}

func (v *Vehicle) setPlate(plate string) error {
	plate = strings.ToUpper(strings.TrimSpace(plate))
	if plate == "" {
		return errs.NewValueIsRequiredError("plateNumber")
	}
	v.plate = plate
	return nil
}
