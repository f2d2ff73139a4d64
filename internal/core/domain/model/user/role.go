package user

import (
	"fleetops/internal/pkg/errs"
)

// Role determines what a user may do on the platform.
type Role int

const (
	RoleUnknown Role = iota
	RoleAdmin
	RoleDriver
	RoleCustomer
)

// ParseRole maps the wire representation to a Role.
func ParseRole(s string) (Role, error) {
	switch s {
	case "Admin":
		return RoleAdmin, nil
	case "Driver":
		return RoleDriver, nil
	case "Customer":
		return RoleCustomer, nil
	default:
		return RoleUnknown, errs.NewValueIsInvalidError("role")
	}
}

// String implements fmt.Stringer.
func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "Admin"
	case RoleDriver:
		return "Driver"
	case RoleCustomer:
		return "Customer"
	default:
		return "Unknown"
	}
}

// Validate checks that the role is one of the defined roles.
func (r Role) Validate() error {
	if r <= RoleUnknown || r > RoleCustomer {
		return errs.NewValueIsInvalidError("role")
	}
	return nil
}

// DriverStatus is the working state of a driver, independent of any single
// delivery.
type DriverStatus int

const (
	DriverUnknown DriverStatus = iota
	DriverActive
	DriverOnLeave
	DriverSuspended
	DriverInactive
)

// String implements fmt.Stringer.
func (s DriverStatus) String() string {
	switch s {
	case DriverActive:
		return "Active"
	case DriverOnLeave:
		return "On Leave"
	case DriverSuspended:
		return "Suspended"
	case DriverInactive:
		return "Inactive"
	default:
		return "Unknown"
	}
}

// Validate checks that the status is one of the defined driver states.
func (s DriverStatus) Validate() error {
	if s <= DriverUnknown || s > DriverInactive {
		return errs.NewValueIsInvalidError("driverStatus")
	}
	return nil
}
