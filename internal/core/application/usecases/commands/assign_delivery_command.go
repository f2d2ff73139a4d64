package commands

import (
	"errors"

	"fleetops/internal/core/domain/model/delivery"
	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/pkg/guard"
)

var ErrAssignDeliveryCommandIsNotConstructed = errors.New(
	"AssignDeliveryCommand must be created via NewAssignDeliveryCommand constructor",
)

// AssignDeliveryCommand represents an admin allocating a driver and vehicle
// to an approved delivery. The revised distance triggers repricing.
type AssignDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	adminID    kernel.UUID
	driverID   kernel.UUID
	vehicleID  kernel.UUID
	distanceKm float64
	note       string

	guard guard.ConstructorGuard
}

// NewAssignDeliveryCommand creates a command to assign resources to a
// delivery.
func NewAssignDeliveryCommand(
	deliveryID, adminID, driverID, vehicleID kernel.UUID,
	distanceKm float64,
	note string,
) (AssignDeliveryCommand, error) {
	cmd := AssignDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setAdminID(adminID),
		cmd.setDriverID(driverID),
		cmd.setVehicleID(vehicleID),
		cmd.setDistance(distanceKm),
	); err != nil {
		return AssignDeliveryCommand{}, err
	}

	cmd.note = note
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrAssignDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the delivery being assigned.
func (c AssignDeliveryCommand) DeliveryID() kernel.UUID { return c.deliveryID }

// AdminID returns the assigning admin.
func (c AssignDeliveryCommand) AdminID() kernel.UUID { return c.adminID }

// DriverID returns the driver to allocate.
func (c AssignDeliveryCommand) DriverID() kernel.UUID { return c.driverID }

// VehicleID returns the vehicle to allocate.
func (c AssignDeliveryCommand) VehicleID() kernel.UUID { return c.vehicleID }

// DistanceKm returns the revised estimated distance.
func (c AssignDeliveryCommand) DistanceKm() float64 { return c.distanceKm }

// Note returns the optional assignment note.
func (c AssignDeliveryCommand) Note() string { return c.note }

func (c *AssignDeliveryCommand) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.deliveryID = id
	return nil
}

func (c *AssignDeliveryCommand) setAdminID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.adminID = id
	return nil
}

func (c *AssignDeliveryCommand) setDriverID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.driverID = id
	return nil
}

func (c *AssignDeliveryCommand) setVehicleID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.vehicleID = id
	return nil
}

func (c *AssignDeliveryCommand) setDistance(km float64) error {
	if km <= 0 {
		return delivery.ErrDistanceIsInvalid
	}
	c.distanceKm = km
	return nil
}
