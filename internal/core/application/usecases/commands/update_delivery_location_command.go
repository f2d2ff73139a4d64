package commands

import (
	"errors"

	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/pkg/guard"
)

var ErrUpdateDeliveryLocationCommandIsNotConstructed = errors.New(
	"UpdateDeliveryLocationCommand must be created via NewUpdateDeliveryLocationCommand constructor",
)

// UpdateDeliveryLocationCommand represents the driver reporting a live
// position for a delivery in transit.
type UpdateDeliveryLocationCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	driverID   kernel.UUID
	point      kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewUpdateDeliveryLocationCommand creates a command to update a delivery's
// live location.
func NewUpdateDeliveryLocationCommand(deliveryID, driverID kernel.UUID, lat, lng float64) (UpdateDeliveryLocationCommand, error) {
	cmd := UpdateDeliveryLocationCommand{
		guard: guard.NewConstructorGuard(),
	}

	point, err := kernel.NewGeoPoint(lat, lng)
	if err != nil {
		return UpdateDeliveryLocationCommand{}, err
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setDriverID(driverID),
	); err != nil {
		return UpdateDeliveryLocationCommand{}, err
	}

	cmd.point = point
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateDeliveryLocationCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDeliveryLocationCommandIsNotConstructed)
}

// DeliveryID returns the delivery being tracked.
func (c UpdateDeliveryLocationCommand) DeliveryID() kernel.UUID { return c.deliveryID }

// DriverID returns the reporting driver.
func (c UpdateDeliveryLocationCommand) DriverID() kernel.UUID { return c.driverID }

// Point returns the reported position.
func (c UpdateDeliveryLocationCommand) Point() kernel.GeoPoint { return c.point }

func (c *UpdateDeliveryLocationCommand) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.deliveryID = id
	return nil
}

func (c *UpdateDeliveryLocationCommand) setDriverID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.driverID = id
	return nil
}
