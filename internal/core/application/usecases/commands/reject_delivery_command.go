package commands

import (
	"errors"

	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/pkg/guard"
)

var ErrRejectDeliveryCommandIsNotConstructed = errors.New(
	"RejectDeliveryCommand must be created via NewRejectDeliveryCommand constructor",
)

// RejectDeliveryCommand represents the assigned driver declining the job.
// The delivery returns to the unassigned pool and the held vehicle is
// released.
type RejectDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	driverID   kernel.UUID
	reason     string

	guard guard.ConstructorGuard
}

// NewRejectDeliveryCommand creates a command for a driver to reject an
// assigned delivery.
func NewRejectDeliveryCommand(deliveryID, driverID kernel.UUID, reason string) (RejectDeliveryCommand, error) {
	cmd := RejectDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setDriverID(driverID),
	); err != nil {
		return RejectDeliveryCommand{}, err
	}

	cmd.reason = reason
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RejectDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrRejectDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the delivery being rejected.
func (c RejectDeliveryCommand) DeliveryID() kernel.UUID { return c.deliveryID }

// DriverID returns the rejecting driver.
func (c RejectDeliveryCommand) DriverID() kernel.UUID { return c.driverID }

// Reason returns the free-text rejection reason, possibly empty.
func (c RejectDeliveryCommand) Reason() string { return c.reason }

func (c *RejectDeliveryCommand) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.deliveryID = id
	return nil
}

func (c *RejectDeliveryCommand) setDriverID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.driverID = id
	return nil
}
