package commands

import (
	"errors"

	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/pkg/guard"
)

var ErrApproveDeliveryCommandIsNotConstructed = errors.New(
	"ApproveDeliveryCommand must be created via NewApproveDeliveryCommand constructor",
)

// ApproveDeliveryCommand represents an admin approving a pending booking for
// assignment.
type ApproveDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	adminID    kernel.UUID

	guard guard.ConstructorGuard
}

// NewApproveDeliveryCommand creates a command to approve a pending delivery.
func NewApproveDeliveryCommand(deliveryID, adminID kernel.UUID) (ApproveDeliveryCommand, error) {
	cmd := ApproveDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setAdminID(adminID),
	); err != nil {
		return ApproveDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ApproveDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrApproveDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the delivery to approve.
func (c ApproveDeliveryCommand) DeliveryID() kernel.UUID { return c.deliveryID }

// AdminID returns the approving admin.
func (c ApproveDeliveryCommand) AdminID() kernel.UUID { return c.adminID }

func (c *ApproveDeliveryCommand) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.deliveryID = id
	return nil
}

func (c *ApproveDeliveryCommand) setAdminID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.adminID = id
	return nil
}
