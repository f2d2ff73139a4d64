package commands

import (
	"errors"

	"fleetops/internal/core/domain/model/account"
	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/pkg/guard"
)

var ErrPayoutDriverCommandIsNotConstructed = errors.New(
	"PayoutDriverCommand must be created via NewPayoutDriverCommand constructor",
)

// PayoutDriverCommand represents an admin paying out a driver's accumulated
// earnings.
type PayoutDriverCommand struct { //nolint:recvcheck //using for validation
	adminID  kernel.UUID
	driverID kernel.UUID
	amount   float64

	guard guard.ConstructorGuard
}

// NewPayoutDriverCommand creates a command to pay out driver earnings.
func NewPayoutDriverCommand(adminID, driverID kernel.UUID, amount float64) (PayoutDriverCommand, error) {
	cmd := PayoutDriverCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setAdminID(adminID),
		cmd.setDriverID(driverID),
		cmd.setAmount(amount),
	); err != nil {
		return PayoutDriverCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PayoutDriverCommand) Validate() error {
	return c.guard.Validate(ErrPayoutDriverCommandIsNotConstructed)
}

// AdminID returns the admin running the payout.
func (c PayoutDriverCommand) AdminID() kernel.UUID { return c.adminID }

// DriverID returns the driver being paid out.
func (c PayoutDriverCommand) DriverID() kernel.UUID { return c.driverID }

// Amount returns the payout amount.
func (c PayoutDriverCommand) Amount() float64 { return c.amount }

func (c *PayoutDriverCommand) setAdminID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.adminID = id
	return nil
}

func (c *PayoutDriverCommand) setDriverID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.driverID = id
	return nil
}

func (c *PayoutDriverCommand) setAmount(amount float64) error {
	if amount <= 0 {
		return account.ErrAmountIsInvalid
	}
	c.amount = amount
	return nil
}
