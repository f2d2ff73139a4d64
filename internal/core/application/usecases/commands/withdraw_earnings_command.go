package commands

import (
	"errors"

	"fleetops/internal/core/domain/model/account"
	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/pkg/guard"
)

var ErrWithdrawEarningsCommandIsNotConstructed = errors.New(
	"WithdrawEarningsCommand must be created via NewWithdrawEarningsCommand constructor",
)

// WithdrawEarningsCommand represents a wallet owner taking money off the
// platform.
type WithdrawEarningsCommand struct { //nolint:recvcheck //using for validation
	ownerID kernel.UUID
	amount  float64

	guard guard.ConstructorGuard
}

// NewWithdrawEarningsCommand creates a command to withdraw from a wallet.
func NewWithdrawEarningsCommand(ownerID kernel.UUID, amount float64) (WithdrawEarningsCommand, error) {
	cmd := WithdrawEarningsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOwnerID(ownerID),
		cmd.setAmount(amount),
	); err != nil {
		return WithdrawEarningsCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c WithdrawEarningsCommand) Validate() error {
	return c.guard.Validate(ErrWithdrawEarningsCommandIsNotConstructed)
}

// OwnerID returns the withdrawing wallet owner.
func (c WithdrawEarningsCommand) OwnerID() kernel.UUID { return c.ownerID }

// Amount returns the withdrawal amount.
func (c WithdrawEarningsCommand) Amount() float64 { return c.amount }

func (c *WithdrawEarningsCommand) setOwnerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.ownerID = id
	return nil
}

func (c *WithdrawEarningsCommand) setAmount(amount float64) error {
	if amount <= 0 {
		return account.ErrAmountIsInvalid
	}
	c.amount = amount
	return nil
}
