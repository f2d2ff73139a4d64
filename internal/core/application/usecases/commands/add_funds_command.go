package commands

import (
	"errors"

	"fleetops/internal/core/domain/model/account"
	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/pkg/guard"
)

var ErrAddFundsCommandIsNotConstructed = errors.New(
	"AddFundsCommand must be created via NewAddFundsCommand constructor",
)

// AddFundsCommand represents a wallet top-up. The first top-up for an owner
// opens the wallet.
type AddFundsCommand struct { //nolint:recvcheck //using for validation
	ownerID kernel.UUID
	kind    account.Kind
	amount  float64

	guard guard.ConstructorGuard
}

// NewAddFundsCommand creates a command to add funds to an owner's wallet.
func NewAddFundsCommand(ownerID kernel.UUID, kind account.Kind, amount float64) (AddFundsCommand, error) {
	cmd := AddFundsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOwnerID(ownerID),
		cmd.setKind(kind),
		cmd.setAmount(amount),
	); err != nil {
		return AddFundsCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AddFundsCommand) Validate() error {
	return c.guard.Validate(ErrAddFundsCommandIsNotConstructed)
}

// OwnerID returns the wallet owner.
func (c AddFundsCommand) OwnerID() kernel.UUID { return c.ownerID }

// Kind returns the wallet kind opened on first top-up.
func (c AddFundsCommand) Kind() account.Kind { return c.kind }

// Amount returns the top-up amount.
func (c AddFundsCommand) Amount() float64 { return c.amount }

func (c *AddFundsCommand) setOwnerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.ownerID = id
	return nil
}

func (c *AddFundsCommand) setKind(kind account.Kind) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	c.kind = kind
	return nil
}

func (c *AddFundsCommand) setAmount(amount float64) error {
	if amount <= 0 {
		return account.ErrAmountIsInvalid
	}
	c.amount = amount
	return nil
}
