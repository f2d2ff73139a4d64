package commands

import (
	"context"
)

// WithdrawEarningsCommandHandler posts a withdrawal against an owner's
// wallet. Fails with an insufficient-balance error before posting when the
// balance does not cover the amount.
type WithdrawEarningsCommandHandler struct {
	uowFactory LedgerUoWFactory
}

// NewWithdrawEarningsCommandHandler creates a handler for withdrawal
// operations.
func NewWithdrawEarningsCommandHandler(uowFactory LedgerUoWFactory) WithdrawEarningsCommandHandler {
	return WithdrawEarningsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the withdrawal command.
func (h WithdrawEarningsCommandHandler) Handle(ctx context.Context, command WithdrawEarningsCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	wallet, err := uow.AccountRepository().GetByOwner(ctx, command.OwnerID())
	if err != nil {
		return err
	}

	if err = wallet.Withdraw(command.Amount(), "Withdrawal"); err != nil {
		return err
	}

	if err = uow.AccountRepository().Update(ctx, wallet); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
