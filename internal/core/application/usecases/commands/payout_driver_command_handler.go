package commands

import (
	"context"
)

// PayoutDriverCommandHandler moves accumulated earnings from the platform
// wallet to a driver wallet. Admin only; both postings commit as one
// transaction, and the transfer fails when the platform balance does not
// cover the amount.
type PayoutDriverCommandHandler struct {
	uowFactory UoWFactory
}

// NewPayoutDriverCommandHandler creates a handler for payout operations.
func NewPayoutDriverCommandHandler(uowFactory UoWFactory) PayoutDriverCommandHandler {
	return PayoutDriverCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the payout command.
func (h PayoutDriverCommandHandler) Handle(ctx context.Context, command PayoutDriverCommand) error {
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

	if _, err := requireAdmin(ctx, uow.UserRepository(), command.AdminID(), "payout driver"); err != nil {
		return err
	}

	platform, err := uow.AccountRepository().GetPlatform(ctx)
	if err != nil {
		return err
	}
	if err = platform.PayoutDebit(command.Amount(), "Driver payout"); err != nil {
		return err
	}

	driver, err := uow.AccountRepository().GetByOwner(ctx, command.DriverID())
	if err != nil {
		return err
	}
	if err = driver.Credit(command.Amount(), "Driver payout", nil); err != nil {
		return err
	}

	if err = uow.AccountRepository().Update(ctx, platform); err != nil {
		return err
	}
	if err = uow.AccountRepository().Update(ctx, driver); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
