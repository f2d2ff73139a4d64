package commands

import (
	"context"
	"errors"

	"fleetops/internal/core/domain/model/account"
	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/pkg/errs"
)

// AddFundsCommandHandler credits a wallet top-up, opening the wallet on the
// owner's first deposit.
type AddFundsCommandHandler struct {
	uowFactory LedgerUoWFactory
}

// NewAddFundsCommandHandler creates a handler for top-up operations.
func NewAddFundsCommandHandler(uowFactory LedgerUoWFactory) AddFundsCommandHandler {
	return AddFundsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the top-up command.
func (h AddFundsCommandHandler) Handle(ctx context.Context, command AddFundsCommand) error {
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

	wallets := uow.AccountRepository()

	wallet, err := wallets.GetByOwner(ctx, command.OwnerID())
	opened := false
	if errors.Is(err, errs.ErrObjectNotFound) {
		wallet, err = account.NewWallet(kernel.NewUUID(), command.OwnerID(), command.Kind())
		opened = true
	}
	if err != nil {
		return err
	}

	if err = wallet.Credit(command.Amount(), "Funds added", nil); err != nil {
		return err
	}

	if opened {
		err = wallets.Add(ctx, wallet)
	} else {
		err = wallets.Update(ctx, wallet)
	}
	if err != nil {
		return err
	}

	return uow.Commit(ctx)
}
