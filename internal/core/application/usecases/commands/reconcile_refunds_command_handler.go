package commands

import (
	"context"
	"errors"
	"fmt"

	"fleetops/internal/core/domain/model/account"
	"fleetops/internal/core/domain/model/delivery"
	"fleetops/internal/pkg/errs"
)

// ReconcileRefundsCommandHandler settles refunds left Pending or Failed by
// earlier cancellations. For every unsettled cancellation it verifies the
// stored posting state against the customer wallet and credits the refund
// that is still owed. A cancellation whose wallet already carries the refund
// posting is a ledger inconsistency and is reported rather than paid twice.
type ReconcileRefundsCommandHandler struct {
	uowFactory UoWFactory
}

// NewReconcileRefundsCommandHandler creates a handler for reconciliation
// sweeps.
func NewReconcileRefundsCommandHandler(uowFactory UoWFactory) ReconcileRefundsCommandHandler {
	return ReconcileRefundsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the reconciliation command. Returns the number of
// refunds settled in this sweep.
func (h ReconcileRefundsCommandHandler) Handle(ctx context.Context, command ReconcileRefundsCommand) (int, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	unsettled, err := uow.DeliveryRepository().GetAllWithUnsettledRefunds(ctx)
	if err != nil {
		return 0, err
	}

	settled := 0
	for _, aggregate := range unsettled {
		ok, settleErr := h.settle(ctx, uow, aggregate)
		if settleErr != nil {
			return settled, settleErr
		}
		if ok {
			settled++
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return settled, nil
}

func (h ReconcileRefundsCommandHandler) settle(ctx context.Context, uow UoW, aggregate *delivery.Delivery) (bool, error) {
	cancellation := aggregate.Cancellation()
	if cancellation == nil {
		return false, errs.NewLedgerInconsistencyError(
			aggregate.ID().String(), "unsettled refund without a cancellation record")
	}

	deliveryID := aggregate.ID()

	wallet, err := uow.AccountRepository().GetByOwner(ctx, aggregate.CustomerID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		// Wallet still missing; leave the refund for the next sweep.
		return false, nil
	}
	if err != nil {
		return false, err
	}

	// A refund posting already on the wallet means the stored cancellation
	// state disagrees with the ledger.
	for _, tx := range wallet.Transactions() {
		if tx.DeliveryRef() != nil && tx.DeliveryRef().IsEqual(deliveryID) &&
			tx.Type() == account.TransactionRefund {
			return false, errs.NewLedgerInconsistencyError(
				deliveryID.String(), "refund already posted but marked unsettled")
		}
	}

	if err = wallet.Refund(cancellation.RefundAmount(),
		fmt.Sprintf("Refund for %s", aggregate.Reference()), &deliveryID); err != nil {
		return false, err
	}
	if err = uow.AccountRepository().Update(ctx, wallet); err != nil {
		return false, err
	}

	if err = aggregate.MarkRefundProcessed(); err != nil {
		return false, err
	}
	if err = uow.DeliveryRepository().Update(ctx, aggregate); err != nil {
		return false, err
	}

	return true, nil
}
