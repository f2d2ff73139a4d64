package commands

import (
	"context"
	"fmt"

	"fleetops/internal/core/domain/model/delivery"
	"fleetops/internal/pkg/errs"
)

// PayDeliveryCommandHandler marks a delivery paid. A wallet payment is a
// cross-wallet transfer: the customer wallet is debited the total price and
// the platform wallet credited, both postings in one transaction. An
// insufficient customer balance fails the whole payment; nothing is posted.
type PayDeliveryCommandHandler struct {
	uowFactory UoWFactory
}

// NewPayDeliveryCommandHandler creates a handler for payment operations.
func NewPayDeliveryCommandHandler(uowFactory UoWFactory) PayDeliveryCommandHandler {
	return PayDeliveryCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the payment command.
func (h PayDeliveryCommandHandler) Handle(ctx context.Context, command PayDeliveryCommand) error {
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

	aggregate, err := uow.DeliveryRepository().Get(ctx, command.DeliveryID())
	if err != nil {
		return err
	}

	if !command.CustomerID().IsEqual(aggregate.CustomerID()) {
		return errs.NewNotAuthorizedError(command.CustomerID().String(), "pay delivery")
	}

	if command.Method() == delivery.PaymentMethodWallet {
		if err = h.transfer(ctx, uow, aggregate); err != nil {
			return err
		}
	}

	if err = aggregate.MarkPaid(command.Method()); err != nil {
		return err
	}

	if err = uow.DeliveryRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// transfer debits the customer wallet and credits the platform wallet with
// the delivery total.
func (h PayDeliveryCommandHandler) transfer(ctx context.Context, uow UoW, aggregate *delivery.Delivery) error {
	wallets := uow.AccountRepository()
	deliveryID := aggregate.ID()
	total := aggregate.Pricing().TotalPrice()

	customerWallet, err := wallets.GetByOwner(ctx, aggregate.CustomerID())
	if err != nil {
		return err
	}
	if err = customerWallet.Debit(total,
		fmt.Sprintf("Payment for %s", aggregate.Reference()), &deliveryID); err != nil {
		return err
	}
	if err = wallets.Update(ctx, customerWallet); err != nil {
		return err
	}

	platformWallet, err := wallets.GetPlatform(ctx)
	if err != nil {
		return err
	}
	if err = platformWallet.Credit(total,
		fmt.Sprintf("Payment received for %s", aggregate.Reference()), &deliveryID); err != nil {
		return err
	}
	return wallets.Update(ctx, platformWallet)
}
