package commands

import (
	"context"
)

// RateDeliveryCommandHandler stores a one-time customer rating and folds it
// into the driver's running average in the same transaction.
type RateDeliveryCommandHandler struct {
	uowFactory UoWFactory
}

// NewRateDeliveryCommandHandler creates a handler for rating operations.
func NewRateDeliveryCommandHandler(uowFactory UoWFactory) RateDeliveryCommandHandler {
	return RateDeliveryCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the rating command.
func (h RateDeliveryCommandHandler) Handle(ctx context.Context, command RateDeliveryCommand) error {
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

	if err = aggregate.Rate(command.CustomerID(), command.Stars(), command.Feedback()); err != nil {
		return err
	}

	if driverID := aggregate.AssignedDriver(); driverID != nil {
		driver, getErr := uow.UserRepository().Get(ctx, *driverID)
		if getErr != nil {
			return getErr
		}
		if rateErr := driver.AddRating(command.Stars()); rateErr != nil {
			return rateErr
		}
		if updErr := uow.UserRepository().Update(ctx, driver); updErr != nil {
			return updErr
		}
	}

	if err = uow.DeliveryRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
