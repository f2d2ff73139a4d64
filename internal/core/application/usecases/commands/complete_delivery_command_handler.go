package commands

import (
	"context"
	"fmt"

	"fleetops/internal/core/domain/model/delivery"
	"fleetops/internal/core/domain/services"
	"fleetops/internal/core/ports"
)

// CompleteDeliveryCommandHandler settles a finished trip in one transaction:
// the delivery moves to Delivered, the vehicle returns to the pool, the
// driver's counters bump, the driver wallet is credited the net earnings and
// the platform wallet accrues the commission. Both wallet postings commit
// with the transition or not at all.
type CompleteDeliveryCommandHandler struct {
	uowFactory UoWFactory
	eventSink  ports.EventSink
}

// NewCompleteDeliveryCommandHandler creates a handler for completion
// operations.
func NewCompleteDeliveryCommandHandler(uowFactory UoWFactory, eventSink ports.EventSink) CompleteDeliveryCommandHandler {
	return CompleteDeliveryCommandHandler{
		uowFactory: uowFactory,
		eventSink:  eventSink,
	}
}

// Handle processes the completion command.
func (h CompleteDeliveryCommandHandler) Handle(ctx context.Context, command CompleteDeliveryCommand) error {
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

	heldVehicleID := aggregate.AssignedVehicle()

	if err = aggregate.Complete(command.DriverID()); err != nil {
		return err
	}

	if heldVehicleID != nil {
		veh, getErr := uow.VehicleRepository().Get(ctx, *heldVehicleID)
		if getErr != nil {
			return getErr
		}
		if relErr := services.NewResourceCoordinator().Release(veh); relErr != nil {
			return relErr
		}
		if updErr := uow.VehicleRepository().Update(ctx, veh); updErr != nil {
			return updErr
		}
	}

	driver, err := uow.UserRepository().Get(ctx, command.DriverID())
	if err != nil {
		return err
	}
	if err = driver.RecordCompletedTrip(); err != nil {
		return err
	}
	if err = uow.UserRepository().Update(ctx, driver); err != nil {
		return err
	}

	if err = h.settleEarnings(ctx, uow, aggregate); err != nil {
		return err
	}

	if err = uow.DeliveryRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishStatus(h.eventSink, aggregate, command.DriverID(), "Delivery completed successfully")
	return nil
}

// settleEarnings posts the driver's net earnings and the platform's
// commission for a completed delivery.
func (h CompleteDeliveryCommandHandler) settleEarnings(ctx context.Context, uow UoW, aggregate *delivery.Delivery) error {
	wallets := uow.AccountRepository()
	deliveryID := aggregate.ID()
	earnings := aggregate.Earnings()

	driverWallet, err := wallets.GetByOwner(ctx, *aggregate.AssignedDriver())
	if err != nil {
		return err
	}
	if err = driverWallet.Credit(earnings.Net(),
		fmt.Sprintf("Earnings for %s", aggregate.Reference()), &deliveryID); err != nil {
		return err
	}
	if err = wallets.Update(ctx, driverWallet); err != nil {
		return err
	}

	commission := earnings.Gross() - earnings.Net()
	if commission <= 0 {
		return nil
	}

	platformWallet, err := wallets.GetPlatform(ctx)
	if err != nil {
		return err
	}
	if err = platformWallet.CreditRevenue(commission,
		fmt.Sprintf("Commission for %s", aggregate.Reference()), &deliveryID); err != nil {
		return err
	}
	return wallets.Update(ctx, platformWallet)
}
