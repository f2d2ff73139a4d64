package commands

import (
	"context"
	"errors"
	"fmt"

	"fleetops/internal/core/domain/model/delivery"
	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/core/domain/model/user"
	"fleetops/internal/core/domain/services"
	"fleetops/internal/core/ports"
	"fleetops/internal/pkg/errs"
)

// CancelDeliveryCommandHandler cancels a non-terminal delivery. The refund
// owed depends on the status at cancellation time; the customer wallet is
// credited in the same transaction when the delivery was paid. When the
// wallet posting cannot be made the cancellation still commits with the
// refund marked Failed, leaving it for the reconciliation job to retry.
// Held resources are released; a holding driver's cancelled-trip counter
// bumps and the driver returns to active duty.
type CancelDeliveryCommandHandler struct {
	uowFactory UoWFactory
	eventSink  ports.EventSink
}

// NewCancelDeliveryCommandHandler creates a handler for cancel operations.
func NewCancelDeliveryCommandHandler(uowFactory UoWFactory, eventSink ports.EventSink) CancelDeliveryCommandHandler {
	return CancelDeliveryCommandHandler{
		uowFactory: uowFactory,
		eventSink:  eventSink,
	}
}

// Handle processes the cancel command.
func (h CancelDeliveryCommandHandler) Handle(ctx context.Context, command CancelDeliveryCommand) error {
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

	actor, err := uow.UserRepository().Get(ctx, command.ActorID())
	if err != nil {
		return err
	}
	if actor.Role() != user.RoleAdmin && !actor.ID().IsEqual(aggregate.CustomerID()) {
		return errs.NewNotAuthorizedError(actor.ID().String(), "cancel delivery")
	}

	heldDriverID := aggregate.AssignedDriver()
	heldVehicleID := aggregate.AssignedVehicle()
	refundable := aggregate.PaymentStatus() == delivery.PaymentPaid

	if err = aggregate.Cancel(command.ActorID(), command.Reason(), refundable); err != nil {
		return err
	}

	if heldVehicleID != nil {
		if err = h.releaseVehicle(ctx, uow, *heldVehicleID); err != nil {
			return err
		}
	}

	if heldDriverID != nil {
		driver, getErr := uow.UserRepository().Get(ctx, *heldDriverID)
		if getErr != nil {
			return getErr
		}
		if cntErr := driver.RecordCancelledTrip(); cntErr != nil {
			return cntErr
		}
		if stErr := driver.SetDriverStatus(user.DriverActive); stErr != nil {
			return stErr
		}
		if updErr := uow.UserRepository().Update(ctx, driver); updErr != nil {
			return updErr
		}
	}

	if cancellation := aggregate.Cancellation(); cancellation.RefundStatus() == delivery.RefundPending {
		if err = h.postRefund(ctx, uow, aggregate); err != nil {
			return err
		}
	}

	if err = uow.DeliveryRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishStatus(h.eventSink, aggregate, command.ActorID(), "Cancelled: "+command.Reason())
	return nil
}

func (h CancelDeliveryCommandHandler) releaseVehicle(ctx context.Context, uow UoW, vehicleID kernel.UUID) error {
	veh, err := uow.VehicleRepository().Get(ctx, vehicleID)
	if err != nil {
		return err
	}
	if err = services.NewResourceCoordinator().Release(veh); err != nil {
		return err
	}
	return uow.VehicleRepository().Update(ctx, veh)
}

// postRefund credits the customer wallet with the refund owed. A missing
// wallet marks the refund Failed instead of failing the cancellation.
func (h CancelDeliveryCommandHandler) postRefund(ctx context.Context, uow UoW, aggregate *delivery.Delivery) error {
	deliveryID := aggregate.ID()
	amount := aggregate.Cancellation().RefundAmount()

	wallet, err := uow.AccountRepository().GetByOwner(ctx, aggregate.CustomerID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return aggregate.MarkRefundFailed()
	}
	if err != nil {
		return err
	}

	if err = wallet.Refund(amount,
		fmt.Sprintf("Refund for %s", aggregate.Reference()), &deliveryID); err != nil {
		return err
	}
	if err = uow.AccountRepository().Update(ctx, wallet); err != nil {
		return err
	}
	return aggregate.MarkRefundProcessed()
}
