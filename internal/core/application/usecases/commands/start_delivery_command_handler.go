package commands

import (
	"context"

	"fleetops/internal/core/ports"
)

// StartDeliveryCommandHandler records the trip starting: Accepted -> On
// Route, with the held vehicle marked on route in the same transaction.
type StartDeliveryCommandHandler struct {
	uowFactory UoWFactory
	eventSink  ports.EventSink
}

// NewStartDeliveryCommandHandler creates a handler for start operations.
func NewStartDeliveryCommandHandler(uowFactory UoWFactory, eventSink ports.EventSink) StartDeliveryCommandHandler {
	return StartDeliveryCommandHandler{
		uowFactory: uowFactory,
		eventSink:  eventSink,
	}
}

// Handle processes the start command.
func (h StartDeliveryCommandHandler) Handle(ctx context.Context, command StartDeliveryCommand) error {
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

	if err = aggregate.Start(command.DriverID()); err != nil {
		return err
	}

	if vehicleID := aggregate.AssignedVehicle(); vehicleID != nil {
		veh, getErr := uow.VehicleRepository().Get(ctx, *vehicleID)
		if getErr != nil {
			return getErr
		}
		if markErr := veh.MarkOnRoute(); markErr != nil {
			return markErr
		}
		if updErr := uow.VehicleRepository().Update(ctx, veh); updErr != nil {
			return updErr
		}
	}

	if err = uow.DeliveryRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishStatus(h.eventSink, aggregate, command.DriverID(), "Driver started the delivery")
	return nil
}
