package commands

import (
	"context"

	"fleetops/internal/core/ports"
)

// AcceptDeliveryCommandHandler records the assigned driver accepting the
// job: Assigned -> Accepted, with the held vehicle marked on route in the
// same transaction. Only the assigned driver may accept.
type AcceptDeliveryCommandHandler struct {
	uowFactory UoWFactory
	eventSink  ports.EventSink
}

// NewAcceptDeliveryCommandHandler creates a handler for accept operations.
func NewAcceptDeliveryCommandHandler(uowFactory UoWFactory, eventSink ports.EventSink) AcceptDeliveryCommandHandler {
	return AcceptDeliveryCommandHandler{
		uowFactory: uowFactory,
		eventSink:  eventSink,
	}
}

// Handle processes the accept command.
func (h AcceptDeliveryCommandHandler) Handle(ctx context.Context, command AcceptDeliveryCommand) error {
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

	if err = aggregate.Accept(command.DriverID()); err != nil {
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

	publishStatus(h.eventSink, aggregate, command.DriverID(), "Accepted by driver")
	return nil
}
