package commands

import (
	"context"

	"fleetops/internal/core/domain/services"
	"fleetops/internal/core/ports"
)

// RejectDeliveryCommandHandler records the assigned driver declining a
// delivery. The vehicle returns to the pool in the same transaction so the
// next assignment can use it.
type RejectDeliveryCommandHandler struct {
	uowFactory UoWFactory
	eventSink  ports.EventSink
}

// NewRejectDeliveryCommandHandler creates a handler for reject operations.
func NewRejectDeliveryCommandHandler(uowFactory UoWFactory, eventSink ports.EventSink) RejectDeliveryCommandHandler {
	return RejectDeliveryCommandHandler{
		uowFactory: uowFactory,
		eventSink:  eventSink,
	}
}

// Handle processes the reject command.
func (h RejectDeliveryCommandHandler) Handle(ctx context.Context, command RejectDeliveryCommand) error {
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

	// The reject transition clears the vehicle reference, so capture it
	// first.
	heldVehicleID := aggregate.AssignedVehicle()

	if err = aggregate.Reject(command.DriverID(), command.Reason()); err != nil {
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

	if err = uow.DeliveryRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishStatus(h.eventSink, aggregate, command.DriverID(), "Rejected by driver")
	return nil
}
