package commands

import (
	"context"
)

// UpdateDeliveryLocationCommandHandler records a live position on the
// delivery and on the vehicle carrying it. Lifecycle status is untouched;
// location updates never contend with transitions.
type UpdateDeliveryLocationCommandHandler struct {
	uowFactory UoWFactory
}

// NewUpdateDeliveryLocationCommandHandler creates a handler for location
// updates.
func NewUpdateDeliveryLocationCommandHandler(uowFactory UoWFactory) UpdateDeliveryLocationCommandHandler {
	return UpdateDeliveryLocationCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the location update command.
func (h UpdateDeliveryLocationCommandHandler) Handle(ctx context.Context, command UpdateDeliveryLocationCommand) error {
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

	if err = aggregate.UpdateLocation(command.DriverID(), command.Point()); err != nil {
		return err
	}

	if vehicleID := aggregate.AssignedVehicle(); vehicleID != nil {
		veh, getErr := uow.VehicleRepository().Get(ctx, *vehicleID)
		if getErr != nil {
			return getErr
		}
		veh.UpdateLocation(command.Point())
		if updErr := uow.VehicleRepository().Update(ctx, veh); updErr != nil {
			return updErr
		}
	}

	if err = uow.DeliveryRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
