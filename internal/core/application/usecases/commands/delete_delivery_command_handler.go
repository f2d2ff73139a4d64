package commands

import (
	"context"

	"fleetops/internal/core/domain/services"
)

// DeleteDeliveryCommandHandler removes a delivery permanently. Admin only.
// A vehicle still held by the delivery is released back to the pool in the
// same transaction before the record goes.
type DeleteDeliveryCommandHandler struct {
	uowFactory UoWFactory
}

// NewDeleteDeliveryCommandHandler creates a handler for delete operations.
func NewDeleteDeliveryCommandHandler(uowFactory UoWFactory) DeleteDeliveryCommandHandler {
	return DeleteDeliveryCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the delete command.
func (h DeleteDeliveryCommandHandler) Handle(ctx context.Context, command DeleteDeliveryCommand) error {
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

	if _, err := requireAdmin(ctx, uow.UserRepository(), command.AdminID(), "delete delivery"); err != nil {
		return err
	}

	aggregate, err := uow.DeliveryRepository().Get(ctx, command.DeliveryID())
	if err != nil {
		return err
	}

	if vehicleID := aggregate.AssignedVehicle(); vehicleID != nil && !aggregate.Status().IsTerminal() {
		veh, getErr := uow.VehicleRepository().Get(ctx, *vehicleID)
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

	if err = uow.DeliveryRepository().Delete(ctx, command.DeliveryID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
