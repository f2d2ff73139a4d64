package commands

import (
	"context"

	"fleetops/internal/core/domain/services"
	"fleetops/internal/core/ports"
)

// AssignDeliveryCommandHandler orchestrates resource assignment. It loads
// the delivery, driver, vehicle and every active delivery inside one
// transaction, asks the ResourceCoordinator for an exclusive hold, applies
// the Assign transition and persists everything together. A reassignment
// additionally releases the previously held vehicle.
//
// Errors worth branching on:
//
//	errors.Is(err, delivery.ErrNotApproved)      // admin has not approved yet
//	errors.Is(err, services.ErrInvalidDriver)    // driver cannot take work
//	errors.Is(err, services.ErrInvalidVehicle)   // vehicle not assignable
//	errors.Is(err, errs.ErrResourceConflict)     // held by another delivery
type AssignDeliveryCommandHandler struct {
	uowFactory UoWFactory
	eventSink  ports.EventSink
}

// NewAssignDeliveryCommandHandler creates a handler for assignment operations.
func NewAssignDeliveryCommandHandler(uowFactory UoWFactory, eventSink ports.EventSink) AssignDeliveryCommandHandler {
	return AssignDeliveryCommandHandler{
		uowFactory: uowFactory,
		eventSink:  eventSink,
	}
}

// Handle processes the assignment command.
func (h AssignDeliveryCommandHandler) Handle(ctx context.Context, command AssignDeliveryCommand) error {
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

	if _, err := requireAdmin(ctx, uow.UserRepository(), command.AdminID(), "assign delivery"); err != nil {
		return err
	}

	deliveries := uow.DeliveryRepository()
	vehicles := uow.VehicleRepository()

	aggregate, err := deliveries.Get(ctx, command.DeliveryID())
	if err != nil {
		return err
	}

	driver, err := uow.UserRepository().Get(ctx, command.DriverID())
	if err != nil {
		return err
	}

	veh, err := vehicles.Get(ctx, command.VehicleID())
	if err != nil {
		return err
	}

	active, err := deliveries.GetAllActive(ctx)
	if err != nil {
		return err
	}

	allocation, err := services.NewResourceCoordinator().Allocate(aggregate, driver, veh, active)
	if err != nil {
		return err
	}

	if err = aggregate.Assign(command.AdminID(), command.DriverID(), command.VehicleID(),
		command.DistanceKm(), command.Note()); err != nil {
		return err
	}

	if released := allocation.ReleasedVehicleID; released != nil {
		oldVehicle, getErr := vehicles.Get(ctx, *released)
		if getErr != nil {
			return getErr
		}
		if relErr := services.NewResourceCoordinator().Release(oldVehicle); relErr != nil {
			return relErr
		}
		if updErr := vehicles.Update(ctx, oldVehicle); updErr != nil {
			return updErr
		}
	}

	if err = deliveries.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = vehicles.Update(ctx, veh); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishStatus(h.eventSink, aggregate, command.AdminID(), command.Note())
	return nil
}
