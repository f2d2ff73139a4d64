package commands

import (
	"context"

	"fleetops/internal/core/domain/model/delivery"
	"fleetops/internal/core/ports"
	"fleetops/internal/pkg/errs"
)

// BookDeliveryCommandHandler creates new deliveries from customer bookings.
// Verifies the customer exists and is active, builds the priced Pending
// aggregate and persists it in one transaction.
type BookDeliveryCommandHandler struct {
	uowFactory UoWFactory
	eventSink  ports.EventSink
}

// NewBookDeliveryCommandHandler creates a handler for booking operations.
func NewBookDeliveryCommandHandler(uowFactory UoWFactory, eventSink ports.EventSink) BookDeliveryCommandHandler {
	return BookDeliveryCommandHandler{
		uowFactory: uowFactory,
		eventSink:  eventSink,
	}
}

// Handle processes the booking command. The delivery starts Pending with
// pricing computed from weight, distance and cluster.
func (h BookDeliveryCommandHandler) Handle(ctx context.Context, command BookDeliveryCommand) error {
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

	customer, err := uow.UserRepository().Get(ctx, command.CustomerID())
	if err != nil {
		return err
	}
	if !customer.IsActive() {
		return errs.NewNotAuthorizedError(customer.ID().String(), "book delivery")
	}

	newDelivery, err := delivery.NewDelivery(
		command.DeliveryID(),
		command.CustomerID(),
		command.Pickup(),
		command.Drop(),
		command.Package(),
		command.DistanceKm(),
		command.Contact(),
		command.Notes(),
	)
	if err != nil {
		return err
	}

	if err = uow.DeliveryRepository().Add(ctx, newDelivery); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishStatus(h.eventSink, newDelivery, command.CustomerID(), "Booking created")
	return nil
}
