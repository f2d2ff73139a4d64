package commands

import (
	"context"

	"fleetops/internal/core/ports"
)

// ApproveDeliveryCommandHandler moves a pending booking to Approved. Only an
// active Admin may approve.
type ApproveDeliveryCommandHandler struct {
	uowFactory UoWFactory
	eventSink  ports.EventSink
}

// NewApproveDeliveryCommandHandler creates a handler for approval operations.
func NewApproveDeliveryCommandHandler(uowFactory UoWFactory, eventSink ports.EventSink) ApproveDeliveryCommandHandler {
	return ApproveDeliveryCommandHandler{
		uowFactory: uowFactory,
		eventSink:  eventSink,
	}
}

// Handle processes the approval command.
func (h ApproveDeliveryCommandHandler) Handle(ctx context.Context, command ApproveDeliveryCommand) error {
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

	if _, err := requireAdmin(ctx, uow.UserRepository(), command.AdminID(), "approve delivery"); err != nil {
		return err
	}

	aggregate, err := uow.DeliveryRepository().Get(ctx, command.DeliveryID())
	if err != nil {
		return err
	}

	if err = aggregate.Approve(command.AdminID()); err != nil {
		return err
	}

	if err = uow.DeliveryRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishStatus(h.eventSink, aggregate, command.AdminID(), "Approved by admin")
	return nil
}
