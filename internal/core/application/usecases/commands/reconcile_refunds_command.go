package commands

import (
	"errors"

	"fleetops/internal/pkg/guard"
)

var ErrReconcileRefundsCommandIsNotConstructed = errors.New(
	"ReconcileRefundsCommand must be created via NewReconcileRefundsCommand constructor",
)

// ReconcileRefundsCommand triggers a sweep over cancelled deliveries whose
// refund posting is still Pending or Failed. Run periodically by the jobs
// scheduler.
//
// Example:
//
//	cmd := NewReconcileRefundsCommand()
//	handler := NewReconcileRefundsCommandHandler(uowFactory)
//	settled, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    log.Printf("reconciliation failed: %v", err)
//	}
type ReconcileRefundsCommand struct {
	guard guard.ConstructorGuard
}

// NewReconcileRefundsCommand creates a command to trigger refund
// reconciliation. This is a parameterless command.
func NewReconcileRefundsCommand() ReconcileRefundsCommand {
	return ReconcileRefundsCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c *ReconcileRefundsCommand) Validate() error {
	return c.guard.Validate(ErrReconcileRefundsCommandIsNotConstructed)
}
