package commands

import (
	"context"

	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/core/domain/model/user"
	"fleetops/internal/core/ports"
	"fleetops/internal/pkg/errs"
)

// requireAdmin loads the acting user and verifies an active Admin role.
func requireAdmin(ctx context.Context, users ports.UserRepository, actorID kernel.UUID, action string) (*user.User, error) {
	actor, err := users.Get(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if actor.Role() != user.RoleAdmin || !actor.IsActive() {
		return nil, errs.NewNotAuthorizedError(actorID.String(), action)
	}
	return actor, nil
}
