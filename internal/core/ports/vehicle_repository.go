package ports

import (
	"context"

	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/core/domain/model/vehicle"
)

// VehicleRepository defines the persistence contract for vehicle aggregates.
// Plate uniqueness is enforced here, not in the aggregate.
type VehicleRepository interface {
	// Add persists a new vehicle. Fails with a conflict error when the
	// plate is already registered.
	Add(ctx context.Context, aggregate *vehicle.Vehicle) error

	// Update persists changes to an existing vehicle aggregate.
	Update(ctx context.Context, aggregate *vehicle.Vehicle) error

	// Get retrieves a vehicle aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*vehicle.Vehicle, error)

	// GetAllAvailable retrieves every vehicle in Available status.
	GetAllAvailable(ctx context.Context) ([]*vehicle.Vehicle, error)
}
