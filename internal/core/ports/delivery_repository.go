package ports

import (
	"context"

	"fleetops/internal/core/domain/model/delivery"
	"fleetops/internal/core/domain/model/kernel"
)

// DeliveryRepository defines the persistence contract for delivery
// aggregates. Update applies an optimistic version check: it fails with a
// version error when the stored row no longer matches the version the
// aggregate was loaded at.
type DeliveryRepository interface {
	// Add persists a new delivery aggregate to storage.
	Add(ctx context.Context, aggregate *delivery.Delivery) error

	// Update persists changes to an existing delivery aggregate, bumping
	// its version. Fails when a concurrent writer committed first.
	Update(ctx context.Context, aggregate *delivery.Delivery) error

	// Get retrieves a delivery aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error)

	// GetAllActive retrieves every delivery holding resources: statuses
	// Assigned, Accepted and On Route. Used for conflict checks during
	// assignment.
	GetAllActive(ctx context.Context) ([]*delivery.Delivery, error)

	// GetAllWithUnsettledRefunds retrieves cancelled deliveries whose
	// refund posting is still Pending or Failed. Used by the
	// reconciliation job.
	GetAllWithUnsettledRefunds(ctx context.Context) ([]*delivery.Delivery, error)

	// GetAllByCustomer retrieves a customer's deliveries, newest first.
	GetAllByCustomer(ctx context.Context, customerID kernel.UUID) ([]*delivery.Delivery, error)

	// GetAllByDriver retrieves the deliveries assigned to a driver,
	// newest first.
	GetAllByDriver(ctx context.Context, driverID kernel.UUID) ([]*delivery.Delivery, error)

	// Delete removes a delivery permanently.
	Delete(ctx context.Context, id kernel.UUID) error
}
