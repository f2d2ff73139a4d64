// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"time"

	"fleetops/internal/core/domain/model/delivery"
	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/pkg/guard"
)

var ErrGetActiveDeliveriesQueryIsNotConstructed = errors.New(
	"GetActiveDeliveriesQuery must be created via NewGetActiveDeliveriesQuery constructor",
)

// GetActiveDeliveriesQuery retrieves every delivery currently in transit or
// waiting on a driver, for the live monitoring board.
//
// Example:
//
//	query := NewGetActiveDeliveriesQuery()
//	handler := NewGetActiveDeliveriesQueryHandler(db)
//
//	active, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to retrieve active deliveries: %w", err)
//	}
//
//	for _, d := range active {
//	    fmt.Printf("%s is %s\n", d.Reference, d.Status)
//	}
type GetActiveDeliveriesQuery struct {
	guard guard.ConstructorGuard
}

// NewGetActiveDeliveriesQuery creates a query to retrieve active deliveries.
// This is a parameterless query.
func NewGetActiveDeliveriesQuery() GetActiveDeliveriesQuery {
	return GetActiveDeliveriesQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetActiveDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveDeliveriesQueryIsNotConstructed)
}

// GetActiveDeliveriesQueryResponse is the read model for one active delivery.
// Driver, vehicle and position are nil until the corresponding data exists.
type GetActiveDeliveriesQueryResponse struct {
	ID              kernel.UUID
	Reference       string
	Status          delivery.Status
	CustomerID      kernel.UUID
	DriverID        *kernel.UUID
	VehicleID       *kernel.UUID
	TotalPrice      float64
	CurrentPosition *kernel.GeoPoint
	StartTime       *time.Time
}
