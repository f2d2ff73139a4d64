package queries

import (
	"errors"

	"fleetops/internal/pkg/guard"
)

var ErrGetDeliveryStatsQueryIsNotConstructed = errors.New(
	"GetDeliveryStatsQuery must be created via NewGetDeliveryStatsQuery constructor",
)

// GetDeliveryStatsQuery retrieves aggregate delivery and revenue figures for
// the admin dashboard.
//
// Example:
//
//	query := NewGetDeliveryStatsQuery()
//	handler := NewGetDeliveryStatsQueryHandler(db)
//
//	stats, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to retrieve stats: %w", err)
//	}
//
//	fmt.Printf("%d delivered, revenue %.2f\n", stats.Delivered, stats.TotalRevenue)
type GetDeliveryStatsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetDeliveryStatsQuery creates a query to retrieve delivery statistics.
// This is a parameterless query.
func NewGetDeliveryStatsQuery() GetDeliveryStatsQuery {
	return GetDeliveryStatsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetDeliveryStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryStatsQueryIsNotConstructed)
}

// GetDeliveryStatsQueryResponse is the dashboard read model. Revenue figures
// count delivered bookings only; AverageRating is zero when nothing has been
// rated yet.
type GetDeliveryStatsQueryResponse struct {
	TotalDeliveries    int
	Pending            int
	Approved           int
	Active             int
	Delivered          int
	Cancelled          int
	Rejected           int
	TotalRevenue       float64
	DriverEarnings     float64
	PlatformCommission float64
	AverageRating      float64
}
