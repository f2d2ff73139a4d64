package queries

import (
	"context"
	"database/sql"

	"gorm.io/gorm"

	"fleetops/internal/core/domain/model/delivery"
)

// GetDeliveryStatsQueryHandler computes dashboard figures in a single
// aggregate query instead of loading aggregates into memory.
type GetDeliveryStatsQueryHandler struct {
	db *gorm.DB
}

// NewGetDeliveryStatsQueryHandler creates a handler for statistics queries.
// Requires a GORM database connection for query execution.
func NewGetDeliveryStatsQueryHandler(db *gorm.DB) GetDeliveryStatsQueryHandler {
	return GetDeliveryStatsQueryHandler{db: db}
}

// Handle executes the statistics query. Counts are grouped by status and the
// revenue columns sum delivered bookings only.
func (h GetDeliveryStatsQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveryStatsQuery,
) (GetDeliveryStatsQueryResponse, error) {
	var stats GetDeliveryStatsQueryResponse

	if err := query.Validate(); err != nil {
		return stats, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = ?),
			COUNT(*) FILTER (WHERE status = ?),
			COUNT(*) FILTER (WHERE status IN (?, ?, ?)),
			COUNT(*) FILTER (WHERE status = ?),
			COUNT(*) FILTER (WHERE status = ?),
			COUNT(*) FILTER (WHERE status = ?),
			COALESCE(SUM(pricing_total_price) FILTER (WHERE status = ?), 0),
			COALESCE(SUM(earnings_driver_net) FILTER (WHERE status = ?), 0),
			COALESCE(SUM(earnings_gross - earnings_driver_net) FILTER (WHERE status = ?), 0),
			AVG(rating_stars)
		FROM deliveries
	`,
		delivery.Pending,
		delivery.Approved,
		delivery.Assigned, delivery.Accepted, delivery.OnRoute,
		delivery.Delivered,
		delivery.Cancelled,
		delivery.Rejected,
		delivery.Delivered,
		delivery.Delivered,
		delivery.Delivered,
	).Row()

	var avgRating sql.NullFloat64
	err := row.Scan(
		&stats.TotalDeliveries,
		&stats.Pending,
		&stats.Approved,
		&stats.Active,
		&stats.Delivered,
		&stats.Cancelled,
		&stats.Rejected,
		&stats.TotalRevenue,
		&stats.DriverEarnings,
		&stats.PlatformCommission,
		&avgRating,
	)
	if err != nil {
		return GetDeliveryStatsQueryResponse{}, err
	}

	if avgRating.Valid {
		stats.AverageRating = avgRating.Float64
	}

	return stats, nil
}
