package queries

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fleetops/internal/core/domain/model/delivery"
	"fleetops/internal/core/domain/model/kernel"
)

// GetActiveDeliveriesQueryHandler reads active deliveries straight from the
// database. Uses direct SQL for optimal read performance in the CQRS pattern.
//
// Example:
//
//	handler := NewGetActiveDeliveriesQueryHandler(db)
//	query := NewGetActiveDeliveriesQuery()
//
//	active, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to get active deliveries: %v", err)
//	    return err
//	}
//
//	fmt.Printf("%d deliveries in progress\n", len(active))
type GetActiveDeliveriesQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveDeliveriesQueryHandler creates a handler for active delivery
// queries. Requires a GORM database connection for query execution.
func NewGetActiveDeliveriesQueryHandler(db *gorm.DB) GetActiveDeliveriesQueryHandler {
	return GetActiveDeliveriesQueryHandler{db: db}
}

// Handle executes the query. Returns deliveries in Assigned, Accepted or
// On Route status, sorted by reference for consistent output.
func (h GetActiveDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query GetActiveDeliveriesQuery,
) ([]GetActiveDeliveriesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	deliveries := make([]GetActiveDeliveriesQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			reference,
			status,
			customer_id,
			assigned_driver_id,
			assigned_vehicle_id,
			pricing_total_price,
			current_lat,
			current_lng,
			start_time
		FROM deliveries
		WHERE status IN (?, ?, ?)
		ORDER BY reference
	`, delivery.Assigned, delivery.Accepted, delivery.OnRoute).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetActiveDeliveriesQueryResponse
		var id, customerID uuid.UUID
		var status int
		var driverID, vehicleID uuid.NullUUID
		var lat, lng sql.NullFloat64
		var startTime sql.NullTime

		err = rows.Scan(
			&id,
			&resp.Reference,
			&status,
			&customerID,
			&driverID,
			&vehicleID,
			&resp.TotalPrice,
			&lat,
			&lng,
			&startTime,
		)
		if err != nil {
			return nil, err
		}

		resp.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		resp.CustomerID, err = kernel.UUIDFromBytes(customerID[:])
		if err != nil {
			return nil, err
		}
		resp.Status = delivery.Status(status)

		resp.DriverID, err = optionalUUID(driverID)
		if err != nil {
			return nil, err
		}
		resp.VehicleID, err = optionalUUID(vehicleID)
		if err != nil {
			return nil, err
		}

		if lat.Valid && lng.Valid {
			point, pointErr := kernel.NewGeoPoint(lat.Float64, lng.Float64)
			if pointErr != nil {
				return nil, pointErr
			}
			resp.CurrentPosition = &point
		}
		if startTime.Valid {
			started := startTime.Time
			resp.StartTime = &started
		}

		deliveries = append(deliveries, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return deliveries, nil
}

func optionalUUID(id uuid.NullUUID) (*kernel.UUID, error) {
	if !id.Valid {
		return nil, nil
	}
	converted, err := kernel.UUIDFromBytes(id.UUID[:])
	if err != nil {
		return nil, err
	}
	return &converted, nil
}
