// Package vehiclerepo provides data transfer objects and mapping functions
// for vehicle persistence.
package vehiclerepo

import (
	"time"

	"github.com/google/uuid"

	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/core/domain/model/vehicle"
)

// VehicleDTO represents the database structure for persisting vehicle
// aggregates. Plate uniqueness is enforced by the database index.
type VehicleDTO struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name   string    `gorm:"type:varchar(255);not null"`
	Plate  string    `gorm:"type:varchar(32);not null;uniqueIndex"`
	Kind   string    `gorm:"type:varchar(64);not null"`
	Status int       `gorm:"not null;index"`

	Lat               *float64
	Lng               *float64
	LocationUpdatedAt *time.Time

	Version int `gorm:"not null"`
}

// TableName overrides GORM's default naming to use "vehicles".
func (VehicleDTO) TableName() string {
	return "vehicles"
}

// fromDomain converts a vehicle aggregate to its database representation.
func fromDomain(aggregate *vehicle.Vehicle) VehicleDTO {
	dto := VehicleDTO{
		ID:      aggregate.ID().Bytes(),
		Name:    aggregate.Name(),
		Plate:   aggregate.Plate(),
		Kind:    aggregate.Kind(),
		Status:  int(aggregate.Status()),
		Version: aggregate.Version(),
	}

	if location := aggregate.Location(); !location.IsZero() {
		lat := location.Lat()
		lng := location.Lng()
		dto.Lat = &lat
		dto.Lng = &lng
	}

	return dto
}

// toDomain converts a database DTO back into a vehicle aggregate.
func toDomain(dto VehicleDTO) (*vehicle.Vehicle, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var location kernel.GeoPoint
	if dto.Lat != nil && dto.Lng != nil {
		location, err = kernel.NewGeoPoint(*dto.Lat, *dto.Lng)
		if err != nil {
			return nil, err
		}
	}

	return vehicle.RestoreVehicle(
		id,
		dto.Name,
		dto.Plate,
		dto.Kind,
		vehicle.Status(dto.Status),
		location,
		dto.Version,
	)
}
