// Package userrepo provides data transfer objects and mapping functions for
// user persistence.
package userrepo

import (
	"github.com/google/uuid"

	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/core/domain/model/user"
)

// UserDTO represents the database structure for persisting user aggregates.
// Driver profile fields are flattened into the same row; they stay at their
// zero values for admins and customers.
type UserDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name     string    `gorm:"type:varchar(255);not null"`
	Email    string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	Phone    string    `gorm:"type:varchar(32)"`
	Role     int       `gorm:"not null;index"`
	IsActive bool      `gorm:"not null"`

	DriverStatus   int
	TotalTrips     int
	CompletedTrips int
	CancelledTrips int
	AverageRating  float64
	Ratings        []int `gorm:"serializer:json;type:jsonb"`

	Version int `gorm:"not null"`
}

// TableName overrides GORM's default naming to use "users".
func (UserDTO) TableName() string {
	return "users"
}

// fromDomain converts a user aggregate to its database representation.
func fromDomain(aggregate *user.User) UserDTO {
	dto := UserDTO{
		ID:       aggregate.ID().Bytes(),
		Name:     aggregate.Name(),
		Email:    aggregate.Email(),
		Phone:    aggregate.Phone(),
		Role:     int(aggregate.Role()),
		IsActive: aggregate.IsActive(),
		Version:  aggregate.Version(),
	}

	if driver := aggregate.Driver(); driver != nil {
		performance := driver.Performance()
		dto.DriverStatus = int(driver.Status())
		dto.TotalTrips = performance.TotalTrips
		dto.CompletedTrips = performance.CompletedTrips
		dto.CancelledTrips = performance.CancelledTrips
		dto.AverageRating = performance.AverageRating
		dto.Ratings = driver.Ratings()
	}

	return dto
}

// toDomain converts a database DTO back into a user aggregate.
func toDomain(dto UserDTO) (*user.User, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var driver *user.DriverProfile
	if user.Role(dto.Role) == user.RoleDriver {
		driver = user.RestoreDriverProfile(
			user.DriverStatus(dto.DriverStatus),
			user.Performance{
				TotalTrips:     dto.TotalTrips,
				CompletedTrips: dto.CompletedTrips,
				CancelledTrips: dto.CancelledTrips,
				AverageRating:  dto.AverageRating,
			},
			dto.Ratings,
		)
	}

	return user.RestoreUser(
		id,
		dto.Name,
		dto.Email,
		dto.Phone,
		user.Role(dto.Role),
		dto.IsActive,
		driver,
		dto.Version,
	)
}
