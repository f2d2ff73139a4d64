// Package deliveryrepo provides data transfer objects and mapping functions
// for delivery persistence. It implements the repository pattern for the
// delivery aggregate, converting between domain entities and their database
// representation.
package deliveryrepo

import (
	"time"

	"github.com/google/uuid"

	"fleetops/internal/core/domain/model/delivery"
	"fleetops/internal/core/domain/model/kernel"
)

// DeliveryDTO represents the database structure for persisting delivery
// aggregates. One row per delivery; the status history lives in a child
// table. Version backs the optimistic concurrency check on updates.
type DeliveryDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Reference  string    `gorm:"type:varchar(32);not null;uniqueIndex"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index"`

	Pickup AddressDTO `gorm:"embedded;embeddedPrefix:pickup_"`
	Drop   AddressDTO `gorm:"embedded;embeddedPrefix:drop_"`

	Package       PackageDTO `gorm:"embedded;embeddedPrefix:package_"`
	ContactNumber string     `gorm:"type:varchar(32);not null"`
	Notes         string     `gorm:"type:text"`

	EstimatedDistanceKm  float64
	EstimatedDurationMin int

	AssignedDriverID  *uuid.UUID `gorm:"type:uuid;index"`
	AssignedVehicleID *uuid.UUID `gorm:"type:uuid"`

	Status               int `gorm:"not null;index"`
	AdminApproved        bool
	DriverAccepted       bool
	DriverRejectedReason string `gorm:"type:text"`

	Pricing       PricingDTO `gorm:"embedded;embeddedPrefix:pricing_"`
	PaymentStatus int
	PaymentMethod int
	PaidAt        *time.Time

	Earnings EarningsDTO `gorm:"embedded;embeddedPrefix:earnings_"`

	RatingStars    *int
	RatingFeedback string `gorm:"type:text"`
	RatedAt        *time.Time

	CancelledBy  *uuid.UUID `gorm:"type:uuid"`
	CancelReason string     `gorm:"type:text"`
	RefundAmount float64
	RefundStatus *int `gorm:"index"`
	CancelledAt  *time.Time

	CurrentLat        *float64
	CurrentLng        *float64
	LocationUpdatedAt *time.Time

	StartTime *time.Time
	EndTime   *time.Time

	History []StatusUpdateDTO `gorm:"foreignKey:DeliveryID;constraint:OnDelete:CASCADE"`

	Version int `gorm:"not null"`
}

// TableName overrides GORM's default naming to use "deliveries".
func (DeliveryDTO) TableName() string {
	return "deliveries"
}

// AddressDTO is an embedded pickup or drop location.
type AddressDTO struct {
	Street string `gorm:"type:varchar(255);not null"`
	Lat    float64
	Lng    float64
}

// PackageDTO is the embedded package description.
type PackageDTO struct {
	WeightKg    float64
	Description string `gorm:"type:text"`
	Cluster     int
}

// PricingDTO is the embedded price breakdown.
type PricingDTO struct {
	BasePrice      float64
	WeightCharge   float64
	DistanceCharge float64
	ClusterCharge  float64
	TotalPrice     float64
}

// EarningsDTO is the embedded driver earnings split. CommissionRate is the
// fraction retained by the platform, kept for rehydration; the money amount
// is gross minus driver net.
type EarningsDTO struct {
	Gross          float64
	CommissionRate float64
	DriverNet      float64
	Paid           bool
	PaidAt         *time.Time
}

// StatusUpdateDTO is one row of the append-only status history.
type StatusUpdateDTO struct {
	ID         uint      `gorm:"primaryKey;autoIncrement"`
	DeliveryID uuid.UUID `gorm:"type:uuid;not null;index"`
	Status     int       `gorm:"not null"`
	ActorID    uuid.UUID `gorm:"type:uuid;not null"`
	Note       string    `gorm:"type:text"`
	At         time.Time `gorm:"not null"`
}

// TableName overrides GORM's default naming to use "status_updates".
func (StatusUpdateDTO) TableName() string {
	return "status_updates"
}

// fromDomain converts a delivery aggregate to its database representation.
func fromDomain(aggregate *delivery.Delivery) DeliveryDTO {
	deliveryID := aggregate.ID().Bytes()

	dto := DeliveryDTO{
		ID:         deliveryID,
		Reference:  aggregate.Reference(),
		CustomerID: aggregate.CustomerID().Bytes(),
		Pickup:     addressFromDomain(aggregate.Pickup()),
		Drop:       addressFromDomain(aggregate.Drop()),
		Package: PackageDTO{
			WeightKg:    aggregate.Package().WeightKg,
			Description: aggregate.Package().Description,
			Cluster:     int(aggregate.Package().Cluster),
		},
		ContactNumber:        aggregate.Contact(),
		Notes:                aggregate.Notes(),
		EstimatedDistanceKm:  aggregate.EstimatedDistanceKm(),
		EstimatedDurationMin: aggregate.EstimatedDurationMin(),
		AssignedDriverID:     optionalID(aggregate.AssignedDriver()),
		AssignedVehicleID:    optionalID(aggregate.AssignedVehicle()),
		Status:               int(aggregate.Status()),
		AdminApproved:        aggregate.AdminApproved(),
		DriverAccepted:       aggregate.DriverAccepted(),
		DriverRejectedReason: aggregate.DriverRejectedReason(),
		Pricing: PricingDTO{
			BasePrice:      aggregate.Pricing().BasePrice(),
			WeightCharge:   aggregate.Pricing().WeightCharge(),
			DistanceCharge: aggregate.Pricing().DistanceCharge(),
			ClusterCharge:  aggregate.Pricing().ClusterCharge(),
			TotalPrice:     aggregate.Pricing().TotalPrice(),
		},
		PaymentStatus: int(aggregate.PaymentStatus()),
		PaymentMethod: int(aggregate.PaymentMethod()),
		PaidAt:        aggregate.PaidAt(),
		Earnings: EarningsDTO{
			Gross:          aggregate.Earnings().Gross(),
			CommissionRate: aggregate.Earnings().Commission(),
			DriverNet:      aggregate.Earnings().Net(),
			Paid:           aggregate.Earnings().PaidToDriver(),
			PaidAt:         aggregate.Earnings().PaidAt(),
		},
		StartTime: aggregate.StartTime(),
		EndTime:   aggregate.EndTime(),
		Version:   aggregate.Version(),
	}

	if rating := aggregate.Rating(); rating != nil {
		stars := rating.Stars()
		ratedAt := rating.RatedAt()
		dto.RatingStars = &stars
		dto.RatingFeedback = rating.Feedback()
		dto.RatedAt = &ratedAt
	}

	if cancellation := aggregate.Cancellation(); cancellation != nil {
		cancelledBy := cancellation.CancelledBy().Bytes()
		cancelledAt := cancellation.CancelledAt()
		refundStatus := int(cancellation.RefundStatus())
		dto.CancelledBy = &cancelledBy
		dto.CancelReason = cancellation.Reason()
		dto.RefundAmount = cancellation.RefundAmount()
		dto.RefundStatus = &refundStatus
		dto.CancelledAt = &cancelledAt
	}

	if current := aggregate.CurrentLocation(); current != nil {
		lat := current.Point.Lat()
		lng := current.Point.Lng()
		updatedAt := current.UpdatedAt
		dto.CurrentLat = &lat
		dto.CurrentLng = &lng
		dto.LocationUpdatedAt = &updatedAt
	}

	for _, update := range aggregate.History() {
		dto.History = append(dto.History, StatusUpdateDTO{
			DeliveryID: deliveryID,
			Status:     int(update.Status()),
			ActorID:    update.Actor().Bytes(),
			Note:       update.Note(),
			At:         update.At(),
		})
	}

	return dto
}

// toDomain converts a database DTO back into a delivery aggregate.
func toDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	pickup, err := addressToDomain(dto.Pickup)
	if err != nil {
		return nil, err
	}
	drop, err := addressToDomain(dto.Drop)
	if err != nil {
		return nil, err
	}
	driverID, err := optionalToDomain(dto.AssignedDriverID)
	if err != nil {
		return nil, err
	}
	vehicleID, err := optionalToDomain(dto.AssignedVehicleID)
	if err != nil {
		return nil, err
	}

	snapshot := delivery.Snapshot{
		ID:         id,
		Reference:  dto.Reference,
		CustomerID: customerID,
		Pickup:     pickup,
		Drop:       drop,
		Package: delivery.PackageDetails{
			WeightKg:    dto.Package.WeightKg,
			Description: dto.Package.Description,
			Cluster:     delivery.Cluster(dto.Package.Cluster),
		},
		Contact:              dto.ContactNumber,
		Notes:                dto.Notes,
		EstimatedDistanceKm:  dto.EstimatedDistanceKm,
		EstimatedDurationMin: dto.EstimatedDurationMin,
		AssignedDriverID:     driverID,
		AssignedVehicleID:    vehicleID,
		Status:               delivery.Status(dto.Status),
		AdminApproved:        dto.AdminApproved,
		DriverAccepted:       dto.DriverAccepted,
		DriverRejectedReason: dto.DriverRejectedReason,
		Pricing: delivery.RestorePricing(
			dto.Pricing.BasePrice,
			dto.Pricing.WeightCharge,
			dto.Pricing.DistanceCharge,
			dto.Pricing.ClusterCharge,
			dto.Pricing.TotalPrice,
		),
		Payment: delivery.PaymentStatus(dto.PaymentStatus),
		Method:  delivery.PaymentMethod(dto.PaymentMethod),
		PaidAt:  dto.PaidAt,
		Earnings: delivery.RestoreEarnings(
			dto.Earnings.Gross,
			dto.Earnings.CommissionRate,
			dto.Earnings.DriverNet,
			dto.Earnings.Paid,
			dto.Earnings.PaidAt,
		),
		StartTime: dto.StartTime,
		EndTime:   dto.EndTime,
		Version:   dto.Version,
	}

	if dto.RatingStars != nil && dto.RatedAt != nil {
		rating, ratingErr := delivery.NewRating(*dto.RatingStars, dto.RatingFeedback, *dto.RatedAt)
		if ratingErr != nil {
			return nil, ratingErr
		}
		snapshot.Rating = &rating
	}

	if dto.CancelledBy != nil && dto.RefundStatus != nil && dto.CancelledAt != nil {
		cancelledBy, byErr := kernel.UUIDFromBytes((*dto.CancelledBy)[:])
		if byErr != nil {
			return nil, byErr
		}
		cancellation := delivery.RestoreCancellation(
			cancelledBy,
			*dto.CancelledAt,
			dto.CancelReason,
			dto.RefundAmount,
			delivery.RefundStatus(*dto.RefundStatus),
		)
		snapshot.Cancellation = &cancellation
	}

	if dto.CurrentLat != nil && dto.CurrentLng != nil && dto.LocationUpdatedAt != nil {
		point, pointErr := kernel.NewGeoPoint(*dto.CurrentLat, *dto.CurrentLng)
		if pointErr != nil {
			return nil, pointErr
		}
		snapshot.Current = &delivery.TrackPoint{Point: point, UpdatedAt: *dto.LocationUpdatedAt}
	}

	for _, row := range dto.History {
		actor, actorErr := kernel.UUIDFromBytes(row.ActorID[:])
		if actorErr != nil {
			return nil, actorErr
		}
		snapshot.History = append(snapshot.History, delivery.RestoreStatusUpdate(
			delivery.Status(row.Status), actor, row.Note, row.At))
	}

	return delivery.RestoreDelivery(snapshot)
}

func addressFromDomain(a kernel.Address) AddressDTO {
	return AddressDTO{
		Street: a.Street(),
		Lat:    a.Point().Lat(),
		Lng:    a.Point().Lng(),
	}
}

func addressToDomain(dto AddressDTO) (kernel.Address, error) {
	point, err := kernel.NewGeoPoint(dto.Lat, dto.Lng)
	if err != nil {
		return kernel.Address{}, err
	}
	return kernel.NewAddress(dto.Street, point)
}

func optionalID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func optionalToDomain(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	converted, err := kernel.UUIDFromBytes((*id)[:])
	if err != nil {
		return nil, err
	}
	return &converted, nil
}
