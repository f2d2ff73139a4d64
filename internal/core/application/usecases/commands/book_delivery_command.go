package commands

import (
	"errors"

	"fleetops/internal/core/domain/model/delivery"
	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/pkg/errs"
	"fleetops/internal/pkg/guard"
)

var ErrBookDeliveryCommandIsNotConstructed = errors.New(
	"BookDeliveryCommand must be created via NewBookDeliveryCommand constructor",
)

// BookDeliveryCommand represents a customer's request to book a new delivery.
// Encapsulates the full booking: addresses, package details, estimated
// distance and contact information.
//
// Example:
//
//	cmd, err := NewBookDeliveryCommand(kernel.NewUUID(), customerID,
//	    pickup, drop,
//	    delivery.PackageDetails{WeightKg: 10, Cluster: delivery.ClusterMedium},
//	    20, "+44 20 7946 0000", "Ring twice")
//	if err != nil {
//	    return fmt.Errorf("invalid booking: %w", err)
//	}
type BookDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	customerID kernel.UUID
	pickup     kernel.Address
	drop       kernel.Address
	pkg        delivery.PackageDetails
	distanceKm float64
	contact    string
	notes      string

	guard guard.ConstructorGuard
}

// NewBookDeliveryCommand creates a command to book a new delivery.
// Validates identifiers, addresses, package weight, distance and contact.
func NewBookDeliveryCommand(
	deliveryID, customerID kernel.UUID,
	pickup, drop kernel.Address,
	pkg delivery.PackageDetails,
	distanceKm float64,
	contact, notes string,
) (BookDeliveryCommand, error) {
	cmd := BookDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setCustomerID(customerID),
		cmd.setPickup(pickup),
		cmd.setDrop(drop),
		cmd.setPackage(pkg),
		cmd.setDistance(distanceKm),
		cmd.setContact(contact),
	); err != nil {
		return BookDeliveryCommand{}, err
	}

	cmd.notes = notes
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c BookDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrBookDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the identifier the new delivery will be created under.
func (c BookDeliveryCommand) DeliveryID() kernel.UUID { return c.deliveryID }

// CustomerID returns the booking customer.
func (c BookDeliveryCommand) CustomerID() kernel.UUID { return c.customerID }

// Pickup returns the pickup address.
func (c BookDeliveryCommand) Pickup() kernel.Address { return c.pickup }

// Drop returns the drop address.
func (c BookDeliveryCommand) Drop() kernel.Address { return c.drop }

// Package returns the package details.
func (c BookDeliveryCommand) Package() delivery.PackageDetails { return c.pkg }

// DistanceKm returns the estimated trip distance.
func (c BookDeliveryCommand) DistanceKm() float64 { return c.distanceKm }

// Contact returns the contact phone number.
func (c BookDeliveryCommand) Contact() string { return c.contact }

// Notes returns the special instructions, possibly empty.
func (c BookDeliveryCommand) Notes() string { return c.notes }

func (c *BookDeliveryCommand) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.deliveryID = id
	return nil
}

func (c *BookDeliveryCommand) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.customerID = id
	return nil
}

func (c *BookDeliveryCommand) setPickup(a kernel.Address) error {
	if err := a.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("pickupLocation", err)
	}
	c.pickup = a
	return nil
}

func (c *BookDeliveryCommand) setDrop(a kernel.Address) error {
	if err := a.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("dropLocation", err)
	}
	c.drop = a
	return nil
}

func (c *BookDeliveryCommand) setPackage(pkg delivery.PackageDetails) error {
	if pkg.WeightKg <= 0 {
		return delivery.ErrWeightIsInvalid
	}
	c.pkg = pkg
	return nil
}

func (c *BookDeliveryCommand) setDistance(km float64) error {
	if km <= 0 {
		return delivery.ErrDistanceIsInvalid
	}
	c.distanceKm = km
	return nil
}

func (c *BookDeliveryCommand) setContact(contact string) error {
	if contact == "" {
		return delivery.ErrContactNumberIsRequired
	}
	c.contact = contact
	return nil
}
