package commands

import (
	"errors"

	"fleetops/internal/core/domain/model/delivery"
	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/pkg/errs"
	"fleetops/internal/pkg/guard"
)

var ErrRateDeliveryCommandIsNotConstructed = errors.New(
	"RateDeliveryCommand must be created via NewRateDeliveryCommand constructor",
)

// RateDeliveryCommand represents the customer rating a delivered shipment.
type RateDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	customerID kernel.UUID
	stars      int
	feedback   string

	guard guard.ConstructorGuard
}

// NewRateDeliveryCommand creates a command to rate a delivered shipment.
// Stars must be between 1 and 5.
func NewRateDeliveryCommand(deliveryID, customerID kernel.UUID, stars int, feedback string) (RateDeliveryCommand, error) {
	cmd := RateDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setCustomerID(customerID),
		cmd.setStars(stars),
	); err != nil {
		return RateDeliveryCommand{}, err
	}

	cmd.feedback = feedback
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RateDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrRateDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the delivery being rated.
func (c RateDeliveryCommand) DeliveryID() kernel.UUID { return c.deliveryID }

// CustomerID returns the rating customer.
func (c RateDeliveryCommand) CustomerID() kernel.UUID { return c.customerID }

// Stars returns the star count, 1 to 5.
func (c RateDeliveryCommand) Stars() int { return c.stars }

// Feedback returns the free-text feedback, possibly empty.
func (c RateDeliveryCommand) Feedback() string { return c.feedback }

func (c *RateDeliveryCommand) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.deliveryID = id
	return nil
}

func (c *RateDeliveryCommand) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.customerID = id
	return nil
}

func (c *RateDeliveryCommand) setStars(stars int) error {
	if stars < delivery.RatingMinStars || stars > delivery.RatingMaxStars {
		return errs.NewValueIsOutOfRangeError("stars", stars, delivery.RatingMinStars, delivery.RatingMaxStars)
	}
	c.stars = stars
	return nil
}
