package commands

import (
	"errors"

	"fleetops/internal/core/domain/model/delivery"
	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/pkg/errs"
	"fleetops/internal/pkg/guard"
)

var ErrPayDeliveryCommandIsNotConstructed = errors.New(
	"PayDeliveryCommand must be created via NewPayDeliveryCommand constructor",
)

// PayDeliveryCommand represents a customer paying for a delivery. Wallet
// payments move the total price from the customer wallet to the platform
// wallet; other methods only mark the delivery paid.
type PayDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	customerID kernel.UUID
	method     delivery.PaymentMethod

	guard guard.ConstructorGuard
}

// NewPayDeliveryCommand creates a command to pay for a delivery.
func NewPayDeliveryCommand(deliveryID, customerID kernel.UUID, method delivery.PaymentMethod) (PayDeliveryCommand, error) {
	cmd := PayDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setCustomerID(customerID),
		cmd.setMethod(method),
	); err != nil {
		return PayDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PayDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrPayDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the delivery being paid for.
func (c PayDeliveryCommand) DeliveryID() kernel.UUID { return c.deliveryID }

// CustomerID returns the paying customer.
func (c PayDeliveryCommand) CustomerID() kernel.UUID { return c.customerID }

// Method returns the payment method.
func (c PayDeliveryCommand) Method() delivery.PaymentMethod { return c.method }

func (c *PayDeliveryCommand) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.deliveryID = id
	return nil
}

func (c *PayDeliveryCommand) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.customerID = id
	return nil
}

func (c *PayDeliveryCommand) setMethod(method delivery.PaymentMethod) error {
	if method == delivery.PaymentMethodUnset {
		return errs.NewValueIsRequiredError("paymentMethod")
	}
	c.method = method
	return nil
}
