package commands

import (
	"errors"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a placed restaurant order entering the dispatch core.
//
// Example:
//
//	customer, _ := order.NewCustomer("Ann", "+49 30 1234567")
//	address, _ := order.NewAddress("Main st. 1", &position)
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), restaurantID, customer, address, subtotal, fee)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	o, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	restaurantID kernel.UUID
	customer     order.Customer
	address      order.Address
	subtotal     kernel.Money
	deliveryFee  kernel.Money

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates identifiers and amounts. Customer and address are value
// objects and arrive validated.
func NewCreateOrderCommand(
	orderID, restaurantID kernel.UUID,
	customer order.Customer,
	address order.Address,
	subtotal, deliveryFee kernel.Money,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		orderID.Validate(),
		restaurantID.Validate(),
		subtotal.Validate(),
		deliveryFee.Validate(),
		validateCustomer(customer),
		validateAddress(address),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	cmd.orderID = orderID
	cmd.restaurantID = restaurantID
	cmd.customer = customer
	cmd.address = address
	cmd.subtotal = subtotal
	cmd.deliveryFee = deliveryFee
	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID      { return c.orderID }
func (c CreateOrderCommand) RestaurantID() kernel.UUID { return c.restaurantID }
func (c CreateOrderCommand) Customer() order.Customer  { return c.customer }
func (c CreateOrderCommand) Address() order.Address    { return c.address }
func (c CreateOrderCommand) Subtotal() kernel.Money    { return c.subtotal }
func (c CreateOrderCommand) DeliveryFee() kernel.Money { return c.deliveryFee }

func validateCustomer(c order.Customer) error {
	if strings.TrimSpace(c.Name()) == "" {
		return order.ErrCustomerNameIsRequired
	}
	if strings.TrimSpace(c.Phone()) == "" {
		return order.ErrCustomerPhoneIsRequired
	}
	return nil
}

func validateAddress(a order.Address) error {
	if strings.TrimSpace(a.Street()) == "" {
		return order.ErrStreetIsRequired
	}
	return nil
}
