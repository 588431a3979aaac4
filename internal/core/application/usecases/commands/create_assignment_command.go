package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrCreateAssignmentCommandIsNotConstructed = errors.New(
	"CreateAssignmentCommand must be created via NewCreateAssignmentCommand constructor",
)

// CreateAssignmentCommand asks the coordinator to hand an order to a courier.
//
// Example:
//
//	cmd, err := NewCreateAssignmentCommand(kernel.NewUUID(), orderID, courierID, fee)
//	if err != nil {
//	    return err
//	}
//	a, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrAlreadyAssigned) {
//	    // another dispatcher won the order
//	}
type CreateAssignmentCommand struct { //nolint:recvcheck //using for validation
	assignmentID kernel.UUID
	orderID      kernel.UUID
	courierID    kernel.UUID
	deliveryFee  kernel.Money

	guard guard.ConstructorGuard
}

// NewCreateAssignmentCommand validates the identifiers and the fee.
func NewCreateAssignmentCommand(
	assignmentID, orderID, courierID kernel.UUID,
	deliveryFee kernel.Money,
) (CreateAssignmentCommand, error) {
	cmd := CreateAssignmentCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		assignmentID.Validate(),
		orderID.Validate(),
		courierID.Validate(),
		deliveryFee.Validate(),
	); err != nil {
		return CreateAssignmentCommand{}, err
	}

	cmd.assignmentID = assignmentID
	cmd.orderID = orderID
	cmd.courierID = courierID
	cmd.deliveryFee = deliveryFee
	return cmd, nil
}

func (c CreateAssignmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateAssignmentCommandIsNotConstructed)
}

func (c CreateAssignmentCommand) AssignmentID() kernel.UUID { return c.assignmentID }
func (c CreateAssignmentCommand) OrderID() kernel.UUID      { return c.orderID }
func (c CreateAssignmentCommand) CourierID() kernel.UUID    { return c.courierID }
func (c CreateAssignmentCommand) DeliveryFee() kernel.Money { return c.deliveryFee }
