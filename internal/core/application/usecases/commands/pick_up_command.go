package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrPickUpCommandIsNotConstructed = errors.New(
	"PickUpCommand must be created via NewPickUpCommand constructor",
)

// PickUpCommand serves clients that only know "picked up" and "delivered". It applies
// accepted -> picked_up and nothing else: an assignment that was never accepted fails with
// InvalidTransitionError, so the courier app has to accept first.
type PickUpCommand struct { //nolint:recvcheck //using for validation
	assignmentID kernel.UUID
	actor        assignment.Actor

	guard guard.ConstructorGuard
}

func NewPickUpCommand(assignmentID kernel.UUID, actor assignment.Actor) (PickUpCommand, error) {
	if err := errors.Join(assignmentID.Validate(), actor.Validate()); err != nil {
		return PickUpCommand{}, err
	}

	return PickUpCommand{
		assignmentID: assignmentID,
		actor:        actor,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c PickUpCommand) Validate() error {
	return c.guard.Validate(ErrPickUpCommandIsNotConstructed)
}

func (c PickUpCommand) AssignmentID() kernel.UUID { return c.assignmentID }
func (c PickUpCommand) Actor() assignment.Actor   { return c.actor }

type PickUpCommandHandler struct {
	transitions TransitionAssignmentCommandHandler
}

func NewPickUpCommandHandler(transitions TransitionAssignmentCommandHandler) PickUpCommandHandler {
	return PickUpCommandHandler{transitions: transitions}
}

func (h PickUpCommandHandler) Handle(ctx context.Context, cmd PickUpCommand) (*assignment.Assignment, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	transition, err := NewTransitionAssignmentCommand(cmd.AssignmentID(), assignment.StatusPickedUp, cmd.Actor())
	if err != nil {
		return nil, err
	}
	return h.transitions.Handle(ctx, transition)
}
