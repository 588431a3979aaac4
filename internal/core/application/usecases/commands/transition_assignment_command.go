package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrTransitionAssignmentCommandIsNotConstructed = errors.New(
	"TransitionAssignmentCommand must be created via NewTransitionAssignmentCommand constructor",
)

// TransitionAssignmentCommand moves an assignment to a target status on behalf of an actor.
type TransitionAssignmentCommand struct { //nolint:recvcheck //using for validation
	assignmentID kernel.UUID
	target       assignment.Status
	actor        assignment.Actor

	guard guard.ConstructorGuard
}

func NewTransitionAssignmentCommand(
	assignmentID kernel.UUID,
	target assignment.Status,
	actor assignment.Actor,
) (TransitionAssignmentCommand, error) {
	if err := errors.Join(assignmentID.Validate(), target.Validate(), actor.Validate()); err != nil {
		return TransitionAssignmentCommand{}, err
	}

	return TransitionAssignmentCommand{
		assignmentID: assignmentID,
		target:       target,
		actor:        actor,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c TransitionAssignmentCommand) Validate() error {
	return c.guard.Validate(ErrTransitionAssignmentCommandIsNotConstructed)
}

func (c TransitionAssignmentCommand) AssignmentID() kernel.UUID { return c.assignmentID }
func (c TransitionAssignmentCommand) Target() assignment.Status { return c.target }
func (c TransitionAssignmentCommand) Actor() assignment.Actor   { return c.actor }
