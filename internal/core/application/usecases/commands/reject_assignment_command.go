package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrRejectAssignmentCommandIsNotConstructed = errors.New(
	"RejectAssignmentCommand must be created via NewRejectAssignmentCommand constructor",
)

// RejectAssignmentCommand releases an assignment that was not accepted yet.
type RejectAssignmentCommand struct { //nolint:recvcheck //using for validation
	assignmentID kernel.UUID
	actor        assignment.Actor

	guard guard.ConstructorGuard
}

func NewRejectAssignmentCommand(assignmentID kernel.UUID, actor assignment.Actor) (RejectAssignmentCommand, error) {
	if err := errors.Join(assignmentID.Validate(), actor.Validate()); err != nil {
		return RejectAssignmentCommand{}, err
	}

	return RejectAssignmentCommand{
		assignmentID: assignmentID,
		actor:        actor,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c RejectAssignmentCommand) Validate() error {
	return c.guard.Validate(ErrRejectAssignmentCommandIsNotConstructed)
}

func (c RejectAssignmentCommand) AssignmentID() kernel.UUID { return c.assignmentID }
func (c RejectAssignmentCommand) Actor() assignment.Actor   { return c.actor }

// RejectAssignmentCommandHandler runs the rejection through the transition path.
type RejectAssignmentCommandHandler struct {
	transitions TransitionAssignmentCommandHandler
}

func NewRejectAssignmentCommandHandler(transitions TransitionAssignmentCommandHandler) RejectAssignmentCommandHandler {
	return RejectAssignmentCommandHandler{transitions: transitions}
}

func (h RejectAssignmentCommandHandler) Handle(
	ctx context.Context,
	cmd RejectAssignmentCommand,
) (*assignment.Assignment, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	transition, err := NewTransitionAssignmentCommand(cmd.AssignmentID(), assignment.StatusRejected, cmd.Actor())
	if err != nil {
		return nil, err
	}
	return h.transitions.Handle(ctx, transition)
}
