package commands

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var ErrAutoAssignCommandIsNotConstructed = errors.New(
	"AutoAssignCommand must be created via NewAutoAssignCommand constructor",
)

// AutoAssignCommand triggers one round of automated dispatch: the oldest order waiting
// for a courier goes to the nearest available courier within the search radius.
type AutoAssignCommand struct { //nolint:recvcheck //using for validation
	guard guard.ConstructorGuard
}

func NewAutoAssignCommand() AutoAssignCommand {
	return AutoAssignCommand{
		guard: guard.NewConstructorGuard(),
	}
}

func (c AutoAssignCommand) Validate() error {
	return c.guard.Validate(ErrAutoAssignCommandIsNotConstructed)
}
