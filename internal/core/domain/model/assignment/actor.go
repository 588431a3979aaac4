package assignment

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Actor is the party requesting a transition.
type Actor int

const (
	ActorUnknown Actor = iota
	// ActorCourier is the courier holding the assignment.
	ActorCourier
	// ActorDispatcher is restaurant or operations staff.
	ActorDispatcher
	// ActorSystem is an automated trigger inside the service.
	ActorSystem
)

func getActorStrings() map[Actor]string {
	return map[Actor]string{
		ActorUnknown:    "unknown",
		ActorCourier:    "courier",
		ActorDispatcher: "dispatcher",
		ActorSystem:     "system",
	}
}

// ParseActor converts "courier", "dispatcher" or "system" into an Actor.
func ParseActor(s string) (Actor, error) {
	for actor, str := range getActorStrings() {
		if actor != ActorUnknown && str == s {
			return actor, nil
		}
	}
	return ActorUnknown, errs.NewValueIsInvalidErrorWithCause(
		"actor", fmt.Errorf("%q is not a valid actor", s))
}

func (a Actor) Validate() error {
	if a <= ActorUnknown || a > ActorSystem {
		return errs.NewValueIsInvalidErrorWithCause("actor", fmt.Errorf("%d is not a valid actor", a))
	}
	return nil
}

func (a Actor) String() string {
	if str, ok := getActorStrings()[a]; ok {
		return str
	}
	return "unknown"
}
