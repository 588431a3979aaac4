package assignment

import "dispatch/internal/pkg/errs"

type edge struct {
	from Status
	to   Status
}

var (
	courierOnly = []Actor{ActorCourier}
	staffOnly   = []Actor{ActorDispatcher, ActorSystem}
	anyone      = []Actor{ActorCourier, ActorDispatcher, ActorSystem}
)

// transitions is the complete machine. An edge missing here is not allowed for anybody.
var transitions = map[edge][]Actor{
	{StatusAssigned, StatusAccepted}:  courierOnly,
	{StatusAssigned, StatusRejected}:  anyone,
	{StatusAssigned, StatusCancelled}: staffOnly,

	{StatusAccepted, StatusPickedUp}:  courierOnly,
	{StatusAccepted, StatusCancelled}: staffOnly,

	{StatusPickedUp, StatusOnTheWay}:  courierOnly,
	{StatusPickedUp, StatusCancelled}: staffOnly,

	{StatusOnTheWay, StatusDelivered}: courierOnly,
	{StatusOnTheWay, StatusCancelled}: staffOnly,
}

// CanTransition returns nil when actor may move an assignment from one status to another,
// otherwise an InvalidTransitionError listing what the actor could do instead.
func CanTransition(from, to Status, actor Actor) error {
	for _, allowed := range transitions[edge{from, to}] {
		if allowed == actor {
			return nil
		}
	}

	targets := AllowedTargets(from, actor)
	names := make([]string, 0, len(targets))
	for _, t := range targets {
		names = append(names, t.String())
	}
	return errs.NewInvalidTransitionError("assignment", from.String(), to.String(), actor.String(), names)
}

// AllowedTargets lists the statuses actor may move an assignment in status from to,
// in lifecycle order.
func AllowedTargets(from Status, actor Actor) []Status {
	var targets []Status
	for _, to := range AllStatuses() {
		for _, allowed := range transitions[edge{from, to}] {
			if allowed == actor {
				targets = append(targets, to)
				break
			}
		}
	}
	return targets
}
