package assignment_test

import (
	"testing"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from  assignment.Status
		to    assignment.Status
		actor assignment.Actor
		ok    bool
	}{
		{assignment.StatusAssigned, assignment.StatusAccepted, assignment.ActorCourier, true},
		{assignment.StatusAssigned, assignment.StatusAccepted, assignment.ActorDispatcher, false},
		{assignment.StatusAssigned, assignment.StatusRejected, assignment.ActorCourier, true},
		{assignment.StatusAssigned, assignment.StatusRejected, assignment.ActorDispatcher, true},
		{assignment.StatusAssigned, assignment.StatusRejected, assignment.ActorSystem, true},
		{assignment.StatusAssigned, assignment.StatusCancelled, assignment.ActorSystem, true},
		{assignment.StatusAssigned, assignment.StatusCancelled, assignment.ActorCourier, false},
		{assignment.StatusAssigned, assignment.StatusPickedUp, assignment.ActorCourier, false},
		{assignment.StatusAssigned, assignment.StatusDelivered, assignment.ActorCourier, false},
		{assignment.StatusAccepted, assignment.StatusPickedUp, assignment.ActorCourier, true},
		{assignment.StatusAccepted, assignment.StatusRejected, assignment.ActorCourier, false},
		{assignment.StatusAccepted, assignment.StatusCancelled, assignment.ActorDispatcher, true},
		{assignment.StatusPickedUp, assignment.StatusOnTheWay, assignment.ActorCourier, true},
		{assignment.StatusPickedUp, assignment.StatusDelivered, assignment.ActorCourier, false},
		{assignment.StatusOnTheWay, assignment.StatusDelivered, assignment.ActorCourier, true},
		{assignment.StatusOnTheWay, assignment.StatusDelivered, assignment.ActorSystem, false},
		{assignment.StatusOnTheWay, assignment.StatusCancelled, assignment.ActorDispatcher, true},
		{assignment.StatusDelivered, assignment.StatusCancelled, assignment.ActorSystem, false},
		{assignment.StatusRejected, assignment.StatusAccepted, assignment.ActorCourier, false},
		{assignment.StatusCancelled, assignment.StatusAssigned, assignment.ActorSystem, false},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String()+" by "+tt.actor.String(), func(t *testing.T) {
			err := assignment.CanTransition(tt.from, tt.to, tt.actor)
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, errs.ErrInvalidTransition)
		})
	}
}

func TestCanTransition_ReportsAllowedTargets(t *testing.T) {
	err := assignment.CanTransition(assignment.StatusAssigned, assignment.StatusDelivered, assignment.ActorCourier)

	var transitionErr *errs.InvalidTransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, "assignment", transitionErr.Entity)
	assert.Equal(t, []string{"accepted", "rejected"}, transitionErr.Allowed)
	assert.Contains(t, err.Error(), "assigned -> delivered by courier")
}

func TestAllowedTargets(t *testing.T) {
	assert.Equal(t,
		[]assignment.Status{assignment.StatusRejected, assignment.StatusCancelled},
		assignment.AllowedTargets(assignment.StatusAssigned, assignment.ActorDispatcher))
	assert.Empty(t, assignment.AllowedTargets(assignment.StatusDelivered, assignment.ActorSystem))
}

func TestTerminalStatusesHaveNoExit(t *testing.T) {
	for _, s := range assignment.AllStatuses() {
		if !s.IsTerminal() {
			continue
		}
		for _, actor := range []assignment.Actor{
			assignment.ActorCourier, assignment.ActorDispatcher, assignment.ActorSystem,
		} {
			assert.Empty(t, assignment.AllowedTargets(s, actor), "%s by %s", s, actor)
		}
	}
}
