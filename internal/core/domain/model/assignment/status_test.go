package assignment_test

import (
	"testing"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatusAndActor(t *testing.T) {
	for _, s := range assignment.AllStatuses() {
		got, err := assignment.ParseStatus(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
	_, err := assignment.ParseStatus("completed")
	require.Error(t, err)

	actor, err := assignment.ParseActor("dispatcher")
	require.NoError(t, err)
	assert.Equal(t, assignment.ActorDispatcher, actor)
	_, err = assignment.ParseActor("customer")
	require.Error(t, err)
}

func TestStatus_IsLive(t *testing.T) {
	assert.ElementsMatch(t, assignment.LiveStatuses(), func() []assignment.Status {
		var live []assignment.Status
		for _, s := range assignment.AllStatuses() {
			if s.IsLive() {
				live = append(live, s)
			}
		}
		return live
	}())
	assert.False(t, assignment.StatusUnknown.IsLive())
}

func TestStatus_PairedOrderStatuses(t *testing.T) {
	assert.True(t, assignment.StatusAssigned.PairsWith(order.Preparing))
	assert.False(t, assignment.StatusAssigned.PairsWith(order.Pending))
	assert.False(t, assignment.StatusAccepted.PairsWith(order.OutForDelivery))
	assert.True(t, assignment.StatusPickedUp.PairsWith(order.OutForDelivery))
	assert.True(t, assignment.StatusOnTheWay.PairsWith(order.OutForDelivery))
	assert.True(t, assignment.StatusDelivered.PairsWith(order.Delivered))
	assert.False(t, assignment.StatusDelivered.PairsWith(order.Cancelled))
	assert.True(t, assignment.StatusCancelled.PairsWith(order.Cancelled))

	for _, o := range order.AllStatuses() {
		assert.True(t, assignment.StatusRejected.PairsWith(o), o.String())
	}
	assert.Empty(t, assignment.StatusUnknown.PairedOrderStatuses())
}
