package services_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newOrder(t *testing.T) *order.Order {
	t.Helper()
	customer, _ := order.NewCustomer("Ayşe", "+905550000000")
	address, _ := order.NewAddress("Istiklal Cd. 10", nil)
	subtotal, _ := kernel.NewMoneyFromFloat(100)
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), customer, address, subtotal, kernel.ZeroMoney(), now)
	require.NoError(t, err)
	return o
}

func availableCourier(t *testing.T) *courier.Courier {
	t.Helper()
	vehicle, _ := courier.NewVehicle(courier.VehicleBicycle, "")
	c, err := courier.NewCourier(kernel.NewUUID(), "Mehmet", "+905551112233", vehicle, now)
	require.NoError(t, err)
	c.SetAvailability(true, now)
	return c
}

func assigned(t *testing.T) (*assignment.Assignment, *order.Order, *courier.Courier) {
	t.Helper()
	o := newOrder(t)
	c := availableCourier(t)
	fee, _ := kernel.NewMoneyFromFloat(15)
	a, err := services.NewDeliverySynchronizer().Assign(kernel.NewUUID(), o, c, fee, now)
	require.NoError(t, err)
	return a, o, c
}

func TestDeliverySynchronizer_Assign(t *testing.T) {
	t.Run("should confirm pending order and count the assignment", func(t *testing.T) {
		a, o, c := assigned(t)

		assert.Equal(t, assignment.StatusAssigned, a.Status())
		assert.True(t, a.RestaurantID().IsEqual(o.RestaurantID()))
		assert.Equal(t, order.Confirmed, o.Status())
		assert.Equal(t, 1, c.ActiveAssignments())
		assert.Equal(t, courier.StatusBusy, c.Status())
	})

	t.Run("should keep a preparing order preparing", func(t *testing.T) {
		o := newOrder(t)
		_, _ = o.Advance(order.Preparing, now)

		_, err := services.NewDeliverySynchronizer().Assign(kernel.NewUUID(), o, availableCourier(t), kernel.ZeroMoney(), now)
		require.NoError(t, err)
		assert.Equal(t, order.Preparing, o.Status())
	})

	t.Run("should refuse an offline courier", func(t *testing.T) {
		o := newOrder(t)
		c := availableCourier(t)
		c.SetAvailability(false, now)

		_, err := services.NewDeliverySynchronizer().Assign(kernel.NewUUID(), o, c, kernel.ZeroMoney(), now)
		require.ErrorIs(t, err, errs.ErrCourierUnavailable)
		assert.Equal(t, order.Pending, o.Status())
		assert.Zero(t, c.ActiveAssignments())
	})

	t.Run("should refuse a terminal order", func(t *testing.T) {
		o := newOrder(t)
		_, _ = o.Cancel(now)

		_, err := services.NewDeliverySynchronizer().Assign(kernel.NewUUID(), o, availableCourier(t), kernel.ZeroMoney(), now)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestDeliverySynchronizer_Transition_FullDelivery(t *testing.T) {
	a, o, c := assigned(t)
	sync := services.NewDeliverySynchronizer()

	steps := []struct {
		target  assignment.Status
		order   order.Status
		courier courier.Status
		active  int
	}{
		{assignment.StatusAccepted, order.Confirmed, courier.StatusBusy, 1},
		{assignment.StatusPickedUp, order.OutForDelivery, courier.StatusOnDelivery, 1},
		{assignment.StatusOnTheWay, order.OutForDelivery, courier.StatusOnDelivery, 1},
		{assignment.StatusDelivered, order.Delivered, courier.StatusAvailable, 0},
	}

	for _, step := range steps {
		changed, err := sync.Transition(a, o, c, step.target, assignment.ActorCourier, now)
		require.NoError(t, err, step.target.String())
		assert.True(t, changed)
		assert.Equal(t, step.order, o.Status(), step.target.String())
		assert.Equal(t, step.courier, c.Status(), step.target.String())
		assert.Equal(t, step.active, c.ActiveAssignments(), step.target.String())
		assert.True(t, a.Status().PairsWith(o.Status()))
	}
}

func TestDeliverySynchronizer_Transition_RepeatIsNoop(t *testing.T) {
	a, o, c := assigned(t)
	sync := services.NewDeliverySynchronizer()

	_, err := sync.Transition(a, o, c, assignment.StatusAccepted, assignment.ActorCourier, now)
	require.NoError(t, err)
	a.ClearChanges()
	o.ClearChanges()
	c.ClearChanges()

	changed, err := sync.Transition(a, o, c, assignment.StatusAccepted, assignment.ActorCourier, now)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, 1, c.ActiveAssignments())
	assert.Empty(t, a.Changes())
	assert.Empty(t, o.Changes())
	assert.Empty(t, c.Changes())
}

func TestDeliverySynchronizer_Transition_Reject(t *testing.T) {
	a, o, c := assigned(t)

	changed, err := services.NewDeliverySynchronizer().
		Transition(a, o, c, assignment.StatusRejected, assignment.ActorCourier, now)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, order.Confirmed, o.Status())
	assert.Zero(t, c.ActiveAssignments())
	assert.Equal(t, courier.StatusAvailable, c.Status())
}

func TestDeliverySynchronizer_Transition_Cancel(t *testing.T) {
	a, o, c := assigned(t)
	sync := services.NewDeliverySynchronizer()
	_, err := sync.Transition(a, o, c, assignment.StatusAccepted, assignment.ActorCourier, now)
	require.NoError(t, err)
	_, err = sync.Transition(a, o, c, assignment.StatusPickedUp, assignment.ActorCourier, now)
	require.NoError(t, err)

	_, err = sync.Transition(a, o, c, assignment.StatusCancelled, assignment.ActorCourier, now)
	require.ErrorIs(t, err, errs.ErrInvalidTransition)
	assert.Equal(t, order.OutForDelivery, o.Status())

	changed, err := sync.Transition(a, o, c, assignment.StatusCancelled, assignment.ActorDispatcher, now)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, order.Cancelled, o.Status())
	assert.Zero(t, c.ActiveAssignments())
}

func TestDeliverySynchronizer_Transition_InvalidEdgeChangesNothing(t *testing.T) {
	a, o, c := assigned(t)

	_, err := services.NewDeliverySynchronizer().
		Transition(a, o, c, assignment.StatusDelivered, assignment.ActorCourier, now)
	require.ErrorIs(t, err, errs.ErrInvalidTransition)
	assert.Equal(t, assignment.StatusAssigned, a.Status())
	assert.Equal(t, order.Confirmed, o.Status())
	assert.Equal(t, 1, c.ActiveAssignments())
}

func TestDeliverySynchronizer_Transition_MismatchedAggregates(t *testing.T) {
	a, o, _ := assigned(t)

	_, err := services.NewDeliverySynchronizer().
		Transition(a, o, availableCourier(t), assignment.StatusAccepted, assignment.ActorCourier, now)
	require.Error(t, err)
	assert.Equal(t, assignment.StatusAssigned, a.Status())
}
