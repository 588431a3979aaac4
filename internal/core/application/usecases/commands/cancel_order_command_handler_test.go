package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCancelOrderCommandHandler_Handle_WithLiveAssignment(t *testing.T) {
	// Arrange
	ctx := t.Context()
	a, o, c := newLiveAssignment(t)
	cmd, err := commands.NewCancelOrderCommand(o.ID(), assignment.ActorDispatcher)
	require.NoError(t, err)

	m := newCreateAssignmentMocks()
	m.factory.On("Create").Return(m.uow).Once()
	m.expectRepos()
	mock.InOrder(
		m.uow.On("Begin", ctx).Return(nil).Once(),
		m.assignments.On("FindLiveByOrder", ctx, o.ID()).Return(a, true, nil).Once(),
		m.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
		m.couriers.On("GetForUpdate", ctx, c.ID()).Return(c, nil).Once(),
		m.assignments.On("Update", ctx, a).Return(nil).Once(),
		m.orders.On("Update", ctx, o).Return(nil).Once(),
		m.couriers.On("Update", ctx, c).Return(nil).Once(),
		m.uow.On("Commit", ctx).Return(nil).Once(),
		m.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewCancelOrderCommandHandler(m.factory, fixedClock(), noRetry(0))

	// Act
	result, err := handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, order.Cancelled, result.Status())
	assert.Equal(t, assignment.StatusCancelled, a.Status())
	assert.Equal(t, 0, c.ActiveAssignments())
	assert.Equal(t, courier.StatusAvailable, c.Status())
	m.assertExpectations(t)
}

func TestCancelOrderCommandHandler_Handle_WithoutAssignment(t *testing.T) {
	ctx := t.Context()
	o := newTestOrder(t)
	cmd, err := commands.NewCancelOrderCommand(o.ID(), assignment.ActorDispatcher)
	require.NoError(t, err)

	m := newCreateAssignmentMocks()
	m.factory.On("Create").Return(m.uow).Once()
	m.expectRepos()
	mock.InOrder(
		m.uow.On("Begin", ctx).Return(nil).Once(),
		m.assignments.On("FindLiveByOrder", ctx, o.ID()).Return(nil, false, nil).Once(),
		m.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
		m.assignments.On("FindLiveByOrder", ctx, o.ID()).Return(nil, false, nil).Once(),
		m.orders.On("Update", ctx, o).Return(nil).Once(),
		m.uow.On("Commit", ctx).Return(nil).Once(),
		m.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewCancelOrderCommandHandler(m.factory, fixedClock(), noRetry(0))

	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Cancelled, result.Status())
	m.assertExpectations(t)
}

func TestCancelOrderCommandHandler_Handle_AssignmentCreatedWhileWaitingForLock(t *testing.T) {
	ctx := t.Context()
	a, o, c := newLiveAssignment(t)
	cmd, err := commands.NewCancelOrderCommand(o.ID(), assignment.ActorSystem)
	require.NoError(t, err)

	m := newCreateAssignmentMocks()
	m.factory.On("Create").Return(m.uow).Once()
	m.expectRepos()
	mock.InOrder(
		m.uow.On("Begin", ctx).Return(nil).Once(),
		m.assignments.On("FindLiveByOrder", ctx, o.ID()).Return(nil, false, nil).Once(),
		m.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
		m.assignments.On("FindLiveByOrder", ctx, o.ID()).Return(a, true, nil).Once(),
		m.couriers.On("GetForUpdate", ctx, c.ID()).Return(c, nil).Once(),
		m.assignments.On("Update", ctx, a).Return(nil).Once(),
		m.orders.On("Update", ctx, o).Return(nil).Once(),
		m.couriers.On("Update", ctx, c).Return(nil).Once(),
		m.uow.On("Commit", ctx).Return(nil).Once(),
		m.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewCancelOrderCommandHandler(m.factory, fixedClock(), noRetry(0))

	_, err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, assignment.StatusCancelled, a.Status())
	assert.Equal(t, 0, c.ActiveAssignments())
	m.assertExpectations(t)
}

func TestCancelOrderCommandHandler_Handle_AlreadyCancelledIsNoop(t *testing.T) {
	ctx := t.Context()
	o := newTestOrder(t)
	_, err := o.Cancel(fixedNow)
	require.NoError(t, err)
	cmd, err := commands.NewCancelOrderCommand(o.ID(), assignment.ActorDispatcher)
	require.NoError(t, err)

	m := newCreateAssignmentMocks()
	m.factory.On("Create").Return(m.uow).Once()
	m.expectRepos()
	mock.InOrder(
		m.uow.On("Begin", ctx).Return(nil).Once(),
		m.assignments.On("FindLiveByOrder", ctx, o.ID()).Return(nil, false, nil).Once(),
		m.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
		m.assignments.On("FindLiveByOrder", ctx, o.ID()).Return(nil, false, nil).Once(),
		m.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewCancelOrderCommandHandler(m.factory, fixedClock(), noRetry(0))

	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Cancelled, result.Status())
	m.orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	m.assertExpectations(t)
}

func TestCancelOrderCommandHandler_Handle_DeliveredOrderFails(t *testing.T) {
	ctx := t.Context()
	o := newTestOrder(t)
	_, err := o.Promote(order.Delivered, fixedNow)
	require.NoError(t, err)
	cmd, err := commands.NewCancelOrderCommand(o.ID(), assignment.ActorDispatcher)
	require.NoError(t, err)

	m := newCreateAssignmentMocks()
	m.factory.On("Create").Return(m.uow).Once()
	m.expectRepos()
	mock.InOrder(
		m.uow.On("Begin", ctx).Return(nil).Once(),
		m.assignments.On("FindLiveByOrder", ctx, o.ID()).Return(nil, false, nil).Once(),
		m.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
		m.assignments.On("FindLiveByOrder", ctx, o.ID()).Return(nil, false, nil).Once(),
		m.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewCancelOrderCommandHandler(m.factory, fixedClock(), noRetry(0))

	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrInvalidTransition)
	m.assertExpectations(t)
}
