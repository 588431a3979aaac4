package commands_test

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/events"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/tracking"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRecordLocationCommandHandler_Handle_Ack(t *testing.T) {
	// Arrange
	ctx := t.Context()
	courierID := kernel.NewUUID()
	gate := tracking.NewGate(tracking.DefaultDebounce)
	cmd, err := commands.NewRecordLocationCommand(courierID, 52.5, 13.4, 8)
	require.NoError(t, err)

	locations := new(MockLocationRepository)
	uow := new(MockUoW)
	factory := new(MockLocationUoWFactory)
	publisher := new(MockEventPublisher)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("LocationRepository").Return(locations).Once(),
		locations.On("Record", ctx, mock.AnythingOfType("tracking.Sample"), gate, fixedNow).
			Return(tracking.Ack(), nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
		publisher.On("Publish", ctx, mock.MatchedBy(func(e events.Envelope) bool {
			return e.Type == events.CourierLocationRecorded && e.CourierID == courierID.String()
		})).Return(nil).Once(),
	)

	handler := commands.NewRecordLocationCommandHandler(factory, gate, fixedClock(), publisher, discardLogger())

	// Act
	outcome, err := handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	assert.True(t, outcome.Recorded)
	factory.AssertExpectations(t)
	uow.AssertExpectations(t)
	locations.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestRecordLocationCommandHandler_Handle_SkippedWritesNothing(t *testing.T) {
	for _, reason := range []tracking.SkipReason{tracking.ReasonTooSoon, tracking.ReasonOffline} {
		t.Run(string(reason), func(t *testing.T) {
			ctx := t.Context()
			gate := tracking.NewGate(tracking.DefaultDebounce)
			cmd, err := commands.NewRecordLocationCommand(kernel.NewUUID(), 52.5, 13.4, 8)
			require.NoError(t, err)

			locations := new(MockLocationRepository)
			uow := new(MockUoW)
			factory := new(MockLocationUoWFactory)
			publisher := new(MockEventPublisher)

			mock.InOrder(
				factory.On("Create").Return(uow).Once(),
				uow.On("Begin", ctx).Return(nil).Once(),
				uow.On("LocationRepository").Return(locations).Once(),
				locations.On("Record", ctx, mock.AnythingOfType("tracking.Sample"), gate, fixedNow).
					Return(tracking.Skipped(reason), nil).Once(),
				uow.On("Rollback", ctx).Return(nil).Once(),
			)

			handler := commands.NewRecordLocationCommandHandler(factory, gate, fixedClock(), publisher, discardLogger())
			outcome, err := handler.Handle(ctx, cmd)

			require.NoError(t, err)
			assert.Equal(t, tracking.Skipped(reason), outcome)
			uow.AssertNotCalled(t, "Commit", mock.Anything)
			publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
		})
	}
}

func TestRecordLocationCommandHandler_Handle_InvalidCoordinatesNeverReachStorage(t *testing.T) {
	cmd, err := commands.NewRecordLocationCommand(kernel.NewUUID(), 95, 13.4, 8)
	require.NoError(t, err)

	factory := new(MockLocationUoWFactory)
	handler := commands.NewRecordLocationCommandHandler(factory,
		tracking.NewGate(tracking.DefaultDebounce), fixedClock(), nil, discardLogger())

	outcome, err := handler.Handle(t.Context(), cmd)

	require.NoError(t, err)
	assert.Equal(t, tracking.Skipped(tracking.ReasonInvalidCoords), outcome)
	factory.AssertNotCalled(t, "Create")
}

func TestRecordLocationCommandHandler_Handle_UnknownCourier(t *testing.T) {
	ctx := t.Context()
	courierID := kernel.NewUUID()
	gate := tracking.NewGate(tracking.DefaultDebounce)
	cmd, err := commands.NewRecordLocationCommand(courierID, 52.5, 13.4, 8)
	require.NoError(t, err)

	locations := new(MockLocationRepository)
	uow := new(MockUoW)
	factory := new(MockLocationUoWFactory)
	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("LocationRepository").Return(locations).Once()
	locations.On("Record", ctx, mock.AnythingOfType("tracking.Sample"), gate, fixedNow).
		Return(tracking.Outcome{}, errs.NewObjectNotFoundError("courier", courierID)).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewRecordLocationCommandHandler(factory, gate, fixedClock(), nil, discardLogger())

	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.AssertExpectations(t)
}

func TestRecordLocationCommandHandler_Handle_PublishFailureStillAcks(t *testing.T) {
	ctx := t.Context()
	gate := tracking.NewGate(tracking.DefaultDebounce)
	cmd, err := commands.NewRecordLocationCommand(kernel.NewUUID(), 52.5, 13.4, 8)
	require.NoError(t, err)

	locations := new(MockLocationRepository)
	uow := new(MockUoW)
	factory := new(MockLocationUoWFactory)
	publisher := new(MockEventPublisher)
	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("LocationRepository").Return(locations).Once()
	locations.On("Record", ctx, mock.Anything, gate, fixedNow).Return(tracking.Ack(), nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	publisher.On("Publish", ctx, mock.Anything).Return(errors.New("redis down")).Once()

	handler := commands.NewRecordLocationCommandHandler(factory, gate, fixedClock(), publisher, discardLogger())

	outcome, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, outcome.Recorded)
	publisher.AssertExpectations(t)
}
