package jobs_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/events"
	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/jobs"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type MockOutboxStore struct {
	mock.Mock
}

func (m *MockOutboxStore) Drain(
	ctx context.Context,
	limit int,
	publish func(context.Context, events.Envelope) error,
) (int, error) {
	args := m.Called(ctx, limit, publish)
	return args.Int(0), args.Error(1)
}

func (m *MockOutboxStore) Backlog(ctx context.Context) (int64, time.Duration, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Get(1).(time.Duration), args.Error(2)
}

func (m *MockOutboxStore) Purge(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, e events.Envelope) error {
	return m.Called(ctx, e).Error(0)
}

type MockAutoAssigner struct {
	mock.Mock
}

func (m *MockAutoAssigner) Handle(ctx context.Context, cmd commands.AutoAssignCommand) (*assignment.Assignment, error) {
	args := m.Called(ctx, cmd)
	a, _ := args.Get(0).(*assignment.Assignment)
	return a, args.Error(1)
}

func newRelayJob(store jobs.OutboxStore, publisher *MockPublisher) *jobs.OutboxRelayJob {
	return jobs.NewOutboxRelayJob(store, publisher, nil,
		jobs.OutboxRelayConfig{Batch: 2},
		func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) },
		discardLogger())
}

func TestOutboxRelayJob_RunOnce_DrainsFullBatchesUntilShort(t *testing.T) {
	store := &MockOutboxStore{}
	publisher := &MockPublisher{}
	e := events.Envelope{ID: "e1", Type: events.AssignmentCreated}
	publisher.On("Publish", mock.Anything, e).Return(nil)

	mock.InOrder(
		store.On("Drain", mock.Anything, 2, mock.Anything).
			Run(func(args mock.Arguments) {
				publish := args.Get(2).(func(context.Context, events.Envelope) error)
				require.NoError(t, publish(t.Context(), e))
			}).
			Return(2, nil).Once(),
		store.On("Drain", mock.Anything, 2, mock.Anything).Return(1, nil).Once(),
		store.On("Backlog", mock.Anything).Return(int64(0), time.Duration(0), nil).Once(),
	)

	n := newRelayJob(store, publisher).RunOnce(t.Context())

	assert.Equal(t, 3, n)
	store.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestOutboxRelayJob_RunOnce_StopsAtPublishFailure(t *testing.T) {
	store := &MockOutboxStore{}
	mock.InOrder(
		store.On("Drain", mock.Anything, 2, mock.Anything).
			Return(1, errors.New("broker down")).Once(),
		store.On("Backlog", mock.Anything).Return(int64(4), 3*time.Second, nil).Once(),
	)

	n := newRelayJob(store, &MockPublisher{}).RunOnce(t.Context())

	assert.Equal(t, 1, n)
	store.AssertExpectations(t)
}

func TestOutboxRelayJob_StartAndStop(t *testing.T) {
	store := &MockOutboxStore{}
	store.On("Drain", mock.Anything, mock.Anything, mock.Anything).Return(0, nil).Maybe()
	store.On("Backlog", mock.Anything).Return(int64(0), time.Duration(0), nil).Maybe()

	job := newRelayJob(store, &MockPublisher{})
	require.NoError(t, job.Start())
	job.Stop()
}

func TestOutboxRelayJob_StartRejectsBadSchedule(t *testing.T) {
	job := jobs.NewOutboxRelayJob(&MockOutboxStore{}, &MockPublisher{}, nil,
		jobs.OutboxRelayConfig{Schedule: "every now and then"}, time.Now, discardLogger())

	assert.Error(t, job.Start())
}

func TestAutoAssignJob_RunOnce(t *testing.T) {
	tests := map[string]error{
		"assigned":           nil,
		"no order":           commands.ErrNoOrderFound,
		"no courier":         commands.ErrNoFreeCouriersFound,
		"lost race":          errs.NewAlreadyAssignedError("o1", "a1"),
		"storage is failing": errs.NewTransientStorageError("select", errors.New("conn reset")),
	}
	for name, handleErr := range tests {
		t.Run(name, func(t *testing.T) {
			handler := &MockAutoAssigner{}
			var result *assignment.Assignment
			if handleErr == nil {
				var err error
				result, err = assignment.NewAssignment(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
					kernel.NewUUID(), kernel.ZeroMoney(), time.Now())
				require.NoError(t, err)
			}
			handler.On("Handle", mock.Anything, commands.NewAutoAssignCommand()).Return(result, handleErr).Once()

			jobs.NewAutoAssignJob(handler, "", discardLogger()).RunOnce(t.Context())

			handler.AssertExpectations(t)
		})
	}
}

type stubJob struct {
	name     string
	startErr error
	started  *[]string
	stopped  *[]string
}

func (j stubJob) Name() string { return j.name }

func (j stubJob) Start() error {
	if j.startErr != nil {
		return j.startErr
	}
	*j.started = append(*j.started, j.name)
	return nil
}

func (j stubJob) Stop() { *j.stopped = append(*j.stopped, j.name) }

func TestJobManager_StartFailureStopsStartedJobs(t *testing.T) {
	var started, stopped []string
	a := stubJob{name: "a", started: &started, stopped: &stopped}
	b := stubJob{name: "b", started: &started, stopped: &stopped}
	c := stubJob{name: "c", startErr: errors.New("bad schedule"), started: &started, stopped: &stopped}

	err := jobs.NewJobManager(discardLogger(), a, nil, b, c).StartAll()

	require.ErrorContains(t, err, "failed to start c")
	assert.Equal(t, []string{"a", "b"}, started)
	assert.Equal(t, []string{"b", "a"}, stopped)
}

func TestJobManager_StopAllInReverseOrder(t *testing.T) {
	var started, stopped []string
	m := jobs.NewJobManager(discardLogger(),
		stubJob{name: "relay", started: &started, stopped: &stopped},
		stubJob{name: "auto", started: &started, stopped: &stopped})

	require.NoError(t, m.StartAll())
	m.StopAll()

	assert.Equal(t, []string{"auto", "relay"}, stopped)
}
