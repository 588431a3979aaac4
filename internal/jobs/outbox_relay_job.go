package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"dispatch/internal/core/domain/events"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
)

const (
	DefaultRelaySchedule  = "@every 2s"
	DefaultRelayBatch     = 100
	DefaultRelayRetention = 24 * time.Hour
)

// OutboxStore is the outbox as the relay sees it.
type OutboxStore interface {
	ports.OutboxRelay
	Backlog(ctx context.Context) (int64, time.Duration, error)
	Purge(ctx context.Context, cutoff time.Time) (int64, error)
}

type OutboxRelayConfig struct {
	// Schedule is the polling fallback used when no notification arrives.
	Schedule  string
	Batch     int
	Retention time.Duration
}

// OutboxRelayJob hands committed outbox events to the publisher. It drains on every wake-up
// from the outbox listener and on its schedule, and purges old dispatched rows hourly.
type OutboxRelayJob struct {
	store     OutboxStore
	publisher ports.EventPublisher
	wake      <-chan struct{}
	cfg       OutboxRelayConfig
	now       func() time.Time
	cron      *cron.Cron
	logger    *slog.Logger

	drainMu sync.Mutex
	stop    context.CancelFunc
	done    chan struct{}
}

// NewOutboxRelayJob creates the job. wake may be nil when no listener runs.
func NewOutboxRelayJob(
	store OutboxStore,
	publisher ports.EventPublisher,
	wake <-chan struct{},
	cfg OutboxRelayConfig,
	now func() time.Time,
	logger *slog.Logger,
) *OutboxRelayJob {
	if cfg.Schedule == "" {
		cfg.Schedule = DefaultRelaySchedule
	}
	if cfg.Batch <= 0 {
		cfg.Batch = DefaultRelayBatch
	}
	if cfg.Retention <= 0 {
		cfg.Retention = DefaultRelayRetention
	}
	return &OutboxRelayJob{
		store:     store,
		publisher: publisher,
		wake:      wake,
		cfg:       cfg,
		now:       now,
		cron:      cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:    logger.With("component", "outbox_relay_job"),
	}
}

func (j *OutboxRelayJob) Name() string { return "outbox relay job" }

func (j *OutboxRelayJob) Start() error {
	if _, err := j.cron.AddFunc(j.cfg.Schedule, func() {
		j.RunOnce(context.Background())
	}); err != nil {
		return err
	}
	if _, err := j.cron.AddFunc("@hourly", func() {
		j.purge(context.Background())
	}); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	j.stop = cancel
	j.done = make(chan struct{})
	go j.listen(ctx)

	j.cron.Start()
	j.logger.InfoContext(ctx, "Outbox relay job started", "schedule", j.cfg.Schedule, "batch", j.cfg.Batch)
	return nil
}

func (j *OutboxRelayJob) listen(ctx context.Context) {
	defer close(j.done)
	for {
		select {
		case <-ctx.Done():
			return
		case <-j.wake:
			j.RunOnce(ctx)
		}
	}
}

// RunOnce drains full batches until the outbox is empty or a publish fails, then
// refreshes the backlog gauges. It returns the number of published events.
func (j *OutboxRelayJob) RunOnce(ctx context.Context) int {
	j.drainMu.Lock()
	defer j.drainMu.Unlock()

	total := 0
	for {
		n, err := j.store.Drain(ctx, j.cfg.Batch, j.publish)
		total += n
		metrics.OutboxRelayed.Add(float64(n))
		if err != nil {
			j.logger.WarnContext(ctx, "Outbox drain stopped", "published", n, "error", err)
			break
		}
		if n < j.cfg.Batch {
			break
		}
	}

	count, lag, err := j.store.Backlog(ctx)
	if err != nil {
		j.logger.WarnContext(ctx, "Outbox backlog unavailable", "error", err)
		return total
	}
	metrics.OutboxBacklog.Set(float64(count))
	metrics.OutboxLagSeconds.Set(lag.Seconds())
	return total
}

func (j *OutboxRelayJob) publish(ctx context.Context, e events.Envelope) error {
	if err := j.publisher.Publish(ctx, e); err != nil {
		return err
	}
	j.logger.DebugContext(ctx, "Event relayed", "event_id", e.ID, "type", e.Type)
	return nil
}

func (j *OutboxRelayJob) purge(ctx context.Context) {
	n, err := j.store.Purge(ctx, j.now().Add(-j.cfg.Retention))
	if err != nil {
		j.logger.WarnContext(ctx, "Outbox purge failed", "error", err)
		return
	}
	if n > 0 {
		j.logger.InfoContext(ctx, "Outbox purged", "rows", n)
	}
}

// Stop stops the schedule and the wake-up listener and waits for a running drain.
func (j *OutboxRelayJob) Stop() {
	<-j.cron.Stop().Done()
	if j.stop != nil {
		j.stop()
		<-j.done
	}
	j.logger.InfoContext(context.Background(), "Outbox relay job stopped")
}
