package postgres

import (
	"context"
	"log/slog"
	"time"

	"dispatch/internal/adapters/out/postgres/outboxrepo"

	"github.com/lib/pq"
)

// OutboxListener turns Postgres notifications on the outbox channel into wake-ups.
// Wake-ups are coalesced: a burst of commits results in at most one pending signal.
type OutboxListener struct {
	dsn    string
	logger *slog.Logger
	wake   chan struct{}
}

func NewOutboxListener(dsn string, logger *slog.Logger) *OutboxListener {
	return &OutboxListener{
		dsn:    dsn,
		logger: logger.With("component", "OutboxListener"),
		wake:   make(chan struct{}, 1),
	}
}

// Wake returns the channel signalled after every notification or reconnect.
func (l *OutboxListener) Wake() <-chan struct{} {
	return l.wake
}

// Run listens until ctx is done. Connection problems are logged; pq reconnects with backoff
// between minReconnect and maxReconnect and a reconnect triggers a wake-up, because
// notifications sent while disconnected are lost.
func (l *OutboxListener) Run(ctx context.Context, minReconnect, maxReconnect time.Duration) error {
	listener := pq.NewListener(l.dsn, minReconnect, maxReconnect, func(ev pq.ListenerEventType, err error) {
		switch ev {
		case pq.ListenerEventConnectionAttemptFailed, pq.ListenerEventDisconnected:
			l.logger.WarnContext(ctx, "outbox listener connection problem", "event", ev, "error", err)
		case pq.ListenerEventReconnected:
			l.logger.InfoContext(ctx, "outbox listener reconnected")
			l.signal()
		case pq.ListenerEventConnected:
		}
	})
	defer func() {
		_ = listener.Close()
	}()

	if err := listener.Listen(outboxrepo.NotifyChannel); err != nil {
		return err
	}
	l.logger.InfoContext(ctx, "listening for outbox notifications", "channel", outboxrepo.NotifyChannel)

	ping := time.NewTicker(90 * time.Second)
	defer ping.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-listener.Notify:
			l.signal()
		case <-ping.C:
			if err := listener.Ping(); err != nil {
				l.logger.WarnContext(ctx, "outbox listener ping failed", "error", err)
			}
		}
	}
}

func (l *OutboxListener) signal() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}
