// Package redisbus spreads realtime envelopes across instances over Redis pub/sub.
package redisbus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"dispatch/internal/core/domain/events"
	"dispatch/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

const DefaultChannel = "dispatch:events"

// Bus publishes envelopes to a Redis channel and feeds the envelopes it receives into a
// local publisher, usually the instance's hub. Redis pub/sub is fire and forget: an
// instance that is not subscribed misses the message and its clients catch up by polling.
type Bus struct {
	client  *redis.Client
	channel string
	logger  *slog.Logger
}

func NewBus(client *redis.Client, channel string, logger *slog.Logger) *Bus {
	if channel == "" {
		channel = DefaultChannel
	}
	return &Bus{
		client:  client,
		channel: channel,
		logger:  logger.With("component", "RedisBus"),
	}
}

// Publish implements ports.EventPublisher.
func (b *Bus) Publish(ctx context.Context, e events.Envelope) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode envelope %s: %w", e.ID, err)
	}
	if err := b.client.Publish(ctx, b.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish envelope %s: %w", e.ID, err)
	}
	return nil
}

// Run subscribes to the channel and hands every envelope to sink until ctx is done.
// Undecodable messages and sink failures are logged and skipped.
func (b *Bus) Run(ctx context.Context, sink ports.EventPublisher) error {
	sub := b.client.Subscribe(ctx, b.channel)
	defer func() {
		_ = sub.Close()
	}()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe %s: %w", b.channel, err)
	}
	b.logger.InfoContext(ctx, "subscribed", "channel", b.channel)

	messages := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			var e events.Envelope
			if err := json.Unmarshal([]byte(msg.Payload), &e); err != nil {
				b.logger.WarnContext(ctx, "dropping undecodable message", "error", err)
				continue
			}
			if err := sink.Publish(ctx, e); err != nil {
				b.logger.WarnContext(ctx, "local delivery failed", "event_id", e.ID, "error", err)
			}
		}
	}
}
