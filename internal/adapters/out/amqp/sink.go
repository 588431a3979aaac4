// Package amqp broadcasts relayed dispatch events on a RabbitMQ fanout exchange for
// push and notification workers.
package amqp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"dispatch/internal/core/domain/events"

	amqp "github.com/rabbitmq/amqp091-go"
)

const DefaultExchange = "dispatch_events_fanout"

// Channel is the part of *amqp.Channel the sink uses.
type Channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Sink publishes envelopes to a durable fanout exchange. AMQP channels are not safe for
// concurrent publishing, so publishes are serialized. It implements ports.EventPublisher.
type Sink struct {
	mu       sync.Mutex
	channel  Channel
	exchange string
}

// NewSink declares the exchange and returns the sink.
func NewSink(channel Channel, exchange string) (*Sink, error) {
	if exchange == "" {
		exchange = DefaultExchange
	}
	if err := channel.ExchangeDeclare(exchange, amqp.ExchangeFanout, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}
	return &Sink{channel: channel, exchange: exchange}, nil
}

// Dial opens a connection and a channel and declares the exchange.
func Dial(url, exchange string) (*Sink, *amqp.Connection, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("dial amqp: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("open amqp channel: %w", err)
	}
	sink, err := NewSink(ch, exchange)
	if err != nil {
		_ = conn.Close()
		return nil, nil, err
	}
	return sink, conn, nil
}

func (s *Sink) Publish(ctx context.Context, e events.Envelope) error {
	body, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode envelope %s: %w", e.ID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err = s.channel.PublishWithContext(ctx, s.exchange, "", false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    e.ID,
		Type:         string(e.Type),
		Timestamp:    e.OccurredAt,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish envelope %s: %w", e.ID, err)
	}
	return nil
}

func (s *Sink) Close() error {
	return s.channel.Close()
}
