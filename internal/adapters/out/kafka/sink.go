// Package kafka appends relayed dispatch events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"dispatch/internal/core/domain/events"

	"github.com/IBM/sarama"
)

// Sink writes each envelope as one message keyed by the order it concerns, so the events
// of one order stay in one partition. It implements ports.EventPublisher.
type Sink struct {
	producer sarama.SyncProducer
	topic    string
}

func NewSink(producer sarama.SyncProducer, topic string) *Sink {
	return &Sink{producer: producer, topic: topic}
}

// NewProducerConfig returns the producer settings the sink relies on: acknowledged by all
// in-sync replicas and idempotent, so broker retries do not duplicate messages.
func NewProducerConfig(version string) (*sarama.Config, error) {
	cfg := sarama.NewConfig()
	if version != "" {
		v, err := sarama.ParseKafkaVersion(version)
		if err != nil {
			return nil, fmt.Errorf("parse kafka version: %w", err)
		}
		cfg.Version = v
	}
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Idempotent = true
	cfg.Producer.Retry.Max = 3
	cfg.Net.MaxOpenRequests = 1
	return cfg, nil
}

func (s *Sink) Publish(ctx context.Context, e events.Envelope) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode envelope %s: %w", e.ID, err)
	}

	msg := &sarama.ProducerMessage{
		Topic: s.topic,
		Key:   sarama.StringEncoder(partitionKey(e)),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_id"), Value: []byte(e.ID)},
			{Key: []byte("event_type"), Value: []byte(e.Type)},
		},
		Timestamp: e.OccurredAt,
	}
	if _, _, err := s.producer.SendMessage(msg); err != nil {
		return fmt.Errorf("send envelope %s to %s: %w", e.ID, s.topic, err)
	}
	return nil
}

func (s *Sink) Close() error {
	return s.producer.Close()
}

func partitionKey(e events.Envelope) string {
	switch {
	case e.OrderID != "":
		return e.OrderID
	case e.CourierID != "":
		return e.CourierID
	default:
		return e.ID
	}
}
