package kafka_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"dispatch/internal/adapters/out/kafka"
	"dispatch/internal/core/domain/events"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProducer(t *testing.T) *mocks.SyncProducer {
	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	return mocks.NewSyncProducer(t, cfg)
}

func TestSink_Publish_SendsEnvelopeAsJSON(t *testing.T) {
	producer := newProducer(t)
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var e events.Envelope
		if err := json.Unmarshal(val, &e); err != nil {
			return err
		}
		if e.ID != "e1" || e.Order == nil || e.Order.Status != "confirmed" {
			return errors.New("unexpected envelope")
		}
		return nil
	})

	sink := kafka.NewSink(producer, "dispatch.events")
	err := sink.Publish(t.Context(), events.Envelope{
		ID:      "e1",
		Type:    events.OrderStatusChanged,
		OrderID: "o1",
		Order:   &events.OrderRecord{ID: "o1", Status: "confirmed"},
	})

	require.NoError(t, err)
	require.NoError(t, sink.Close())
}

func TestSink_Publish_ReturnsBrokerError(t *testing.T) {
	producer := newProducer(t)
	producer.ExpectSendMessageAndFail(sarama.ErrNotLeaderForPartition)

	sink := kafka.NewSink(producer, "dispatch.events")
	err := sink.Publish(t.Context(), events.Envelope{ID: "e1", Type: events.CourierStatusChanged, CourierID: "c1"})

	assert.ErrorIs(t, err, sarama.ErrNotLeaderForPartition)
	require.NoError(t, sink.Close())
}

func TestSink_Publish_CancelledContextSendsNothing(t *testing.T) {
	producer := newProducer(t)
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	err := kafka.NewSink(producer, "dispatch.events").Publish(ctx, events.Envelope{ID: "e1"})

	assert.ErrorIs(t, err, context.Canceled)
	require.NoError(t, producer.Close())
}

func TestNewProducerConfig(t *testing.T) {
	cfg, err := kafka.NewProducerConfig("3.6.0")
	require.NoError(t, err)
	assert.True(t, cfg.Producer.Idempotent)
	assert.Equal(t, sarama.WaitForAll, cfg.Producer.RequiredAcks)

	_, err = kafka.NewProducerConfig("not-a-version")
	assert.Error(t, err)
}
