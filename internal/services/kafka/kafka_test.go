package kafka

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iwtcode/velvetpour/internal/config"
	"github.com/iwtcode/velvetpour/internal/domain/models"
	"github.com/iwtcode/velvetpour/internal/middleware/logging"
)

type fakeProducer struct {
	keys   [][]byte
	values [][]byte
	err    error
}

func (f *fakeProducer) Produce(_ context.Context, key, value []byte) error {
	f.keys = append(f.keys, key)
	f.values = append(f.values, value)
	return f.err
}

func (f *fakeProducer) Close() error { return nil }

func TestEventPublisherWritesEnvelope(t *testing.T) {
	producer := &fakeProducer{}
	pub := NewEventPublisher(&config.AppConfig{KafkaEnabled: true}, producer, logging.NewNop())
	at := time.Date(2024, 5, 1, 18, 30, 0, 0, time.UTC)
	pub.now = func() time.Time { return at }

	pub.Publish(context.Background(), models.EventOperationStarted, models.OperationEvent{
		Status:    models.StatusBusy,
		Operation: "Negroni",
		Message:   "Machine is busy preparing: Negroni",
	})

	require.Len(t, producer.values, 1)
	require.Equal(t, models.EventOperationStarted, string(producer.keys[0]))

	var got struct {
		Event     string                `json:"event"`
		Timestamp time.Time             `json:"timestamp"`
		Data      models.OperationEvent `json:"data"`
	}
	require.NoError(t, json.Unmarshal(producer.values[0], &got))
	require.Equal(t, models.EventOperationStarted, got.Event)
	require.True(t, at.Equal(got.Timestamp))
	require.Equal(t, "Negroni", got.Data.Operation)
}

func TestEventPublisherDisabled(t *testing.T) {
	producer := &fakeProducer{}
	pub := NewEventPublisher(&config.AppConfig{KafkaEnabled: false}, producer, logging.NewNop())

	pub.Publish(context.Background(), models.EventStatusUpdate, models.MachineStatus{})
	require.Empty(t, producer.values)
}

func TestEventPublisherSwallowsBrokerErrors(t *testing.T) {
	producer := &fakeProducer{err: stderrors.New("broker down")}
	pub := NewEventPublisher(&config.AppConfig{KafkaEnabled: true}, producer, logging.NewNop())

	require.NotPanics(t, func() {
		pub.Publish(context.Background(), models.EventOperationFailed, models.OperationEvent{})
	})
	require.Len(t, producer.values, 1)
}

func TestNewKafkaProducerIsLazy(t *testing.T) {
	cfg := &config.AppConfig{KafkaBroker: "127.0.0.1:1", KafkaTopic: "velvetpour_events"}
	producer, err := NewKafkaProducer(cfg, logging.NewNop())
	require.NoError(t, err, "писатель не подключается к брокеру при создании")
	require.NoError(t, producer.Close())
}
