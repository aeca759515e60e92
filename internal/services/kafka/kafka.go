package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/iwtcode/velvetpour/internal/config"
	"github.com/iwtcode/velvetpour/internal/domain/models"
	"github.com/iwtcode/velvetpour/internal/interfaces"
	"github.com/iwtcode/velvetpour/internal/middleware/logging"

	"github.com/segmentio/kafka-go"
)

type KafkaProducer struct {
	writer *kafka.Writer
}

// NewKafkaProducer создает новый экземпляр продюсера Kafka.
// Запись асинхронная: события машины не должны ждать брокер.
func NewKafkaProducer(cfg *config.AppConfig, logger *logging.Logger) (interfaces.KafkaService, error) {
	log := logger.WithPrefix("KAFKA")
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.KafkaBroker),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafka.LeastBytes{},
		Async:        true,
		BatchTimeout: 50 * time.Millisecond,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				log.Error("Failed to deliver events to Kafka", "count", len(messages), "error", err)
			}
		},
	}
	return &KafkaProducer{writer: writer}, nil
}

// Produce отправляет сообщение в Kafka
func (p *KafkaProducer) Produce(ctx context.Context, key, value []byte) error {
	return p.writer.WriteMessages(ctx,
		kafka.Message{
			Key:   key,
			Value: value,
		},
	)
}

// Close закрывает соединение с Kafka
func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}

// EventPublisher публикует события жизненного цикла машины в топик Kafka.
type EventPublisher struct {
	producer interfaces.KafkaService
	enabled  bool
	logger   *logging.Logger
	now      func() time.Time
}

func NewEventPublisher(cfg *config.AppConfig, producer interfaces.KafkaService, logger *logging.Logger) *EventPublisher {
	return &EventPublisher{
		producer: producer,
		enabled:  cfg.KafkaEnabled && producer != nil,
		logger:   logger.WithPrefix("KAFKA"),
		now:      time.Now,
	}
}

func (p *EventPublisher) Publish(ctx context.Context, event string, payload interface{}) {
	if !p.enabled {
		return
	}

	data, err := json.Marshal(models.Envelope{Event: event, Timestamp: p.now().UTC(), Data: payload})
	if err != nil {
		p.logger.Error("Failed to serialize event for Kafka", "event", event, "error", err)
		return
	}
	if err := p.producer.Produce(ctx, []byte(event), data); err != nil {
		p.logger.Error("Failed to send event to Kafka", "event", event, "error", err)
	}
}
