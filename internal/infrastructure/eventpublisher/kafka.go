package eventpublisher

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/iho/gamewallet/internal/domain"
)

// KafkaWriter wraps kafka.Writer methods for testing.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher publishes outbox events to a Kafka topic keyed by aggregate id,
// so the events of one account keep their order within a partition.
type KafkaPublisher struct {
	writer KafkaWriter
	logger zerolog.Logger
	topic  string
}

// KafkaConfig configures a KafkaPublisher.
type KafkaConfig struct {
	Brokers      []string
	Topic        string
	WriteTimeout time.Duration
}

// NewKafkaPublisher creates a synchronous publisher for the given brokers.
func NewKafkaPublisher(cfg KafkaConfig, logger zerolog.Logger) (*KafkaPublisher, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("kafka brokers are not configured")
	}
	if cfg.Topic == "" {
		return nil, fmt.Errorf("kafka topic is not configured")
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = 10 * time.Second
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		WriteTimeout:           cfg.WriteTimeout,
		AllowAutoTopicCreation: true,
	}

	return newKafkaPublisher(writer, cfg.Topic, logger), nil
}

func newKafkaPublisher(writer KafkaWriter, topic string, logger zerolog.Logger) *KafkaPublisher {
	return &KafkaPublisher{writer: writer, logger: logger, topic: topic}
}

// Publish writes one event and waits for the broker acknowledgement.
func (p *KafkaPublisher) Publish(ctx context.Context, event *domain.OutboxEvent) error {
	value, err := json.Marshal(map[string]any{
		"id":             event.ID,
		"event_type":     event.EventType,
		"aggregate_type": event.AggregateType,
		"aggregate_id":   event.AggregateID,
		"created_at":     event.CreatedAt,
		"payload":        event.Payload,
	})
	if err != nil {
		return fmt.Errorf("marshal event %s: %w", event.ID, err)
	}

	msg := kafka.Message{
		Key:   []byte(event.AggregateID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
			{Key: "event_id", Value: []byte(event.ID)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish event %s to %s: %w", event.ID, p.topic, err)
	}

	p.logger.Debug().
		Str("topic", p.topic).
		Str("event_id", event.ID).
		Msg("event written to kafka")

	return nil
}

// Close flushes and closes the writer.
func (p *KafkaPublisher) Close() error {
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("close kafka writer for topic %s: %w", p.topic, err)
	}
	return nil
}

// ParseBrokers splits a comma separated broker list.
func ParseBrokers(raw string) []string {
	var brokers []string
	for _, b := range strings.Split(raw, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
