package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"roadready/internal/domain/event"
	"roadready/internal/pkg/config"

	"github.com/segmentio/kafka-go"
)

// Publisher delivers one envelope and reports whether the broker accepted it.
type Publisher interface {
	Publish(ctx context.Context, env event.Envelope) error
	Close() error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	writer messageWriter
	topic  string
}

// NewKafkaPublisher uses a synchronous writer so the relay only marks rows
// processed after the broker acknowledged them.
func NewKafkaPublisher(cfg config.KafkaConfig) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		MaxAttempts:            5,
		ReadTimeout:            10 * time.Second,
		WriteTimeout:           10 * time.Second,
		AllowAutoTopicCreation: true,
	}
	return &KafkaPublisher{writer: w, topic: cfg.Topic}
}

// Messages are keyed by aggregate id so events of one reservation stay ordered
// within a partition.
func (p *KafkaPublisher) Publish(ctx context.Context, env event.Envelope) error {
	msg, err := toMessage(env)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) Topic() string {
	return p.topic
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

func toMessage(env event.Envelope) (kafka.Message, error) {
	value, err := json.Marshal(env)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to marshal envelope %s: %w", env.EventID, err)
	}
	return kafka.Message{
		Key:   []byte(env.AggregateID.String()),
		Value: value,
		Time:  env.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(env.EventType)},
			{Key: "event_id", Value: []byte(env.EventID.String())},
		},
	}, nil
}

// LogPublisher stands in for the broker when Kafka is disabled.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, env event.Envelope) error {
	p.logger.InfoContext(ctx, "domain event",
		"event_id", env.EventID,
		"event_type", env.EventType,
		"aggregate_id", env.AggregateID,
		"payload", string(env.Payload))
	return nil
}

func (p *LogPublisher) Close() error { return nil }
