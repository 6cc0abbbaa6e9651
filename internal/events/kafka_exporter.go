package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/spec-kit/support-desk/internal/config"
)

// MessageWriter is the subset of *kafka.Writer used by the exporter.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaExporter forwards domain events to a Kafka topic, keyed by visitor.
type KafkaExporter struct {
	writer MessageWriter
	logger *zap.Logger
}

// NewKafkaExporter builds an exporter writing to the configured brokers.
func NewKafkaExporter(cfg config.EventsConfig, logger *zap.Logger) *KafkaExporter {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 50 * time.Millisecond,
		Async:        true,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Warn("kafka export failed", zap.Int("messages", len(messages)), zap.Error(err))
			}
		},
	}
	return NewKafkaExporterWithWriter(writer, logger)
}

// NewKafkaExporterWithWriter builds an exporter around an existing writer.
func NewKafkaExporterWithWriter(writer MessageWriter, logger *zap.Logger) *KafkaExporter {
	return &KafkaExporter{writer: writer, logger: logger}
}

// Register subscribes the exporter to every event type.
func (k *KafkaExporter) Register(dispatcher Dispatcher) {
	for _, t := range AllEventTypes {
		dispatcher.Subscribe(t, k.export)
	}
}

func (k *KafkaExporter) export(ctx context.Context, event Event) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event %s: %w", event.ID, err)
	}
	msg := kafka.Message{
		Key:   []byte(event.VisitorID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
		},
	}
	if err := k.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("export event %s: %w", event.ID, err)
	}
	k.logger.Debug("event exported", zap.String("event_id", event.ID), zap.String("event_type", string(event.Type)))
	return nil
}

// Close flushes and closes the writer.
func (k *KafkaExporter) Close() error {
	if k == nil || k.writer == nil {
		return nil
	}
	return k.writer.Close()
}
