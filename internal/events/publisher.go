// Package events delivers committed authorization decisions to downstream consumers.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"

	"github.com/brokerage/rms-api/internal/config"
	"github.com/brokerage/rms-api/internal/workflow"
)

// MessageWriter is the part of *kafka.Writer the publisher depends on
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher publishes decision events as JSON messages keyed by entity and record key,
// so every decision on one record lands on the same partition.
type KafkaPublisher struct {
	writer  MessageWriter
	timeout time.Duration
	logger  *logrus.Logger
}

// NewKafkaPublisher creates a publisher writing to the configured brokers and topic
func NewKafkaPublisher(cfg config.EventsConfig, logger *logrus.Logger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireAll,
		MaxAttempts:  3,
	}
	return NewKafkaPublisherWithWriter(writer, cfg.WriteTimeout, logger)
}

// NewKafkaPublisherWithWriter creates a publisher over an existing writer
func NewKafkaPublisherWithWriter(writer MessageWriter, timeout time.Duration, logger *logrus.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		writer:  writer,
		timeout: timeout,
		logger:  logger,
	}
}

// PublishDecision implements workflow.Publisher
func (p *KafkaPublisher) PublishDecision(ctx context.Context, event workflow.DecisionEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal decision event: %w", err)
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	msg := kafka.Message{
		Key:   []byte(event.Entity + "/" + event.Key),
		Value: value,
		Time:  event.DecidedAt,
		Headers: []kafka.Header{
			{Key: "entity", Value: []byte(event.Entity)},
			{Key: "decision", Value: []byte(event.Decision)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write decision event: %w", err)
	}

	p.logger.WithFields(logrus.Fields{
		"entity":   event.Entity,
		"key":      event.Key,
		"decision": event.Decision,
	}).Debug("Published authorization decision")
	return nil
}

// Close flushes and closes the underlying writer
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher discards every event
type NopPublisher struct{}

// PublishDecision implements workflow.Publisher
func (NopPublisher) PublishDecision(context.Context, workflow.DecisionEvent) error { return nil }

// Close implements io.Closer
func (NopPublisher) Close() error { return nil }

// Publisher is a workflow.Publisher that owns resources to release on shutdown
type Publisher interface {
	workflow.Publisher
	Close() error
}

// New returns a Kafka publisher when events are enabled and a NopPublisher otherwise
func New(cfg config.EventsConfig, logger *logrus.Logger) Publisher {
	if !cfg.Enabled {
		return NopPublisher{}
	}
	logger.WithFields(logrus.Fields{
		"brokers": cfg.Brokers,
		"topic":   cfg.Topic,
	}).Info("Publishing authorization decisions to Kafka")
	return NewKafkaPublisher(cfg, logger)
}
