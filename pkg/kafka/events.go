package kafka

import (
	"context"
	"errors"
	"fmt"

	kafka_config "spacebook/pkg/kafka/config"
	"spacebook/pkg/logger"
	"spacebook/pkg/middleware"
)

const (
	EventBookingStatusChanged   = "booking.status_changed"
	EventBookingCleanupFinished = "booking.cleanup_completed"
	EventPreferencesChanged     = "preferences.changed"
)

// EventPublisher routes domain events to one producer per topic.
type EventPublisher struct {
	producers map[string]*Producer
	source    string
	log       *logger.Logger
}

func NewEventPublisher(cfg *kafka_config.Config, source string, log *logger.Logger, middleware ...ProducerMiddleware) (*EventPublisher, error) {
	topics := []string{cfg.TopicStatusChanged, cfg.TopicCleanupCompleted, cfg.TopicPreferencesChanged}

	producers := make(map[string]*Producer, len(topics))
	for _, topic := range topics {
		if _, ok := producers[topic]; ok {
			continue
		}
		producer, err := NewProducer(cfg, topic, log)
		if err != nil {
			for _, p := range producers {
				_ = p.Close()
			}
			return nil, fmt.Errorf("failed to create producer for %s: %w", topic, err)
		}
		for _, m := range middleware {
			producer.Use(m)
		}
		producers[topic] = producer
	}

	return newEventPublisher(producers, source, log), nil
}

func newEventPublisher(producers map[string]*Producer, source string, log *logger.Logger) *EventPublisher {
	return &EventPublisher{
		producers: producers,
		source:    source,
		log:       log,
	}
}

// Publish sends payload as a JSON event keyed by key. The request ID in ctx,
// if any, becomes the correlation ID.
func (p *EventPublisher) Publish(ctx context.Context, topic, key, eventType string, payload any) error {
	producer, ok := p.producers[topic]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTopic, topic)
	}

	msg, err := NewMessage(topic).
		WithKey(key).
		WithValue(payload).
		WithEventType(eventType).
		WithSource(p.source).
		WithCorrelationID(middleware.RequestIDFromContext(ctx)).
		Build()
	if err != nil {
		return err
	}

	return producer.Publish(ctx, msg)
}

func (p *EventPublisher) Close() error {
	var errs []error
	for topic, producer := range p.producers {
		if err := producer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close producer %s: %w", topic, err))
		}
	}
	return errors.Join(errs...)
}

// NopPublisher drops events. It stands in when Kafka is disabled.
type NopPublisher struct {
	log *logger.Logger
}

func NewNopPublisher(log *logger.Logger) *NopPublisher {
	return &NopPublisher{log: log}
}

func (p *NopPublisher) Publish(ctx context.Context, topic, key, eventType string, payload any) error {
	p.log.Debug("Kafka disabled, event dropped", "topic", topic, "key", key, "event_type", eventType)
	return nil
}

func (p *NopPublisher) Close() error {
	return nil
}
