// Package redpanda provides the durable notification queue on Redpanda/Kafka.
//
// Delivery is at-least-once: the producer does not use transactions and the
// consumer commits offsets only after a task is handled. Duplicate deliveries
// are harmless because the notification sender claims the email flag
// atomically before sending.
package redpanda

import (
	"context"
	"encoding/json"
	"fmt"

	"log/slog"

	"github.com/twmb/franz-go/pkg/kgo"
	"github.com/twmb/franz-go/plugin/kotel"
	"go.opentelemetry.io/otel"

	"github.com/merchbase/site-api/internal/domain"
	"github.com/merchbase/site-api/internal/observability"
)

// Producer implements domain.NotifyQueue.
type Producer struct {
	client *kgo.Client
	topic  string
}

// NewProducer constructs a Producer and ensures the notify topic exists.
func NewProducer(brokers []string) (*Producer, error) {
	return NewProducerWithTopic(brokers, TopicNotify)
}

// NewProducerWithTopic constructs a Producer on a specific topic so tests can
// isolate themselves.
func NewProducerWithTopic(brokers []string, topic string) (*Producer, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("op=redpanda.NewProducer: no seed brokers provided")
	}

	kotelService := kotel.NewKotel(
		kotel.WithTracer(kotel.NewTracer(kotel.TracerProvider(otel.GetTracerProvider()))),
	)
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.RequestRetries(10),
		kgo.WithHooks(kotelService.Hooks()...),
	)
	if err != nil {
		return nil, fmt.Errorf("op=redpanda.NewProducer client: %w", err)
	}

	if err := createTopicIfNotExists(context.Background(), client, topic, 1, 1); err != nil {
		// Brokers without auto-create reject produces to a missing topic, so
		// surface the failure but keep going; the topic may appear later.
		slog.Warn("notify topic creation failed", slog.String("topic", topic), slog.Any("error", err))
	}

	return &Producer{client: client, topic: topic}, nil
}

// EnqueueNotify publishes one notification task keyed by assessment id.
func (p *Producer) EnqueueNotify(ctx domain.Context, payload domain.NotifyTaskPayload) (string, error) {
	if payload.AssessmentID == "" {
		return "", fmt.Errorf("op=redpanda.EnqueueNotify: %w: empty assessment id", domain.ErrInvalidArgument)
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("op=redpanda.EnqueueNotify marshal: %w", err)
	}
	record := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(payload.AssessmentID),
		Value: b,
	}
	if err := p.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return "", fmt.Errorf("op=redpanda.EnqueueNotify produce: %w", err)
	}
	observability.NotifyTasksTotal.WithLabelValues("enqueued").Inc()
	slog.Info("notify task enqueued",
		slog.String("topic", p.topic),
		slog.String("assessment_id", payload.AssessmentID))
	return payload.AssessmentID, nil
}

// Ping verifies broker connectivity for readiness checks.
func (p *Producer) Ping(ctx domain.Context) error {
	if err := p.client.Ping(ctx); err != nil {
		return fmt.Errorf("op=redpanda.Ping: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying client.
func (p *Producer) Close() error {
	if p.client != nil {
		p.client.Close()
	}
	return nil
}
