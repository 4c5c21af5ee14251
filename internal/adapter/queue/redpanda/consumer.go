package redpanda

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"log/slog"

	"github.com/twmb/franz-go/pkg/kgo"
	"github.com/twmb/franz-go/plugin/kotel"
	"go.opentelemetry.io/otel"

	"github.com/merchbase/site-api/internal/domain"
	"github.com/merchbase/site-api/internal/observability"
)

// NotifyHandler processes one notification task. Returning an error leaves
// the offset uncommitted so the task is redelivered.
type NotifyHandler func(ctx domain.Context, payload domain.NotifyTaskPayload) error

// Consumer reads notification tasks as part of a consumer group.
type Consumer struct {
	client  *kgo.Client
	topic   string
	handler NotifyHandler
}

// NewConsumer constructs a group consumer on the notify topic.
func NewConsumer(brokers []string, groupID string, handler NotifyHandler) (*Consumer, error) {
	return NewConsumerWithTopic(brokers, groupID, TopicNotify, handler)
}

// NewConsumerWithTopic constructs a group consumer on a specific topic.
func NewConsumerWithTopic(brokers []string, groupID, topic string, handler NotifyHandler) (*Consumer, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("op=redpanda.NewConsumer: no seed brokers provided")
	}
	if groupID == "" {
		return nil, fmt.Errorf("op=redpanda.NewConsumer: missing group ID")
	}
	if handler == nil {
		return nil, fmt.Errorf("op=redpanda.NewConsumer: nil handler")
	}

	kotelService := kotel.NewKotel(
		kotel.WithTracer(kotel.NewTracer(kotel.TracerProvider(otel.GetTracerProvider()))),
	)
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.ConsumerGroup(groupID),
		kgo.ConsumeTopics(topic),
		kgo.DisableAutoCommit(),
		kgo.WithHooks(kotelService.Hooks()...),
	)
	if err != nil {
		return nil, fmt.Errorf("op=redpanda.NewConsumer client: %w", err)
	}

	if err := createTopicIfNotExists(context.Background(), client, topic, 1, 1); err != nil {
		slog.Warn("notify topic creation failed", slog.String("topic", topic), slog.Any("error", err))
	}

	slog.Info("notify consumer created", slog.String("group_id", groupID), slog.String("topic", topic))
	return &Consumer{client: client, topic: topic, handler: handler}, nil
}

// Run polls until ctx is cancelled. Offsets commit per record after the
// handler succeeds; failed tasks stay uncommitted for redelivery.
func (c *Consumer) Run(ctx context.Context) error {
	for {
		fetches := c.client.PollFetches(ctx)
		if fetches.IsClientClosed() || errors.Is(ctx.Err(), context.Canceled) {
			return ctx.Err()
		}
		fetches.EachError(func(topic string, partition int32, err error) {
			slog.Error("notify fetch error",
				slog.String("topic", topic),
				slog.Int("partition", int(partition)),
				slog.Any("error", err))
		})
		fetches.EachRecord(func(record *kgo.Record) {
			c.processRecord(ctx, record)
		})
	}
}

func (c *Consumer) processRecord(ctx context.Context, record *kgo.Record) {
	var payload domain.NotifyTaskPayload
	if err := json.Unmarshal(record.Value, &payload); err != nil {
		// Poison message; commit so it does not wedge the partition.
		slog.Error("notify task unmarshal failed",
			slog.String("key", string(record.Key)),
			slog.Any("error", err))
		observability.NotifyTasksTotal.WithLabelValues("failed").Inc()
		c.commit(ctx, record)
		return
	}

	if err := c.handler(ctx, payload); err != nil {
		slog.Error("notify task failed",
			slog.String("assessment_id", payload.AssessmentID),
			slog.Any("error", err))
		observability.NotifyTasksTotal.WithLabelValues("failed").Inc()
		return
	}
	c.commit(ctx, record)
}

func (c *Consumer) commit(ctx context.Context, record *kgo.Record) {
	if err := c.client.CommitRecords(ctx, record); err != nil {
		slog.Error("notify offset commit failed",
			slog.String("key", string(record.Key)),
			slog.Any("error", err))
	}
}

// Close leaves the group and closes the client.
func (c *Consumer) Close() error {
	if c.client != nil {
		c.client.Close()
	}
	return nil
}
