package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/IBM/sarama"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/pos-backoffice/pkg/logger"
)

var errMissingEventType = errors.New("message without event_type header")

// EventHandler handles the raw JSON payload of one event type
type EventHandler func(ctx context.Context, payload []byte) error

// InvoiceGeneratedHandler decodes invoice.generated payloads before calling fn
func InvoiceGeneratedHandler(fn func(ctx context.Context, event InvoiceGeneratedEvent) error) EventHandler {
	return func(ctx context.Context, payload []byte) error {
		var event InvoiceGeneratedEvent
		if err := json.Unmarshal(payload, &event); err != nil {
			return fmt.Errorf("failed to decode %s payload: %w", EventTypeInvoiceGenerated, err)
		}
		return fn(ctx, event)
	}
}

// Consumer dispatches events from a consumer group to handlers keyed by event type
type Consumer struct {
	group   sarama.ConsumerGroup
	groupID string
	topics  []string

	mu       sync.RWMutex
	handlers map[string]EventHandler
}

// NewConsumer joins groupID on brokers, starting from the newest offset
func NewConsumer(brokers []string, groupID string, topics []string) (*Consumer, error) {
	cfg := sarama.NewConfig()
	cfg.Version = sarama.V2_6_0_0
	cfg.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	cfg.Consumer.Offsets.Initial = sarama.OffsetNewest
	cfg.Consumer.Return.Errors = true

	group, err := sarama.NewConsumerGroup(brokers, groupID, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka consumer group: %w", err)
	}
	return newConsumer(group, groupID, topics), nil
}

func newConsumer(group sarama.ConsumerGroup, groupID string, topics []string) *Consumer {
	return &Consumer{
		group:    group,
		groupID:  groupID,
		topics:   topics,
		handlers: make(map[string]EventHandler),
	}
}

// RegisterHandler sets the handler for eventType, replacing any previous one
func (c *Consumer) RegisterHandler(eventType string, handler EventHandler) {
	c.mu.Lock()
	c.handlers[eventType] = handler
	c.mu.Unlock()
}

func (c *Consumer) handlerFor(eventType string) (EventHandler, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	h, ok := c.handlers[eventType]
	return h, ok
}

// Start consumes in the background until ctx is cancelled. Consume returns on every
// rebalance, so it is called in a loop.
func (c *Consumer) Start(ctx context.Context) {
	go func() {
		session := groupSession{consumer: c}
		for ctx.Err() == nil {
			if err := c.group.Consume(ctx, c.topics, session); err != nil {
				if errors.Is(err, sarama.ErrClosedConsumerGroup) {
					return
				}
				logger.Logger.Error().Err(err).Str("group_id", c.groupID).Msg("Kafka consume failed")
			}
		}
	}()

	go func() {
		for err := range c.group.Errors() {
			logger.Logger.Error().Err(err).Str("group_id", c.groupID).Msg("Kafka consumer error")
		}
	}()

	logger.Logger.Info().
		Strs("topics", c.topics).
		Str("group_id", c.groupID).
		Msg("Kafka consumer started")
}

func (c *Consumer) Close() error {
	if c.group == nil {
		return nil
	}
	return c.group.Close()
}

// groupSession implements sarama.ConsumerGroupHandler
type groupSession struct {
	consumer *Consumer
}

func (groupSession) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (groupSession) Cleanup(sarama.ConsumerGroupSession) error { return nil }

// ConsumeClaim marks every message, failed or not. Events only drive cache
// invalidation, and the cache TTL bounds the damage of a dropped one.
func (s groupSession) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for message := range claim.Messages() {
		_ = s.consumer.handleMessage(session.Context(), message)
		session.MarkMessage(message, "")
	}
	return nil
}

type messageMeta struct {
	eventType string
	eventID   string
	carrier   propagation.MapCarrier
}

func readHeaders(message *sarama.ConsumerMessage) messageMeta {
	meta := messageMeta{carrier: propagation.MapCarrier{}}
	for _, header := range message.Headers {
		switch key := string(header.Key); key {
		case "event_type":
			meta.eventType = string(header.Value)
		case "event_id":
			meta.eventID = string(header.Value)
		default:
			meta.carrier[key] = string(header.Value)
		}
	}
	return meta
}

// handleMessage continues the producer's trace and dispatches on the event_type header
func (c *Consumer) handleMessage(ctx context.Context, message *sarama.ConsumerMessage) error {
	meta := readHeaders(message)
	ctx = otel.GetTextMapPropagator().Extract(ctx, meta.carrier)

	ctx, span := otel.Tracer("kafka-consumer").Start(ctx, "kafka.consume "+message.Topic,
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.destination.name", message.Topic),
			attribute.Int("messaging.kafka.partition", int(message.Partition)),
			attribute.Int64("messaging.kafka.offset", message.Offset),
			attribute.String("event.type", meta.eventType),
			attribute.String("event.id", meta.eventID),
		),
	)
	defer span.End()

	if meta.eventType == "" {
		span.SetStatus(codes.Error, errMissingEventType.Error())
		logger.Warn(ctx).Str("topic", message.Topic).Msg("Skipping message without event type")
		return errMissingEventType
	}

	handler, ok := c.handlerFor(meta.eventType)
	if !ok {
		return nil
	}

	if err := handler(ctx, message.Value); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "handler failed")
		logger.Error(ctx).
			Err(err).
			Str("event_type", meta.eventType).
			Str("event_id", meta.eventID).
			Msg("Failed to handle event")
		return err
	}

	logger.Debug(ctx).
		Str("event_type", meta.eventType).
		Str("event_id", meta.eventID).
		Msg("Event handled")
	return nil
}
