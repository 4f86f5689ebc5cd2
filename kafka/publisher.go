package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/pos-backoffice/pkg/logger"
)

// EventPublisher publishes back office domain events
type EventPublisher interface {
	PublishOrderEvent(ctx context.Context, event OrderEvent) error
	PublishInvoiceGenerated(ctx context.Context, event InvoiceGeneratedEvent) error
}

// Publisher wraps a Kafka sync producer
type Publisher struct {
	producer sarama.SyncProducer
}

var _ EventPublisher = (*Publisher)(nil)

// NewPublisher connects a producer to brokers
func NewPublisher(brokers []string) (*Publisher, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.Retry.Max = 3
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Compression = sarama.CompressionSnappy
	config.Producer.MaxMessageBytes = 1000000

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	logger.Logger.Info().
		Strs("brokers", brokers).
		Msg("Kafka publisher initialized")

	return NewPublisherWithProducer(producer), nil
}

// NewPublisherWithProducer wraps an existing producer
func NewPublisherWithProducer(producer sarama.SyncProducer) *Publisher {
	return &Publisher{producer: producer}
}

// PublishOrderEvent publishes order.created or order.cancelled keyed by order id
func (p *Publisher) PublishOrderEvent(ctx context.Context, event OrderEvent) error {
	if event.EventType == "" {
		return fmt.Errorf("event type is required")
	}
	if event.EventID == "" {
		event.EventID = uuid.NewString()
	}
	event.Timestamp = time.Now().UTC()

	return p.send(ctx, TopicOrders, event.EventType, event.EventID,
		fmt.Sprintf("order_%d", event.OrderID), event,
		attribute.Int64("order.id", int64(event.OrderID)),
		attribute.String("order.status", event.Status),
	)
}

// PublishInvoiceGenerated publishes invoice.generated keyed by order id
func (p *Publisher) PublishInvoiceGenerated(ctx context.Context, event InvoiceGeneratedEvent) error {
	if event.EventID == "" {
		event.EventID = uuid.NewString()
	}
	event.EventType = EventTypeInvoiceGenerated
	event.Timestamp = time.Now().UTC()

	return p.send(ctx, TopicInvoices, event.EventType, event.EventID,
		fmt.Sprintf("order_%d", event.OrderID), event,
		attribute.Int64("order.id", int64(event.OrderID)),
		attribute.String("invoice.number", event.InvoiceNumber),
	)
}

func (p *Publisher) send(ctx context.Context, topic, eventType, eventID, key string, event interface{}, attrs ...attribute.KeyValue) error {
	tracer := otel.Tracer("kafka-publisher")
	ctx, span := tracer.Start(ctx, "kafka.publish."+eventType,
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.destination", topic),
			attribute.String("messaging.destination_kind", "topic"),
			attribute.String("event.type", eventType),
			attribute.String("event.id", eventID),
		),
		trace.WithAttributes(attrs...),
	)
	defer span.End()

	eventBytes, err := json.Marshal(event)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to marshal event")
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	// Propagate trace context through message headers
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)

	headers := []sarama.RecordHeader{
		{Key: []byte("event_type"), Value: []byte(eventType)},
		{Key: []byte("event_id"), Value: []byte(eventID)},
	}
	for k, v := range carrier {
		headers = append(headers, sarama.RecordHeader{Key: []byte(k), Value: []byte(v)})
	}

	msg := &sarama.ProducerMessage{
		Topic:   topic,
		Key:     sarama.StringEncoder(key),
		Value:   sarama.ByteEncoder(eventBytes),
		Headers: headers,
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to send message")
		return fmt.Errorf("failed to send message to Kafka: %w", err)
	}

	span.SetAttributes(
		attribute.Int("messaging.kafka.partition", int(partition)),
		attribute.Int64("messaging.kafka.offset", offset),
	)
	span.SetStatus(codes.Ok, "Event published successfully")

	logger.Info(ctx).
		Str("event_id", eventID).
		Str("event_type", eventType).
		Str("topic", topic).
		Int32("partition", partition).
		Int64("offset", offset).
		Msg("Event published")

	return nil
}

// Close closes the Kafka producer
func (p *Publisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}

// NopPublisher drops every event; used when Kafka is disabled
type NopPublisher struct{}

func (NopPublisher) PublishOrderEvent(context.Context, OrderEvent) error { return nil }

func (NopPublisher) PublishInvoiceGenerated(context.Context, InvoiceGeneratedEvent) error {
	return nil
}
