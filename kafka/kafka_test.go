package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublisher_PublishOrderEvent(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var event OrderEvent
		if err := json.Unmarshal(val, &event); err != nil {
			return err
		}
		if event.EventType != EventTypeOrderCreated || event.OrderID != 42 {
			return errors.New("unexpected event payload")
		}
		if event.EventID == "" {
			return errors.New("event id not assigned")
		}
		return nil
	})

	p := NewPublisherWithProducer(producer)
	err := p.PublishOrderEvent(context.Background(), OrderEvent{
		EventType: EventTypeOrderCreated,
		OrderID:   42,
		UserID:    7,
		Status:    "CREATED",
		Total:     decimal.RequireFromString("30.00"),
		ItemCount: 1,
	})
	require.NoError(t, err)
	require.NoError(t, p.Close())
}

func TestPublisher_PublishOrderEventRequiresType(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	p := NewPublisherWithProducer(producer)

	err := p.PublishOrderEvent(context.Background(), OrderEvent{OrderID: 1})
	assert.Error(t, err)
	require.NoError(t, p.Close())
}

func TestPublisher_SendFailure(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	p := NewPublisherWithProducer(producer)
	err := p.PublishInvoiceGenerated(context.Background(), InvoiceGeneratedEvent{OrderID: 1, InvoiceNumber: "INV-1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, p.Close())
}

func TestConsumer_HandleMessage(t *testing.T) {
	c := newConsumer(nil, "pos-test", []string{TopicInvoices})

	var got InvoiceGeneratedEvent
	c.RegisterHandler(EventTypeInvoiceGenerated, InvoiceGeneratedHandler(func(ctx context.Context, event InvoiceGeneratedEvent) error {
		got = event
		return nil
	}))

	payload, err := json.Marshal(InvoiceGeneratedEvent{OrderID: 9, InvoiceNumber: "INV-abc"})
	require.NoError(t, err)

	err = c.handleMessage(context.Background(), &sarama.ConsumerMessage{
		Topic: TopicInvoices,
		Value: payload,
		Headers: []*sarama.RecordHeader{
			{Key: []byte("event_type"), Value: []byte(EventTypeInvoiceGenerated)},
			{Key: []byte("event_id"), Value: []byte("evt-1")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, uint(9), got.OrderID)
	assert.Equal(t, "INV-abc", got.InvoiceNumber)
}

func TestConsumer_HandleMessageEdgeCases(t *testing.T) {
	c := newConsumer(nil, "pos-test", []string{TopicOrders})
	c.RegisterHandler(EventTypeInvoiceGenerated, InvoiceGeneratedHandler(func(context.Context, InvoiceGeneratedEvent) error {
		return nil
	}))

	t.Run("missing event type", func(t *testing.T) {
		err := c.handleMessage(context.Background(), &sarama.ConsumerMessage{Topic: TopicOrders})
		assert.Error(t, err)
	})

	t.Run("unregistered type is skipped", func(t *testing.T) {
		err := c.handleMessage(context.Background(), &sarama.ConsumerMessage{
			Topic:   TopicOrders,
			Headers: []*sarama.RecordHeader{{Key: []byte("event_type"), Value: []byte(EventTypeOrderCreated)}},
		})
		assert.NoError(t, err)
	})

	t.Run("malformed payload", func(t *testing.T) {
		err := c.handleMessage(context.Background(), &sarama.ConsumerMessage{
			Topic:   TopicInvoices,
			Value:   []byte("{"),
			Headers: []*sarama.RecordHeader{{Key: []byte("event_type"), Value: []byte(EventTypeInvoiceGenerated)}},
		})
		assert.Error(t, err)
	})
}
