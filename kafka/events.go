package kafka

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderEvent is published when an order is created or cancelled
type OrderEvent struct {
	EventID   string          `json:"event_id"`
	EventType string          `json:"event_type"`
	OrderID   uint            `json:"order_id"`
	UserID    uint            `json:"user_id"`
	Status    string          `json:"status"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"item_count"`
	Timestamp time.Time       `json:"timestamp"`
}

// InvoiceGeneratedEvent is published once per newly generated invoice
type InvoiceGeneratedEvent struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	InvoiceID     uint            `json:"invoice_id"`
	InvoiceNumber string          `json:"invoice_number"`
	OrderID       uint            `json:"order_id"`
	Total         decimal.Decimal `json:"total"`
	TotalQuantity int             `json:"total_quantity"`
	Timestamp     time.Time       `json:"timestamp"`
}

// Event types
const (
	EventTypeOrderCreated     = "order.created"
	EventTypeOrderCancelled   = "order.cancelled"
	EventTypeInvoiceGenerated = "invoice.generated"
)

// Kafka topics
const (
	TopicOrders   = "pos-orders"
	TopicInvoices = "pos-invoices"
)
