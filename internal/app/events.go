package app

import (
	"context"

	"github.com/tair/pos-backoffice/kafka"
	"github.com/tair/pos-backoffice/pkg/logger"
)

// Subscriber is the part of the Kafka consumer the app registers against
type Subscriber interface {
	RegisterHandler(eventType string, handler kafka.EventHandler)
}

// ReportInvalidator drops cached sales aggregates
type ReportInvalidator interface {
	Invalidate(ctx context.Context) error
}

// SubscribeReportInvalidation clears the day-sales cache whenever any instance
// publishes invoice.generated, so replicas never serve totals missing that invoice.
func SubscribeReportInvalidation(sub Subscriber, reports ReportInvalidator) {
	sub.RegisterHandler(kafka.EventTypeInvoiceGenerated, kafka.InvoiceGeneratedHandler(
		func(ctx context.Context, event kafka.InvoiceGeneratedEvent) error {
			if err := reports.Invalidate(ctx); err != nil {
				return err
			}
			logger.Debug(ctx).
				Str("invoice_number", event.InvoiceNumber).
				Uint("order_id", event.OrderID).
				Msg("Report cache invalidated")
			return nil
		},
	))
}
