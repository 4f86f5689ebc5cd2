package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pos_orders_created_total",
		Help: "Orders created",
	})

	OrdersCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pos_orders_cancelled_total",
		Help: "Orders cancelled",
	})

	InvoicesGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pos_invoices_generated_total",
		Help: "Invoices generated (idempotent replays excluded)",
	})

	// ReservationConflicts counts optimistic lock collisions on inventory rows
	ReservationConflicts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pos_stock_reservation_conflicts_total",
		Help: "Inventory version conflicts, by outcome",
	}, []string{"outcome"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pos_http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

// Conflict outcomes
const (
	OutcomeRetried   = "retried"
	OutcomeExhausted = "exhausted"
)
