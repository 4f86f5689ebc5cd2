package repository

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/pos-backoffice/internal/order/domain"
)

var tracer = otel.Tracer("order-repository")

// TracingOrderRepository wraps an OrderRepository with a span per call
type TracingOrderRepository struct {
	next domain.OrderRepository
}

var _ domain.OrderRepository = (*TracingOrderRepository)(nil)

func NewTracingOrderRepository(next domain.OrderRepository) *TracingOrderRepository {
	return &TracingOrderRepository{next: next}
}

func (r *TracingOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	ctx, span := tracer.Start(ctx, "repository.Create",
		trace.WithAttributes(
			attribute.Int("order.user_id", int(order.UserID)),
			attribute.Int("order.item_count", len(order.Items)),
			attribute.String("order.total", order.Total.StringFixed(2)),
		),
	)
	defer span.End()

	if err := r.next.Create(ctx, order); err != nil {
		recordError(span, err)
		return err
	}

	span.SetAttributes(attribute.Int("order.id", int(order.ID)))
	return nil
}

func (r *TracingOrderRepository) FindByID(ctx context.Context, id uint) (*domain.Order, error) {
	ctx, span := tracer.Start(ctx, "repository.FindByID",
		trace.WithAttributes(attribute.Int("order.id", int(id))),
	)
	defer span.End()

	order, err := r.next.FindByID(ctx, id)
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.String("order.status", string(order.Status)))
	return order, nil
}

func (r *TracingOrderRepository) FindByIDForUpdate(ctx context.Context, id uint) (*domain.Order, error) {
	ctx, span := tracer.Start(ctx, "repository.FindByIDForUpdate",
		trace.WithAttributes(attribute.Int("order.id", int(id))),
	)
	defer span.End()

	order, err := r.next.FindByIDForUpdate(ctx, id)
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	span.SetAttributes(
		attribute.String("order.status", string(order.Status)),
		attribute.Int("order.item_count", len(order.Items)),
	)
	return order, nil
}

func (r *TracingOrderRepository) FindAll(ctx context.Context, limit, offset int) ([]domain.Order, error) {
	ctx, span := tracer.Start(ctx, "repository.FindAll",
		trace.WithAttributes(
			attribute.Int("query.limit", limit),
			attribute.Int("query.offset", offset),
		),
	)
	defer span.End()

	orders, err := r.next.FindAll(ctx, limit, offset)
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("result.count", len(orders)))
	return orders, nil
}

func (r *TracingOrderRepository) FindByCreatedRange(ctx context.Context, from, to time.Time) ([]domain.Order, error) {
	ctx, span := tracer.Start(ctx, "repository.FindByCreatedRange",
		trace.WithAttributes(
			attribute.String("query.from", from.Format(time.RFC3339)),
			attribute.String("query.to", to.Format(time.RFC3339)),
		),
	)
	defer span.End()

	orders, err := r.next.FindByCreatedRange(ctx, from, to)
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("result.count", len(orders)))
	return orders, nil
}

func (r *TracingOrderRepository) ReplaceItems(ctx context.Context, order *domain.Order) error {
	ctx, span := tracer.Start(ctx, "repository.ReplaceItems",
		trace.WithAttributes(
			attribute.Int("order.id", int(order.ID)),
			attribute.Int("order.item_count", len(order.Items)),
		),
	)
	defer span.End()

	if err := r.next.ReplaceItems(ctx, order); err != nil {
		recordError(span, err)
		return err
	}
	return nil
}

func (r *TracingOrderRepository) TransitionStatus(ctx context.Context, id uint, from, to domain.Status) (bool, error) {
	ctx, span := tracer.Start(ctx, "repository.TransitionStatus",
		trace.WithAttributes(
			attribute.Int("order.id", int(id)),
			attribute.String("order.status.from", string(from)),
			attribute.String("order.status.to", string(to)),
		),
	)
	defer span.End()

	changed, err := r.next.TransitionStatus(ctx, id, from, to)
	if err != nil {
		recordError(span, err)
		return false, err
	}

	span.SetAttributes(attribute.Bool("order.status.changed", changed))
	return changed, nil
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
