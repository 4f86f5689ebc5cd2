package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/pos-backoffice/internal/inventory/domain"
)

var tracer = otel.Tracer("inventory-repository")

// TracingInventoryRepository wraps an InventoryRepository with a span per call
type TracingInventoryRepository struct {
	next domain.InventoryRepository
}

var _ domain.InventoryRepository = (*TracingInventoryRepository)(nil)

// NewTracingInventoryRepository creates a new repository with tracing
func NewTracingInventoryRepository(next domain.InventoryRepository) *TracingInventoryRepository {
	return &TracingInventoryRepository{next: next}
}

func (r *TracingInventoryRepository) Create(ctx context.Context, inventory *domain.Inventory) error {
	ctx, span := tracer.Start(ctx, "repository.Create",
		trace.WithAttributes(
			attribute.Int("inventory.product_id", int(inventory.ProductID)),
			attribute.Int("inventory.quantity", inventory.Quantity),
		),
	)
	defer span.End()

	if err := r.next.Create(ctx, inventory); err != nil {
		recordError(span, err)
		return err
	}

	span.SetAttributes(attribute.Int("inventory.id", int(inventory.ID)))
	return nil
}

func (r *TracingInventoryRepository) FindByProductID(ctx context.Context, productID uint) (*domain.Inventory, error) {
	ctx, span := tracer.Start(ctx, "repository.FindByProductID",
		trace.WithAttributes(attribute.Int("inventory.product_id", int(productID))),
	)
	defer span.End()

	inventory, err := r.next.FindByProductID(ctx, productID)
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("inventory.id", int(inventory.ID)),
		attribute.Int("inventory.quantity", inventory.Quantity),
		attribute.Int64("inventory.version", inventory.Version),
	)
	return inventory, nil
}

func (r *TracingInventoryRepository) FindByBarcode(ctx context.Context, barcode string) (*domain.Inventory, error) {
	ctx, span := tracer.Start(ctx, "repository.FindByBarcode",
		trace.WithAttributes(attribute.String("inventory.barcode", barcode)),
	)
	defer span.End()

	inventory, err := r.next.FindByBarcode(ctx, barcode)
	if err != nil {
		recordError(span, err)
		return nil, err
	}
	return inventory, nil
}

func (r *TracingInventoryRepository) FindAll(ctx context.Context, limit, offset int) ([]domain.Inventory, error) {
	ctx, span := tracer.Start(ctx, "repository.FindAll",
		trace.WithAttributes(
			attribute.Int("query.limit", limit),
			attribute.Int("query.offset", offset),
		),
	)
	defer span.End()

	inventories, err := r.next.FindAll(ctx, limit, offset)
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("result.count", len(inventories)))
	return inventories, nil
}

func (r *TracingInventoryRepository) UpdateQuantityIfVersion(ctx context.Context, id uint, expectedVersion int64, quantity int) (bool, error) {
	ctx, span := tracer.Start(ctx, "repository.UpdateQuantityIfVersion",
		trace.WithAttributes(
			attribute.Int("inventory.id", int(id)),
			attribute.Int64("inventory.expected_version", expectedVersion),
			attribute.Int("quantity.new_value", quantity),
		),
	)
	defer span.End()

	updated, err := r.next.UpdateQuantityIfVersion(ctx, id, expectedVersion, quantity)
	if err != nil {
		recordError(span, err)
		return false, err
	}

	span.SetAttributes(attribute.Bool("inventory.updated", updated))
	return updated, nil
}

func (r *TracingInventoryRepository) RefreshProduct(ctx context.Context, productID uint, snapshot domain.ProductSnapshot) error {
	ctx, span := tracer.Start(ctx, "repository.RefreshProduct",
		trace.WithAttributes(attribute.Int("inventory.product_id", int(productID))),
	)
	defer span.End()

	if err := r.next.RefreshProduct(ctx, productID, snapshot); err != nil {
		recordError(span, err)
		return err
	}
	return nil
}

func (r *TracingInventoryRepository) DeleteByProductID(ctx context.Context, productID uint) error {
	ctx, span := tracer.Start(ctx, "repository.DeleteByProductID",
		trace.WithAttributes(attribute.Int("inventory.product_id", int(productID))),
	)
	defer span.End()

	if err := r.next.DeleteByProductID(ctx, productID); err != nil {
		recordError(span, err)
		return err
	}
	return nil
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
