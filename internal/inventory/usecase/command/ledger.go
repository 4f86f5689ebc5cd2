package command

import (
	"context"
	"fmt"

	"github.com/tair/pos-backoffice/internal/inventory/domain"
	"github.com/tair/pos-backoffice/pkg/apperr"
	"github.com/tair/pos-backoffice/pkg/config"
	"github.com/tair/pos-backoffice/pkg/logger"
	"github.com/tair/pos-backoffice/pkg/metrics"
)

// Ledger mutates stock through compare-and-swap writes on the inventory version.
// A lost race re-reads the record and retries up to maxRetries times, then fails
// with Conflict. Quantity never goes below zero.
type Ledger struct {
	repo       domain.InventoryRepository
	maxRetries int
}

// NewLedger creates a new inventory ledger
func NewLedger(repo domain.InventoryRepository, cfg config.InventoryConfig) *Ledger {
	retries := cfg.MaxReserveRetries
	if retries < 1 {
		retries = 1
	}
	return &Ledger{repo: repo, maxRetries: retries}
}

// Reserve decrements stock by quantity, failing with InsufficientStock rather than clamping
func (l *Ledger) Reserve(ctx context.Context, productID uint, quantity int) error {
	if quantity <= 0 {
		return apperr.InvalidInput("reserve quantity must be positive, got %d", quantity)
	}

	inv, err := l.adjust(ctx, productID, func(current int) (int, error) {
		if current < quantity {
			return 0, apperr.InsufficientStock("product %d has %d in stock, %d requested", productID, current, quantity)
		}
		return current - quantity, nil
	})
	if err != nil {
		return err
	}

	logger.Debug(ctx).
		Uint("product_id", productID).
		Int("reserved", quantity).
		Int("remaining", inv.Quantity).
		Msg("Stock reserved")
	return nil
}

// Restore increments stock by quantity
func (l *Ledger) Restore(ctx context.Context, productID uint, quantity int) error {
	if quantity < 0 {
		return apperr.InvalidInput("restore quantity must not be negative, got %d", quantity)
	}
	if quantity == 0 {
		return nil
	}

	_, err := l.adjust(ctx, productID, func(current int) (int, error) {
		return current + quantity, nil
	})
	return err
}

// SetQuantity overwrites the stock level
func (l *Ledger) SetQuantity(ctx context.Context, productID uint, quantity int) (*domain.Inventory, error) {
	if quantity < 0 {
		return nil, apperr.InvalidInput("quantity cannot be negative")
	}
	return l.adjust(ctx, productID, func(int) (int, error) {
		return quantity, nil
	})
}

func (l *Ledger) adjust(ctx context.Context, productID uint, next func(current int) (int, error)) (*domain.Inventory, error) {
	for attempt := 1; attempt <= l.maxRetries; attempt++ {
		inv, err := l.repo.FindByProductID(ctx, productID)
		if err != nil {
			return nil, err
		}

		quantity, err := next(inv.Quantity)
		if err != nil {
			return nil, err
		}

		updated, err := l.repo.UpdateQuantityIfVersion(ctx, inv.ID, inv.Version, quantity)
		if err != nil {
			return nil, fmt.Errorf("failed to update inventory: %w", err)
		}
		if updated {
			inv.Quantity = quantity
			inv.Version++
			return inv, nil
		}

		metrics.ReservationConflicts.WithLabelValues(metrics.OutcomeRetried).Inc()
		logger.Debug(ctx).
			Uint("product_id", productID).
			Int("attempt", attempt).
			Msg("Inventory version conflict, retrying")
	}

	metrics.ReservationConflicts.WithLabelValues(metrics.OutcomeExhausted).Inc()
	logger.Warn(ctx).
		Uint("product_id", productID).
		Int("attempts", l.maxRetries).
		Msg("Inventory update gave up after repeated conflicts")
	return nil, apperr.Conflict("inventory for product %d was modified concurrently", productID)
}
