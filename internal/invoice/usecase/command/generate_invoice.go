package command

import (
	"context"
	"errors"

	"github.com/tair/pos-backoffice/internal/invoice/domain"
	orderdomain "github.com/tair/pos-backoffice/internal/order/domain"
	ordercmd "github.com/tair/pos-backoffice/internal/order/usecase/command"
	"github.com/tair/pos-backoffice/pkg/apperr"
	"github.com/tair/pos-backoffice/pkg/database"
	"github.com/tair/pos-backoffice/pkg/logger"
	"github.com/tair/pos-backoffice/pkg/metrics"
)

// OrderReader loads an order with its items
type OrderReader interface {
	FindByID(ctx context.Context, id uint) (*orderdomain.Order, error)
	FindByIDForUpdate(ctx context.Context, id uint) (*orderdomain.Order, error)
}

// StatusUpdater applies order status transitions
type StatusUpdater interface {
	Handle(ctx context.Context, cmd ordercmd.UpdateStatusCommand) error
}

// CacheInvalidator drops derived sales data after a new invoice
type CacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

// GenerateInvoiceCommand requests the invoice of an order
type GenerateInvoiceCommand struct {
	OrderID uint
}

// GenerateInvoiceHandler handles invoice generation command
type GenerateInvoiceHandler struct {
	tx      database.Transactor
	repo    domain.InvoiceRepository
	orders  OrderReader
	status  StatusUpdater
	reports CacheInvalidator
}

// NewGenerateInvoiceHandler creates a new generate invoice handler
func NewGenerateInvoiceHandler(
	tx database.Transactor,
	repo domain.InvoiceRepository,
	orders OrderReader,
	status StatusUpdater,
	reports CacheInvalidator,
) *GenerateInvoiceHandler {
	return &GenerateInvoiceHandler{tx: tx, repo: repo, orders: orders, status: status, reports: reports}
}

// Handle returns the order's invoice, creating it on first request. The boolean is
// true only when this call created it; repeated calls return the stored invoice.
func (h *GenerateInvoiceHandler) Handle(ctx context.Context, cmd GenerateInvoiceCommand) (*domain.Invoice, bool, error) {
	var (
		invoice *domain.Invoice
		created bool
	)

	err := h.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		order, err := h.orders.FindByIDForUpdate(ctx, cmd.OrderID)
		if err != nil {
			return err
		}

		existing, err := h.repo.FindByOrderID(ctx, order.ID)
		if err == nil {
			invoice = existing
			return nil
		}
		if !errors.Is(err, apperr.ErrNotFound) {
			return err
		}

		if order.Status != orderdomain.StatusCreated {
			return apperr.InvalidState("order %d is %s and cannot be invoiced", order.ID, order.Status)
		}

		if err := h.status.Handle(ctx, ordercmd.UpdateStatusCommand{
			OrderID: order.ID,
			Status:  orderdomain.StatusInvoiced,
		}); err != nil {
			return err
		}

		// Snapshot the lines as they stand once the order is INVOICED and frozen.
		order, err = h.orders.FindByID(ctx, order.ID)
		if err != nil {
			return err
		}
		invoice = domain.Snapshot(order)
		if err := h.repo.Create(ctx, invoice); err != nil {
			return err
		}
		created = true
		return nil
	})

	// A concurrent request invoiced the order first; return its invoice.
	if errors.Is(err, apperr.ErrConflict) || errors.Is(err, apperr.ErrInvalidState) {
		existing, findErr := h.repo.FindByOrderID(ctx, cmd.OrderID)
		if findErr == nil {
			return existing, false, nil
		}
	}
	if err != nil {
		return nil, false, err
	}

	if created {
		metrics.InvoicesGenerated.Inc()
		if err := h.reports.Invalidate(ctx); err != nil {
			logger.Warn(ctx).Err(err).Msg("Failed to invalidate sales report cache")
		}
		logger.Info(ctx).
			Uint("order_id", invoice.OrderID).
			Str("invoice_number", invoice.Number).
			Str("total", invoice.Total.StringFixed(2)).
			Msg("Invoice generated")
	}
	return invoice, created, nil
}
