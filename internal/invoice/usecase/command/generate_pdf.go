package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/tair/pos-backoffice/internal/invoice/domain"
	"github.com/tair/pos-backoffice/pkg/logger"
	"github.com/tair/pos-backoffice/pkg/storage"
)

const pdfContentType = "application/pdf"

// Renderer turns an invoice into a document payload
type Renderer interface {
	Render(ctx context.Context, invoice *domain.Invoice) ([]byte, error)
}

// GenerateInvoicePdfCommand requests the rendered document of an order's invoice
type GenerateInvoicePdfCommand struct {
	OrderID uint
}

// GenerateInvoicePdfHandler renders invoices and keeps the result in the object store.
// A nil store disables persistence and every call renders afresh.
type GenerateInvoicePdfHandler struct {
	repo     domain.InvoiceRepository
	renderer Renderer
	store    storage.ObjectStore
}

// NewGenerateInvoicePdfHandler creates a new invoice document handler
func NewGenerateInvoicePdfHandler(repo domain.InvoiceRepository, renderer Renderer, store storage.ObjectStore) *GenerateInvoicePdfHandler {
	return &GenerateInvoicePdfHandler{repo: repo, renderer: renderer, store: store}
}

// DocumentKey is the object store key of an invoice's rendered document
func DocumentKey(number string) string {
	return "invoices/" + number + ".pdf"
}

// Handle fails with NotFound when the order has no invoice yet
func (h *GenerateInvoicePdfHandler) Handle(ctx context.Context, cmd GenerateInvoicePdfCommand) ([]byte, error) {
	invoice, err := h.repo.FindByOrderID(ctx, cmd.OrderID)
	if err != nil {
		return nil, err
	}

	if h.store != nil && invoice.DocumentKey != "" {
		data, err := h.store.Get(ctx, invoice.DocumentKey)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, storage.ErrObjectNotFound) {
			return nil, fmt.Errorf("failed to read invoice document: %w", err)
		}
		logger.Warn(ctx).
			Str("key", invoice.DocumentKey).
			Msg("Invoice document missing from store, rendering again")
	}

	data, err := h.renderer.Render(ctx, invoice)
	if err != nil {
		return nil, fmt.Errorf("failed to render invoice %s: %w", invoice.Number, err)
	}

	if h.store == nil {
		return data, nil
	}

	key := DocumentKey(invoice.Number)
	if err := h.store.Put(ctx, key, pdfContentType, data); err != nil {
		return nil, fmt.Errorf("failed to store invoice document: %w", err)
	}
	if err := h.repo.SetDocumentKey(ctx, invoice.ID, key); err != nil {
		return nil, err
	}

	logger.Info(ctx).
		Str("invoice_number", invoice.Number).
		Str("key", key).
		Int("bytes", len(data)).
		Msg("Invoice document stored")
	return data, nil
}
