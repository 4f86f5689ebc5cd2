package query

import (
	"context"

	"github.com/tair/pos-backoffice/internal/invoice/domain"
)

// GetInvoiceByOrderQuery represents the query to get the invoice of an order
type GetInvoiceByOrderQuery struct {
	OrderID uint
}

// GetInvoiceByOrderHandler handles get invoice query
type GetInvoiceByOrderHandler struct {
	repo domain.InvoiceRepository
}

// NewGetInvoiceByOrderHandler creates a new get invoice handler
func NewGetInvoiceByOrderHandler(repo domain.InvoiceRepository) *GetInvoiceByOrderHandler {
	return &GetInvoiceByOrderHandler{repo: repo}
}

// Handle executes the get invoice query
func (h *GetInvoiceByOrderHandler) Handle(ctx context.Context, query GetInvoiceByOrderQuery) (*domain.Invoice, error) {
	return h.repo.FindByOrderID(ctx, query.OrderID)
}
