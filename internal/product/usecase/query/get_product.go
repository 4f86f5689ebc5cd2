package query

import (
	"context"

	"github.com/tair/pos-backoffice/internal/product/domain"
	"github.com/tair/pos-backoffice/pkg/apperr"
)

// GetProductQuery looks a product up by id, or by barcode when ID is zero
type GetProductQuery struct {
	ID      uint
	Barcode string
}

// GetProductHandler handles get product query
type GetProductHandler struct {
	repo domain.ProductRepository
}

// NewGetProductHandler creates a new get product handler
func NewGetProductHandler(repo domain.ProductRepository) *GetProductHandler {
	return &GetProductHandler{repo: repo}
}

// Handle executes the get product query
func (h *GetProductHandler) Handle(ctx context.Context, query GetProductQuery) (*domain.Product, error) {
	if query.ID != 0 {
		return h.repo.FindByID(ctx, query.ID)
	}

	barcode := domain.NormalizeBarcode(query.Barcode)
	if barcode == "" {
		return nil, apperr.InvalidInput("product id or barcode is required")
	}
	return h.repo.FindByBarcode(ctx, barcode)
}
