package query

import (
	"context"
	"strings"

	"github.com/tair/pos-backoffice/internal/inventory/domain"
	"github.com/tair/pos-backoffice/pkg/apperr"
)

// GetInventoryQuery looks up stock by product id or barcode; ProductID wins when both are set
type GetInventoryQuery struct {
	ProductID uint
	Barcode   string
}

// GetInventoryHandler handles get inventory query
type GetInventoryHandler struct {
	repo domain.InventoryRepository
}

// NewGetInventoryHandler creates a new get inventory handler
func NewGetInventoryHandler(repo domain.InventoryRepository) *GetInventoryHandler {
	return &GetInventoryHandler{repo: repo}
}

// Handle executes the get inventory query
func (h *GetInventoryHandler) Handle(ctx context.Context, query GetInventoryQuery) (*domain.Inventory, error) {
	if query.ProductID != 0 {
		return h.repo.FindByProductID(ctx, query.ProductID)
	}

	barcode := strings.ToLower(strings.TrimSpace(query.Barcode))
	if barcode == "" {
		return nil, apperr.InvalidInput("product_id or barcode is required")
	}
	return h.repo.FindByBarcode(ctx, barcode)
}
