package query

import (
	"context"
	"fmt"

	"github.com/tair/pos-backoffice/internal/product/domain"
)

// ListProductsQuery represents the query to list products, optionally for one client
type ListProductsQuery struct {
	ClientID uint
	Limit    int
	Offset   int
}

// ListProductsHandler handles list products query
type ListProductsHandler struct {
	repo domain.ProductRepository
}

// NewListProductsHandler creates a new list products handler
func NewListProductsHandler(repo domain.ProductRepository) *ListProductsHandler {
	return &ListProductsHandler{repo: repo}
}

// Handle executes the list products query
func (h *ListProductsHandler) Handle(ctx context.Context, query ListProductsQuery) ([]domain.Product, error) {
	if query.Limit <= 0 {
		query.Limit = 10
	}
	if query.Limit > 100 {
		query.Limit = 100
	}
	if query.Offset < 0 {
		query.Offset = 0
	}

	products, err := h.repo.FindAll(ctx, domain.ProductFilter{
		ClientID: query.ClientID,
		Limit:    query.Limit,
		Offset:   query.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}
