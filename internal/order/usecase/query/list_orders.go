package query

import (
	"context"
	"fmt"

	"github.com/tair/pos-backoffice/internal/order/domain"
)

// ListOrdersQuery represents the query to list orders, newest first
type ListOrdersQuery struct {
	Limit  int
	Offset int
}

// ListOrdersHandler handles list orders query
type ListOrdersHandler struct {
	repo domain.OrderRepository
}

// NewListOrdersHandler creates a new list orders handler
func NewListOrdersHandler(repo domain.OrderRepository) *ListOrdersHandler {
	return &ListOrdersHandler{repo: repo}
}

// Handle executes the list orders query
func (h *ListOrdersHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]domain.Order, error) {
	if query.Limit <= 0 {
		query.Limit = 10
	}
	if query.Limit > 100 {
		query.Limit = 100
	}
	if query.Offset < 0 {
		query.Offset = 0
	}

	orders, err := h.repo.FindAll(ctx, query.Limit, query.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}
