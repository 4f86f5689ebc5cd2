package query

import (
	"context"

	"github.com/tair/pos-backoffice/internal/order/domain"
)

// GetOrderQuery represents the query to get an order with its items
type GetOrderQuery struct {
	OrderID uint
}

// GetOrderHandler handles get order query
type GetOrderHandler struct {
	repo domain.OrderRepository
}

// NewGetOrderHandler creates a new get order handler
func NewGetOrderHandler(repo domain.OrderRepository) *GetOrderHandler {
	return &GetOrderHandler{repo: repo}
}

// Handle executes the get order query
func (h *GetOrderHandler) Handle(ctx context.Context, query GetOrderQuery) (*domain.Order, error) {
	return h.repo.FindByID(ctx, query.OrderID)
}
