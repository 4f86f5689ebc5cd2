package query

import (
	"context"
	"fmt"
	"time"

	"github.com/tair/pos-backoffice/internal/order/domain"
	"github.com/tair/pos-backoffice/pkg/daterange"
)

// OrdersByDateRangeQuery selects orders created on the UTC days Start..End inclusive
type OrdersByDateRangeQuery struct {
	Start time.Time
	End   time.Time
}

// OrdersByDateRangeHandler handles the date range query
type OrdersByDateRangeHandler struct {
	repo domain.OrderRepository
}

// NewOrdersByDateRangeHandler creates a new date range handler
func NewOrdersByDateRangeHandler(repo domain.OrderRepository) *OrdersByDateRangeHandler {
	return &OrdersByDateRangeHandler{repo: repo}
}

// Handle fails with InvalidRange when End is before Start
func (h *OrdersByDateRangeHandler) Handle(ctx context.Context, query OrdersByDateRangeQuery) ([]domain.Order, error) {
	from, to, err := daterange.Bounds(query.Start, query.End)
	if err != nil {
		return nil, err
	}

	orders, err := h.repo.FindByCreatedRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders by date: %w", err)
	}
	return orders, nil
}
