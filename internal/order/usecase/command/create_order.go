package command

import (
	"context"

	"github.com/tair/pos-backoffice/internal/order/domain"
	"github.com/tair/pos-backoffice/pkg/apperr"
	"github.com/tair/pos-backoffice/pkg/database"
	"github.com/tair/pos-backoffice/pkg/logger"
	"github.com/tair/pos-backoffice/pkg/metrics"
)

// CreateOrderCommand represents the command to create a new order
type CreateOrderCommand struct {
	UserID uint
	Items  []ItemInput
}

// CreateOrderHandler handles order creation command
type CreateOrderHandler struct {
	tx       database.Transactor
	repo     domain.OrderRepository
	products ProductCatalog
	ledger   StockLedger
}

// NewCreateOrderHandler creates a new create order handler
func NewCreateOrderHandler(tx database.Transactor, repo domain.OrderRepository, products ProductCatalog, ledger StockLedger) *CreateOrderHandler {
	return &CreateOrderHandler{tx: tx, repo: repo, products: products, ledger: ledger}
}

// Handle reserves stock for every line and persists the order, all or nothing
func (h *CreateOrderHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*domain.Order, error) {
	if cmd.UserID == 0 {
		return nil, apperr.InvalidInput("user_id is required")
	}
	if err := validateItems(cmd.Items); err != nil {
		return nil, err
	}

	var order *domain.Order
	err := h.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		items, err := reserveItems(ctx, h.products, h.ledger, cmd.Items)
		if err != nil {
			return err
		}

		order = &domain.Order{
			UserID: cmd.UserID,
			Status: domain.StatusCreated,
			Total:  domain.ComputeTotal(items),
			Items:  items,
		}
		return h.repo.Create(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	metrics.OrdersCreated.Inc()
	logger.Info(ctx).
		Uint("order_id", order.ID).
		Uint("user_id", order.UserID).
		Int("items", len(order.Items)).
		Str("total", order.Total.StringFixed(2)).
		Msg("Order created")
	return order, nil
}
