package command

import (
	"context"

	"github.com/tair/pos-backoffice/internal/order/domain"
	"github.com/tair/pos-backoffice/pkg/apperr"
	"github.com/tair/pos-backoffice/pkg/database"
	"github.com/tair/pos-backoffice/pkg/logger"
)

// UpdateOrderCommand replaces the lines of an order
type UpdateOrderCommand struct {
	OrderID uint
	Items   []ItemInput
}

// UpdateOrderHandler handles order update command
type UpdateOrderHandler struct {
	tx       database.Transactor
	repo     domain.OrderRepository
	products ProductCatalog
	ledger   StockLedger
}

// NewUpdateOrderHandler creates a new update order handler
func NewUpdateOrderHandler(tx database.Transactor, repo domain.OrderRepository, products ProductCatalog, ledger StockLedger) *UpdateOrderHandler {
	return &UpdateOrderHandler{tx: tx, repo: repo, products: products, ledger: ledger}
}

// Handle gives back the stock of the current lines, reserves the new ones and
// rewrites the items and total. Only CREATED orders can be edited.
func (h *UpdateOrderHandler) Handle(ctx context.Context, cmd UpdateOrderCommand) (*domain.Order, error) {
	if err := validateItems(cmd.Items); err != nil {
		return nil, err
	}

	var order *domain.Order
	err := h.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		order, err = h.repo.FindByIDForUpdate(ctx, cmd.OrderID)
		if err != nil {
			return err
		}
		if order.Status != domain.StatusCreated {
			return apperr.InvalidState("order %d is %s and cannot be modified", order.ID, order.Status)
		}

		if err := restoreItems(ctx, h.ledger, order.Items); err != nil {
			return err
		}

		items, err := reserveItems(ctx, h.products, h.ledger, cmd.Items)
		if err != nil {
			return err
		}

		order.Items = items
		order.Total = domain.ComputeTotal(items)
		return h.repo.ReplaceItems(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx).
		Uint("order_id", order.ID).
		Int("items", len(order.Items)).
		Str("total", order.Total.StringFixed(2)).
		Msg("Order updated")
	return order, nil
}
