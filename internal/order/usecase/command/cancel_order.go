package command

import (
	"context"

	"github.com/tair/pos-backoffice/internal/order/domain"
	"github.com/tair/pos-backoffice/pkg/apperr"
	"github.com/tair/pos-backoffice/pkg/database"
	"github.com/tair/pos-backoffice/pkg/logger"
	"github.com/tair/pos-backoffice/pkg/metrics"
)

// CancelOrderCommand represents the command to cancel an order
type CancelOrderCommand struct {
	OrderID uint
}

// CancelOrderHandler handles order cancellation command
type CancelOrderHandler struct {
	tx     database.Transactor
	repo   domain.OrderRepository
	ledger StockLedger
}

// NewCancelOrderHandler creates a new cancel order handler
func NewCancelOrderHandler(tx database.Transactor, repo domain.OrderRepository, ledger StockLedger) *CancelOrderHandler {
	return &CancelOrderHandler{tx: tx, repo: repo, ledger: ledger}
}

// Handle flips a CREATED order to CANCELLED and gives its stock back in one transaction
func (h *CancelOrderHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (*domain.Order, error) {
	var order *domain.Order
	err := h.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		current, err := h.repo.FindByIDForUpdate(ctx, cmd.OrderID)
		if err != nil {
			return err
		}
		if !current.Status.CanTransitionTo(domain.StatusCancelled) {
			return apperr.InvalidState("order %d is %s and cannot be cancelled", current.ID, current.Status)
		}

		changed, err := h.repo.TransitionStatus(ctx, current.ID, domain.StatusCreated, domain.StatusCancelled)
		if err != nil {
			return err
		}
		if !changed {
			return apperr.InvalidState("order %d changed status concurrently", current.ID)
		}

		// Lines are read once the order can no longer be edited, so the restore
		// matches what is actually reserved.
		order, err = h.repo.FindByID(ctx, current.ID)
		if err != nil {
			return err
		}
		if err := restoreItems(ctx, h.ledger, order.Items); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.OrdersCancelled.Inc()
	logger.Info(ctx).
		Uint("order_id", order.ID).
		Int("items", len(order.Items)).
		Msg("Order cancelled")
	return order, nil
}
