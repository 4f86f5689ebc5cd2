package command

import (
	"context"

	"github.com/tair/pos-backoffice/internal/order/domain"
	"github.com/tair/pos-backoffice/pkg/apperr"
	"github.com/tair/pos-backoffice/pkg/logger"
)

// UpdateStatusCommand moves an order to a new status
type UpdateStatusCommand struct {
	OrderID uint
	Status  domain.Status
}

// UpdateStatusHandler applies the legal transitions only. Cancellation is delegated to
// CancelOrderHandler so that stock is always restored with it.
type UpdateStatusHandler struct {
	repo   domain.OrderRepository
	cancel *CancelOrderHandler
}

// NewUpdateStatusHandler creates a new update status handler
func NewUpdateStatusHandler(repo domain.OrderRepository, cancel *CancelOrderHandler) *UpdateStatusHandler {
	return &UpdateStatusHandler{repo: repo, cancel: cancel}
}

// Handle joins the caller's transaction when ctx carries one
func (h *UpdateStatusHandler) Handle(ctx context.Context, cmd UpdateStatusCommand) error {
	switch cmd.Status {
	case domain.StatusCancelled:
		_, err := h.cancel.Handle(ctx, CancelOrderCommand{OrderID: cmd.OrderID})
		return err
	case domain.StatusInvoiced:
	default:
		return apperr.InvalidInput("unsupported target status %q", cmd.Status)
	}

	order, err := h.repo.FindByIDForUpdate(ctx, cmd.OrderID)
	if err != nil {
		return err
	}
	if !order.Status.CanTransitionTo(cmd.Status) {
		return apperr.InvalidState("order %d cannot move from %s to %s", order.ID, order.Status, cmd.Status)
	}

	changed, err := h.repo.TransitionStatus(ctx, order.ID, order.Status, cmd.Status)
	if err != nil {
		return err
	}
	if !changed {
		return apperr.InvalidState("order %d changed status concurrently", order.ID)
	}

	logger.Debug(ctx).
		Uint("order_id", order.ID).
		Str("from", string(order.Status)).
		Str("to", string(cmd.Status)).
		Msg("Order status updated")
	return nil
}
