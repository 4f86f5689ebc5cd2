package command

import (
	"context"

	"github.com/tair/pos-backoffice/internal/inventory/domain"
	"github.com/tair/pos-backoffice/pkg/apperr"
	"github.com/tair/pos-backoffice/pkg/logger"
)

// SetQuantityCommand represents a supervisor stock adjustment
type SetQuantityCommand struct {
	ProductID uint
	Quantity  int
}

// SetQuantityHandler handles set quantity command
type SetQuantityHandler struct {
	ledger *Ledger
}

// NewSetQuantityHandler creates a new set quantity handler
func NewSetQuantityHandler(ledger *Ledger) *SetQuantityHandler {
	return &SetQuantityHandler{ledger: ledger}
}

// Handle executes the set quantity command
func (h *SetQuantityHandler) Handle(ctx context.Context, cmd SetQuantityCommand) (*domain.Inventory, error) {
	if cmd.ProductID == 0 {
		return nil, apperr.InvalidInput("product_id is required")
	}

	inv, err := h.ledger.SetQuantity(ctx, cmd.ProductID, cmd.Quantity)
	if err != nil {
		return nil, err
	}

	logger.Info(ctx).
		Uint("product_id", cmd.ProductID).
		Int("quantity", inv.Quantity).
		Msg("Stock updated")
	return inv, nil
}
