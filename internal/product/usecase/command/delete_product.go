package command

import (
	"context"

	inventorydomain "github.com/tair/pos-backoffice/internal/inventory/domain"
	"github.com/tair/pos-backoffice/internal/product/domain"
	"github.com/tair/pos-backoffice/pkg/apperr"
	"github.com/tair/pos-backoffice/pkg/database"
	"github.com/tair/pos-backoffice/pkg/logger"
)

// DeleteProductCommand represents the command to delete a product
type DeleteProductCommand struct {
	ID uint
}

// DeleteProductHandler handles product deletion command
type DeleteProductHandler struct {
	tx          database.Transactor
	repo        domain.ProductRepository
	inventories inventorydomain.InventoryRepository
}

// NewDeleteProductHandler creates a new delete product handler
func NewDeleteProductHandler(
	tx database.Transactor,
	repo domain.ProductRepository,
	inventories inventorydomain.InventoryRepository,
) *DeleteProductHandler {
	return &DeleteProductHandler{tx: tx, repo: repo, inventories: inventories}
}

// Handle removes the inventory record first, then the product
func (h *DeleteProductHandler) Handle(ctx context.Context, cmd DeleteProductCommand) error {
	if cmd.ID == 0 {
		return apperr.InvalidInput("invalid product id")
	}

	err := h.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := h.repo.FindByID(ctx, cmd.ID); err != nil {
			return err
		}
		if err := h.inventories.DeleteByProductID(ctx, cmd.ID); err != nil {
			return err
		}
		return h.repo.Delete(ctx, cmd.ID)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx).Uint("product_id", cmd.ID).Msg("Product deleted")
	return nil
}
