package command

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	clientdomain "github.com/tair/pos-backoffice/internal/client/domain"
	inventorydomain "github.com/tair/pos-backoffice/internal/inventory/domain"
	"github.com/tair/pos-backoffice/internal/product/domain"
	"github.com/tair/pos-backoffice/pkg/database"
	"github.com/tair/pos-backoffice/pkg/logger"
	"github.com/tair/pos-backoffice/pkg/money"
)

// UpdateProductCommand represents the command to update a product. The barcode is immutable.
type UpdateProductCommand struct {
	ID       uint
	ClientID uint
	Name     string
	MRP      decimal.Decimal
	ImageURL string
}

// UpdateProductHandler handles product update command
type UpdateProductHandler struct {
	tx          database.Transactor
	repo        domain.ProductRepository
	clients     clientdomain.ClientRepository
	inventories inventorydomain.InventoryRepository
}

// NewUpdateProductHandler creates a new update product handler
func NewUpdateProductHandler(
	tx database.Transactor,
	repo domain.ProductRepository,
	clients clientdomain.ClientRepository,
	inventories inventorydomain.InventoryRepository,
) *UpdateProductHandler {
	return &UpdateProductHandler{tx: tx, repo: repo, clients: clients, inventories: inventories}
}

// Handle updates the product and refreshes the fields cached on its inventory record
// in the same transaction. Order item and invoice snapshots are left untouched.
func (h *UpdateProductHandler) Handle(ctx context.Context, cmd UpdateProductCommand) (*domain.Product, error) {
	var product *domain.Product

	err := h.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		existing, err := h.repo.FindByID(ctx, cmd.ID)
		if err != nil {
			return err
		}

		existing.Name = strings.TrimSpace(cmd.Name)
		existing.MRP = money.Round(cmd.MRP)
		existing.ImageURL = strings.TrimSpace(cmd.ImageURL)
		if cmd.ClientID != 0 && cmd.ClientID != existing.ClientID {
			if err := ensureClientUsable(ctx, h.clients, cmd.ClientID); err != nil {
				return err
			}
			existing.ClientID = cmd.ClientID
		}
		if err := validate(existing); err != nil {
			return err
		}

		if err := h.repo.Update(ctx, existing); err != nil {
			return err
		}

		product = existing
		return h.inventories.RefreshProduct(ctx, existing.ID, inventorydomain.ProductSnapshot{
			Name:    existing.Name,
			Barcode: existing.Barcode,
			MRP:     existing.MRP,
		})
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx).Uint("product_id", product.ID).Msg("Product updated")
	return product, nil
}
