package command

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	clientdomain "github.com/tair/pos-backoffice/internal/client/domain"
	inventorydomain "github.com/tair/pos-backoffice/internal/inventory/domain"
	"github.com/tair/pos-backoffice/internal/product/domain"
	"github.com/tair/pos-backoffice/pkg/apperr"
	"github.com/tair/pos-backoffice/pkg/database"
	"github.com/tair/pos-backoffice/pkg/logger"
	"github.com/tair/pos-backoffice/pkg/money"
)

// CreateProductCommand represents the command to create a new product
type CreateProductCommand struct {
	Barcode  string
	ClientID uint
	Name     string
	MRP      decimal.Decimal
	ImageURL string
}

// CreateProductHandler handles product creation command
type CreateProductHandler struct {
	tx          database.Transactor
	repo        domain.ProductRepository
	clients     clientdomain.ClientRepository
	inventories inventorydomain.InventoryRepository
}

// NewCreateProductHandler creates a new create product handler
func NewCreateProductHandler(
	tx database.Transactor,
	repo domain.ProductRepository,
	clients clientdomain.ClientRepository,
	inventories inventorydomain.InventoryRepository,
) *CreateProductHandler {
	return &CreateProductHandler{tx: tx, repo: repo, clients: clients, inventories: inventories}
}

// Handle inserts the product together with its zero-quantity inventory record
func (h *CreateProductHandler) Handle(ctx context.Context, cmd CreateProductCommand) (*domain.Product, error) {
	product := &domain.Product{
		Barcode:  domain.NormalizeBarcode(cmd.Barcode),
		ClientID: cmd.ClientID,
		Name:     strings.TrimSpace(cmd.Name),
		MRP:      money.Round(cmd.MRP),
		ImageURL: strings.TrimSpace(cmd.ImageURL),
	}
	if err := validate(product); err != nil {
		return nil, err
	}

	err := h.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := ensureClientUsable(ctx, h.clients, product.ClientID); err != nil {
			return err
		}
		if err := ensureBarcodeFree(ctx, h.repo, product.Barcode); err != nil {
			return err
		}

		if err := h.repo.Create(ctx, product); err != nil {
			return err
		}

		return h.inventories.Create(ctx, &inventorydomain.Inventory{
			ProductID:   product.ID,
			ProductName: product.Name,
			Barcode:     product.Barcode,
			MRP:         product.MRP,
			Quantity:    0,
		})
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx).
		Uint("product_id", product.ID).
		Str("barcode", product.Barcode).
		Msg("Product created")
	return product, nil
}

func validate(product *domain.Product) error {
	if product.Barcode == "" {
		return apperr.InvalidInput("barcode is required")
	}
	if product.Name == "" {
		return apperr.InvalidInput("product name is required")
	}
	if product.ClientID == 0 {
		return apperr.InvalidInput("client_id is required")
	}
	if !money.IsPositive(product.MRP) {
		return apperr.InvalidInput("mrp must be greater than 0")
	}
	return nil
}

func ensureClientUsable(ctx context.Context, clients clientdomain.ClientRepository, clientID uint) error {
	client, err := clients.FindByID(ctx, clientID)
	if err != nil {
		return err
	}
	if !client.IsActive {
		return apperr.InvalidState("client %d is inactive", clientID)
	}
	return nil
}

func ensureBarcodeFree(ctx context.Context, repo domain.ProductRepository, barcode string) error {
	_, err := repo.FindByBarcode(ctx, barcode)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to check barcode: %w", err)
	}
	return apperr.Conflict("barcode %q already exists", barcode)
}
