package command

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tair/pos-backoffice/internal/order/domain"
	productdomain "github.com/tair/pos-backoffice/internal/product/domain"
	"github.com/tair/pos-backoffice/pkg/apperr"
	"github.com/tair/pos-backoffice/pkg/money"
)

// StockLedger is the part of the inventory ledger the order engine drives
type StockLedger interface {
	Reserve(ctx context.Context, productID uint, quantity int) error
	Restore(ctx context.Context, productID uint, quantity int) error
}

// ProductCatalog resolves the product snapshot for a new line
type ProductCatalog interface {
	FindByID(ctx context.Context, id uint) (*productdomain.Product, error)
}

// ItemInput is one requested line. A nil SellingPrice means the product's current MRP.
type ItemInput struct {
	ProductID    uint
	Quantity     int
	SellingPrice *decimal.Decimal
}

func validateItems(items []ItemInput) error {
	if len(items) == 0 {
		return apperr.InvalidInput("order must contain at least one item")
	}
	for i, item := range items {
		if item.ProductID == 0 {
			return apperr.InvalidInput("item %d: product_id is required", i+1)
		}
		if item.Quantity <= 0 {
			return apperr.InvalidInput("item %d: quantity must be greater than 0", i+1)
		}
		if item.SellingPrice != nil && !money.IsPositive(*item.SellingPrice) {
			return apperr.InvalidInput("item %d: selling price must be greater than 0", i+1)
		}
	}
	return nil
}

// reserveItems snapshots each product and reserves its stock. Callers run it inside
// a transaction so that a failure on any line undoes the reservations before it.
func reserveItems(ctx context.Context, catalog ProductCatalog, ledger StockLedger, items []ItemInput) ([]domain.OrderItem, error) {
	lines := make([]domain.OrderItem, 0, len(items))
	for _, item := range items {
		product, err := catalog.FindByID(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}

		price := product.MRP
		if item.SellingPrice != nil {
			price = *item.SellingPrice
		}

		if err := ledger.Reserve(ctx, product.ID, item.Quantity); err != nil {
			return nil, err
		}
		lines = append(lines, domain.NewOrderItem(product.ID, product.Name, product.Barcode, item.Quantity, price))
	}
	return lines, nil
}

func restoreItems(ctx context.Context, ledger StockLedger, items []domain.OrderItem) error {
	for _, item := range items {
		if err := ledger.Restore(ctx, item.ProductID, item.Quantity); err != nil {
			return fmt.Errorf("failed to restore stock for product %d: %w", item.ProductID, err)
		}
	}
	return nil
}
