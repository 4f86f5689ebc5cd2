package domain

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	orderdomain "github.com/tair/pos-backoffice/internal/order/domain"
	"github.com/tair/pos-backoffice/pkg/money"
)

// Invoice is an immutable snapshot of an order taken at invoicing time.
// DocumentKey is the object store key of the rendered document, empty until rendered.
type Invoice struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	Number        string          `json:"number" gorm:"size:32;not null;uniqueIndex"`
	OrderID       uint            `json:"order_id" gorm:"not null;uniqueIndex"`
	Total         decimal.Decimal `json:"total" gorm:"type:decimal(14,2);not null"`
	TotalQuantity int             `json:"total_quantity" gorm:"not null"`
	DocumentKey   string          `json:"document_key,omitempty"`
	CreatedAt     time.Time       `json:"created_at" gorm:"index"`
	Items         []InvoiceItem   `json:"items" gorm:"-"`
}

// TableName specifies the table name
func (Invoice) TableName() string {
	return "invoices"
}

// InvoiceItem copies an order line; it never references the live product
type InvoiceItem struct {
	ID           uint            `json:"id" gorm:"primaryKey"`
	InvoiceID    uint            `json:"invoice_id" gorm:"not null;index"`
	ProductID    uint            `json:"product_id" gorm:"not null"`
	ProductName  string          `json:"product_name" gorm:"not null"`
	Barcode      string          `json:"barcode" gorm:"not null"`
	Quantity     int             `json:"quantity" gorm:"not null"`
	SellingPrice decimal.Decimal `json:"selling_price" gorm:"type:decimal(12,2);not null"`
	Amount       decimal.Decimal `json:"amount" gorm:"type:decimal(14,2);not null"`
}

// TableName specifies the table name
func (InvoiceItem) TableName() string {
	return "invoice_items"
}

// NewNumber returns a fresh invoice number of the form INV-1A2B3C4D
func NewNumber() string {
	return "INV-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

// Snapshot builds an unsaved invoice from the order's current lines.
// Total and TotalQuantity are computed from the copied lines.
func Snapshot(order *orderdomain.Order) *Invoice {
	items := make([]InvoiceItem, len(order.Items))
	amounts := make([]decimal.Decimal, len(order.Items))
	quantity := 0

	for i, line := range order.Items {
		items[i] = InvoiceItem{
			ProductID:    line.ProductID,
			ProductName:  line.ProductName,
			Barcode:      line.Barcode,
			Quantity:     line.Quantity,
			SellingPrice: line.SellingPrice,
			Amount:       line.Amount,
		}
		amounts[i] = line.Amount
		quantity += line.Quantity
	}

	return &Invoice{
		Number:        NewNumber(),
		OrderID:       order.ID,
		Total:         money.Sum(amounts...),
		TotalQuantity: quantity,
		Items:         items,
	}
}

// InvoiceRepository defines the contract for invoice data access
type InvoiceRepository interface {
	// Create inserts the invoice and its items. A second invoice for the same
	// order fails with Conflict.
	Create(ctx context.Context, invoice *Invoice) error
	// FindByOrderID returns the invoice with its items
	FindByOrderID(ctx context.Context, orderID uint) (*Invoice, error)
	// FindByCreatedRange returns invoice headers with from <= created_at < to; items are not loaded
	FindByCreatedRange(ctx context.Context, from, to time.Time) ([]Invoice, error)
	SetDocumentKey(ctx context.Context, id uint, key string) error
}
