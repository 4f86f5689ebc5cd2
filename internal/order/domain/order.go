package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tair/pos-backoffice/pkg/money"
)

// Status is the order lifecycle state
type Status string

// Order statuses
const (
	StatusCreated   Status = "CREATED"
	StatusInvoiced  Status = "INVOICED"
	StatusCancelled Status = "CANCELLED"
)

// CanTransitionTo reports whether s may move to next. Only CREATED has outgoing
// transitions; INVOICED and CANCELLED are terminal.
func (s Status) CanTransitionTo(next Status) bool {
	return s == StatusCreated && (next == StatusInvoiced || next == StatusCancelled)
}

// Order is the header row. Items live in their own table keyed by OrderID and are
// loaded by the repository.
type Order struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	UserID    uint            `json:"user_id" gorm:"not null;index"`
	Status    Status          `json:"status" gorm:"type:varchar(16);not null;index"`
	Total     decimal.Decimal `json:"total" gorm:"type:decimal(14,2);not null"`
	CreatedAt time.Time       `json:"created_at" gorm:"index"`
	UpdatedAt time.Time       `json:"updated_at"`
	Items     []OrderItem     `json:"items" gorm:"-"`
}

// TableName specifies the table name
func (Order) TableName() string {
	return "orders"
}

// OrderItem is a line with the product name and barcode captured at order time
type OrderItem struct {
	ID           uint            `json:"id" gorm:"primaryKey"`
	OrderID      uint            `json:"order_id" gorm:"not null;index"`
	ProductID    uint            `json:"product_id" gorm:"not null;index"`
	ProductName  string          `json:"product_name" gorm:"not null"`
	Barcode      string          `json:"barcode" gorm:"not null"`
	Quantity     int             `json:"quantity" gorm:"not null"`
	SellingPrice decimal.Decimal `json:"selling_price" gorm:"type:decimal(12,2);not null"`
	Amount       decimal.Decimal `json:"amount" gorm:"type:decimal(14,2);not null"`
}

// TableName specifies the table name
func (OrderItem) TableName() string {
	return "order_items"
}

// NewOrderItem builds a line with price and amount rounded to cents
func NewOrderItem(productID uint, name, barcode string, quantity int, sellingPrice decimal.Decimal) OrderItem {
	price := money.Round(sellingPrice)
	return OrderItem{
		ProductID:    productID,
		ProductName:  name,
		Barcode:      barcode,
		Quantity:     quantity,
		SellingPrice: price,
		Amount:       money.LineAmount(quantity, price),
	}
}

// ComputeTotal sums the rounded line amounts
func ComputeTotal(items []OrderItem) decimal.Decimal {
	amounts := make([]decimal.Decimal, len(items))
	for i, item := range items {
		amounts[i] = item.Amount
	}
	return money.Sum(amounts...)
}

// OrderRepository defines the contract for order data access
type OrderRepository interface {
	// Create inserts the order and its items
	Create(ctx context.Context, order *Order) error
	FindByID(ctx context.Context, id uint) (*Order, error)
	// FindByIDForUpdate is FindByID holding a row lock on the order until the
	// transaction in ctx ends
	FindByIDForUpdate(ctx context.Context, id uint) (*Order, error)
	FindAll(ctx context.Context, limit, offset int) ([]Order, error)
	// FindByCreatedRange returns orders with from <= created_at < to, items loaded
	FindByCreatedRange(ctx context.Context, from, to time.Time) ([]Order, error)
	// ReplaceItems swaps the item rows and total of a CREATED order. It returns
	// InvalidState when the order is no longer CREATED.
	ReplaceItems(ctx context.Context, order *Order) error
	// TransitionStatus moves the order from one status to another only when it is
	// still in from. It reports whether the row changed.
	TransitionStatus(ctx context.Context, id uint, from, to Status) (bool, error)
}
