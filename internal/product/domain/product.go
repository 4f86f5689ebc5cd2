package domain

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a catalog item owned by a client
type Product struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	Barcode   string          `json:"barcode" gorm:"not null;size:64;uniqueIndex"`
	ClientID  uint            `json:"client_id" gorm:"not null;index"`
	Name      string          `json:"name" gorm:"not null"`
	MRP       decimal.Decimal `json:"mrp" gorm:"type:decimal(12,2);not null"`
	ImageURL  string          `json:"image_url"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// TableName specifies the table name
func (Product) TableName() string {
	return "products"
}

// NormalizeBarcode trims and lower-cases a barcode
func NormalizeBarcode(barcode string) string {
	return strings.ToLower(strings.TrimSpace(barcode))
}

// ProductFilter narrows product listings
type ProductFilter struct {
	ClientID uint
	Limit    int
	Offset   int
}

// ProductRepository defines the contract for product data access
type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	FindByID(ctx context.Context, id uint) (*Product, error)
	FindByBarcode(ctx context.Context, barcode string) (*Product, error)
	FindAll(ctx context.Context, filter ProductFilter) ([]Product, error)
	Update(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uint) error
	CountByClient(ctx context.Context, clientID uint) (int64, error)
}
