package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Inventory is the stock record of exactly one product. ProductName, Barcode and
// MRP are cached copies of the catalog and are refreshed whenever the product is
// updated.
type Inventory struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	ProductID   uint            `json:"product_id" gorm:"not null;uniqueIndex"`
	ProductName string          `json:"product_name" gorm:"not null"`
	Barcode     string          `json:"barcode" gorm:"not null;index"`
	MRP         decimal.Decimal `json:"mrp" gorm:"type:decimal(12,2);not null"`
	Quantity    int             `json:"quantity" gorm:"not null;default:0"`
	Version     int64           `json:"version" gorm:"not null;default:0"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// TableName specifies the table name
func (Inventory) TableName() string {
	return "inventories"
}

// ProductSnapshot holds the catalog fields cached on the inventory record
type ProductSnapshot struct {
	Name    string
	Barcode string
	MRP     decimal.Decimal
}

// InventoryRepository defines the contract for inventory data access
type InventoryRepository interface {
	Create(ctx context.Context, inventory *Inventory) error
	FindByProductID(ctx context.Context, productID uint) (*Inventory, error)
	FindByBarcode(ctx context.Context, barcode string) (*Inventory, error)
	FindAll(ctx context.Context, limit, offset int) ([]Inventory, error)
	// UpdateQuantityIfVersion writes quantity and bumps the version only when the
	// stored version still equals expectedVersion. It reports whether a row changed.
	UpdateQuantityIfVersion(ctx context.Context, id uint, expectedVersion int64, quantity int) (bool, error)
	RefreshProduct(ctx context.Context, productID uint, snapshot ProductSnapshot) error
	DeleteByProductID(ctx context.Context, productID uint) error
}
