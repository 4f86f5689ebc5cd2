package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/tair/pos-backoffice/internal/inventory/domain"
	"github.com/tair/pos-backoffice/pkg/apperr"
	"github.com/tair/pos-backoffice/pkg/database"
)

type GormInventoryRepository struct {
	db *gorm.DB
}

func NewGormInventoryRepository(db *gorm.DB) *GormInventoryRepository {
	return &GormInventoryRepository{db: db}
}

func (r *GormInventoryRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Inventory{})
}

func (r *GormInventoryRepository) Create(ctx context.Context, inventory *domain.Inventory) error {
	err := database.Conn(ctx, r.db).Create(inventory).Error
	if database.IsDuplicateKey(err) {
		return apperr.Conflict("inventory for product %d already exists", inventory.ProductID)
	}
	return err
}

func (r *GormInventoryRepository) FindByProductID(ctx context.Context, productID uint) (*domain.Inventory, error) {
	var inventory domain.Inventory
	err := database.Conn(ctx, r.db).Where("product_id = ?", productID).First(&inventory).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("no inventory for product %d", productID)
	}
	if err != nil {
		return nil, err
	}
	return &inventory, nil
}

func (r *GormInventoryRepository) FindByBarcode(ctx context.Context, barcode string) (*domain.Inventory, error) {
	var inventory domain.Inventory
	err := database.Conn(ctx, r.db).Where("barcode = ?", barcode).First(&inventory).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("no inventory for barcode %q", barcode)
	}
	if err != nil {
		return nil, err
	}
	return &inventory, nil
}

func (r *GormInventoryRepository) FindAll(ctx context.Context, limit, offset int) ([]domain.Inventory, error) {
	var inventories []domain.Inventory
	err := database.Conn(ctx, r.db).Order("id").Limit(limit).Offset(offset).Find(&inventories).Error
	return inventories, err
}

func (r *GormInventoryRepository) UpdateQuantityIfVersion(ctx context.Context, id uint, expectedVersion int64, quantity int) (bool, error) {
	result := database.Conn(ctx, r.db).Model(&domain.Inventory{}).
		Where("id = ? AND version = ?", id, expectedVersion).
		Updates(map[string]interface{}{
			"quantity":   quantity,
			"version":    gorm.Expr("version + 1"),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *GormInventoryRepository) RefreshProduct(ctx context.Context, productID uint, snapshot domain.ProductSnapshot) error {
	result := database.Conn(ctx, r.db).Model(&domain.Inventory{}).
		Where("product_id = ?", productID).
		Updates(map[string]interface{}{
			"product_name": snapshot.Name,
			"barcode":      snapshot.Barcode,
			"mrp":          snapshot.MRP,
			"updated_at":   time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("no inventory for product %d", productID)
	}
	return nil
}

func (r *GormInventoryRepository) DeleteByProductID(ctx context.Context, productID uint) error {
	result := database.Conn(ctx, r.db).Where("product_id = ?", productID).Delete(&domain.Inventory{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("no inventory for product %d", productID)
	}
	return nil
}
