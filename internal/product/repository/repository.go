package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/tair/pos-backoffice/internal/product/domain"
	"github.com/tair/pos-backoffice/pkg/apperr"
	"github.com/tair/pos-backoffice/pkg/database"
)

type GormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Product{})
}

func (r *GormProductRepository) Create(ctx context.Context, product *domain.Product) error {
	err := database.Conn(ctx, r.db).Create(product).Error
	if database.IsDuplicateKey(err) {
		return apperr.Conflict("barcode %q already exists", product.Barcode)
	}
	return err
}

func (r *GormProductRepository) FindByID(ctx context.Context, id uint) (*domain.Product, error) {
	var product domain.Product
	err := database.Conn(ctx, r.db).First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("product %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormProductRepository) FindByBarcode(ctx context.Context, barcode string) (*domain.Product, error) {
	var product domain.Product
	err := database.Conn(ctx, r.db).Where("barcode = ?", barcode).First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("product with barcode %q not found", barcode)
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormProductRepository) FindAll(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	var products []domain.Product
	q := database.Conn(ctx, r.db).Order("id")
	if filter.ClientID != 0 {
		q = q.Where("client_id = ?", filter.ClientID)
	}
	err := q.Limit(filter.Limit).Offset(filter.Offset).Find(&products).Error
	return products, err
}

func (r *GormProductRepository) Update(ctx context.Context, product *domain.Product) error {
	err := database.Conn(ctx, r.db).Save(product).Error
	if database.IsDuplicateKey(err) {
		return apperr.Conflict("barcode %q already exists", product.Barcode)
	}
	return err
}

func (r *GormProductRepository) Delete(ctx context.Context, id uint) error {
	result := database.Conn(ctx, r.db).Delete(&domain.Product{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("product %d not found", id)
	}
	return nil
}

func (r *GormProductRepository) CountByClient(ctx context.Context, clientID uint) (int64, error) {
	var count int64
	err := database.Conn(ctx, r.db).Model(&domain.Product{}).Where("client_id = ?", clientID).Count(&count).Error
	return count, err
}
