package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/tair/pos-backoffice/internal/invoice/domain"
	"github.com/tair/pos-backoffice/pkg/apperr"
	"github.com/tair/pos-backoffice/pkg/database"
)

type GormInvoiceRepository struct {
	db *gorm.DB
}

func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

func (r *GormInvoiceRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Invoice{}, &domain.InvoiceItem{})
}

func (r *GormInvoiceRepository) Create(ctx context.Context, invoice *domain.Invoice) error {
	conn := database.Conn(ctx, r.db)

	if err := conn.Create(invoice).Error; err != nil {
		if database.IsDuplicateKey(err) {
			return apperr.Wrap(apperr.KindConflict, err, "invoice for order %d already exists", invoice.OrderID)
		}
		return fmt.Errorf("failed to create invoice: %w", err)
	}

	if len(invoice.Items) == 0 {
		return nil
	}
	for i := range invoice.Items {
		invoice.Items[i].InvoiceID = invoice.ID
	}
	if err := conn.Create(&invoice.Items).Error; err != nil {
		return fmt.Errorf("failed to create invoice items: %w", err)
	}
	return nil
}

func (r *GormInvoiceRepository) FindByOrderID(ctx context.Context, orderID uint) (*domain.Invoice, error) {
	conn := database.Conn(ctx, r.db)

	var invoice domain.Invoice
	err := conn.Where("order_id = ?", orderID).First(&invoice).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("no invoice for order %d", orderID)
	}
	if err != nil {
		return nil, err
	}

	if err := conn.Where("invoice_id = ?", invoice.ID).Order("id").Find(&invoice.Items).Error; err != nil {
		return nil, fmt.Errorf("failed to load invoice items: %w", err)
	}
	return &invoice, nil
}

func (r *GormInvoiceRepository) FindByCreatedRange(ctx context.Context, from, to time.Time) ([]domain.Invoice, error) {
	var invoices []domain.Invoice
	err := database.Conn(ctx, r.db).
		Where("created_at >= ? AND created_at < ?", from, to).
		Order("created_at, id").
		Find(&invoices).Error
	return invoices, err
}

func (r *GormInvoiceRepository) SetDocumentKey(ctx context.Context, id uint, key string) error {
	result := database.Conn(ctx, r.db).Model(&domain.Invoice{}).Where("id = ?", id).Update("document_key", key)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("invoice %d not found", id)
	}
	return nil
}
