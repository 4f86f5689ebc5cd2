package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tair/pos-backoffice/internal/order/domain"
	"github.com/tair/pos-backoffice/pkg/apperr"
	"github.com/tair/pos-backoffice/pkg/database"
)

type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func (r *GormOrderRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Order{}, &domain.OrderItem{})
}

func (r *GormOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	conn := database.Conn(ctx, r.db)
	if err := conn.Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return r.insertItems(conn, order)
}

func (r *GormOrderRepository) insertItems(conn *gorm.DB, order *domain.Order) error {
	if len(order.Items) == 0 {
		return nil
	}
	for i := range order.Items {
		order.Items[i].ID = 0
		order.Items[i].OrderID = order.ID
	}
	if err := conn.Create(&order.Items).Error; err != nil {
		return fmt.Errorf("failed to create order items: %w", err)
	}
	return nil
}

func (r *GormOrderRepository) FindByID(ctx context.Context, id uint) (*domain.Order, error) {
	return r.find(database.Conn(ctx, r.db), id, false)
}

// FindByIDForUpdate locks the order row until the surrounding transaction ends.
// Writers that change the lines or the status of an order go through it first.
func (r *GormOrderRepository) FindByIDForUpdate(ctx context.Context, id uint) (*domain.Order, error) {
	return r.find(database.Conn(ctx, r.db), id, true)
}

func (r *GormOrderRepository) find(conn *gorm.DB, id uint, lock bool) (*domain.Order, error) {
	query := conn
	if lock {
		query = conn.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate})
	}

	var order domain.Order
	err := query.First(&order, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("order %d not found", id)
	}
	if err != nil {
		return nil, err
	}

	if err := conn.Where("order_id = ?", id).Order("id").Find(&order.Items).Error; err != nil {
		return nil, fmt.Errorf("failed to load order items: %w", err)
	}
	return &order, nil
}

func (r *GormOrderRepository) FindAll(ctx context.Context, limit, offset int) ([]domain.Order, error) {
	conn := database.Conn(ctx, r.db)

	var orders []domain.Order
	if err := conn.Order("id DESC").Limit(limit).Offset(offset).Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, r.attachItems(conn, orders)
}

func (r *GormOrderRepository) FindByCreatedRange(ctx context.Context, from, to time.Time) ([]domain.Order, error) {
	conn := database.Conn(ctx, r.db)

	var orders []domain.Order
	err := conn.Where("created_at >= ? AND created_at < ?", from, to).Order("created_at, id").Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, r.attachItems(conn, orders)
}

// attachItems loads the items of all orders with one query
func (r *GormOrderRepository) attachItems(conn *gorm.DB, orders []domain.Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]uint, len(orders))
	index := make(map[uint]int, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
		index[o.ID] = i
	}

	var items []domain.OrderItem
	if err := conn.Where("order_id IN ?", ids).Order("id").Find(&items).Error; err != nil {
		return fmt.Errorf("failed to load order items: %w", err)
	}
	for _, item := range items {
		i := index[item.OrderID]
		orders[i].Items = append(orders[i].Items, item)
	}
	return nil
}

func (r *GormOrderRepository) ReplaceItems(ctx context.Context, order *domain.Order) error {
	conn := database.Conn(ctx, r.db)

	result := conn.Model(&domain.Order{}).
		Where("id = ? AND status = ?", order.ID, domain.StatusCreated).
		Updates(map[string]interface{}{
			"total":      order.Total,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update order: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.InvalidState("order %d is no longer %s", order.ID, domain.StatusCreated)
	}

	if err := conn.Where("order_id = ?", order.ID).Delete(&domain.OrderItem{}).Error; err != nil {
		return fmt.Errorf("failed to delete order items: %w", err)
	}
	return r.insertItems(conn, order)
}

func (r *GormOrderRepository) TransitionStatus(ctx context.Context, id uint, from, to domain.Status) (bool, error) {
	result := database.Conn(ctx, r.db).Model(&domain.Order{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]interface{}{
			"status":     to,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}
