package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/tair/pos-backoffice/internal/client/domain"
	"github.com/tair/pos-backoffice/pkg/apperr"
	"github.com/tair/pos-backoffice/pkg/database"
)

type GormClientRepository struct {
	db *gorm.DB
}

func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{db: db}
}

func (r *GormClientRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Client{})
}

func (r *GormClientRepository) Create(ctx context.Context, client *domain.Client) error {
	if err := database.Conn(ctx, r.db).Create(client).Error; err != nil {
		if database.IsDuplicateKey(err) {
			return apperr.Conflict("client %q already exists", client.Name)
		}
		return err
	}
	return nil
}

func (r *GormClientRepository) FindByID(ctx context.Context, id uint) (*domain.Client, error) {
	var client domain.Client
	err := database.Conn(ctx, r.db).First(&client, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("client %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *GormClientRepository) FindByName(ctx context.Context, name string) (*domain.Client, error) {
	var client domain.Client
	err := database.Conn(ctx, r.db).Where("name = ?", name).First(&client).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("client %q not found", name)
	}
	if err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *GormClientRepository) FindAll(ctx context.Context, limit, offset int) ([]domain.Client, error) {
	var clients []domain.Client
	err := database.Conn(ctx, r.db).Order("id").Limit(limit).Offset(offset).Find(&clients).Error
	return clients, err
}

func (r *GormClientRepository) Update(ctx context.Context, client *domain.Client) error {
	err := database.Conn(ctx, r.db).Save(client).Error
	if database.IsDuplicateKey(err) {
		return apperr.Conflict("client %q already exists", client.Name)
	}
	if err != nil {
		return fmt.Errorf("failed to update client: %w", err)
	}
	return nil
}
