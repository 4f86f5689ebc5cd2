package domain

import (
	"context"
	"strings"
	"time"
)

// Client is a supplier or brand that owns products
type Client struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null;size:255;uniqueIndex"`
	IsActive  bool      `json:"is_active" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (Client) TableName() string {
	return "clients"
}

// NormalizeName trims and lower-cases a client name; uniqueness is checked on the result
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ClientRepository defines the contract for client data access
type ClientRepository interface {
	Create(ctx context.Context, client *Client) error
	FindByID(ctx context.Context, id uint) (*Client, error)
	FindByName(ctx context.Context, name string) (*Client, error)
	FindAll(ctx context.Context, limit, offset int) ([]Client, error)
	Update(ctx context.Context, client *Client) error
}

// ProductCounter reports how many products a client owns
type ProductCounter interface {
	CountByClient(ctx context.Context, clientID uint) (int64, error)
}
