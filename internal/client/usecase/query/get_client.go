package query

import (
	"context"

	"github.com/tair/pos-backoffice/internal/client/domain"
)

// GetClientQuery represents the query to get a client
type GetClientQuery struct {
	ID uint
}

// GetClientHandler handles get client query
type GetClientHandler struct {
	repo domain.ClientRepository
}

// NewGetClientHandler creates a new get client handler
func NewGetClientHandler(repo domain.ClientRepository) *GetClientHandler {
	return &GetClientHandler{repo: repo}
}

// Handle executes the get client query
func (h *GetClientHandler) Handle(ctx context.Context, query GetClientQuery) (*domain.Client, error) {
	return h.repo.FindByID(ctx, query.ID)
}
