package query

import (
	"context"
	"fmt"

	"github.com/tair/pos-backoffice/internal/client/domain"
)

// ListClientsQuery represents the query to list clients
type ListClientsQuery struct {
	Limit  int
	Offset int
}

// ListClientsHandler handles list clients query
type ListClientsHandler struct {
	repo domain.ClientRepository
}

// NewListClientsHandler creates a new list clients handler
func NewListClientsHandler(repo domain.ClientRepository) *ListClientsHandler {
	return &ListClientsHandler{repo: repo}
}

// Handle executes the list clients query
func (h *ListClientsHandler) Handle(ctx context.Context, query ListClientsQuery) ([]domain.Client, error) {
	if query.Limit <= 0 {
		query.Limit = 10
	}
	if query.Limit > 100 {
		query.Limit = 100
	}
	if query.Offset < 0 {
		query.Offset = 0
	}

	clients, err := h.repo.FindAll(ctx, query.Limit, query.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	return clients, nil
}
