package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/tair/pos-backoffice/internal/client/domain"
	"github.com/tair/pos-backoffice/pkg/apperr"
	"github.com/tair/pos-backoffice/pkg/logger"
)

// CreateClientCommand represents the command to create a client
type CreateClientCommand struct {
	Name string
}

// CreateClientHandler handles create client command
type CreateClientHandler struct {
	repo domain.ClientRepository
}

// NewCreateClientHandler creates a new create client handler
func NewCreateClientHandler(repo domain.ClientRepository) *CreateClientHandler {
	return &CreateClientHandler{repo: repo}
}

// Handle executes the create client command
func (h *CreateClientHandler) Handle(ctx context.Context, cmd CreateClientCommand) (*domain.Client, error) {
	name := domain.NormalizeName(cmd.Name)
	if name == "" {
		return nil, apperr.InvalidInput("client name is required")
	}

	if err := ensureNameFree(ctx, h.repo, name, 0); err != nil {
		return nil, err
	}

	client := &domain.Client{Name: name, IsActive: true}
	if err := h.repo.Create(ctx, client); err != nil {
		return nil, err
	}

	logger.Info(ctx).Uint("client_id", client.ID).Str("name", client.Name).Msg("Client created")
	return client, nil
}

// ensureNameFree fails with Conflict when another client already uses name
func ensureNameFree(ctx context.Context, repo domain.ClientRepository, name string, selfID uint) error {
	existing, err := repo.FindByName(ctx, name)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to check client name: %w", err)
	}
	if existing.ID != selfID {
		return apperr.Conflict("client %q already exists", name)
	}
	return nil
}
