package command

import (
	"context"

	"github.com/tair/pos-backoffice/internal/client/domain"
	"github.com/tair/pos-backoffice/pkg/apperr"
)

// UpdateClientCommand represents the command to rename a client
type UpdateClientCommand struct {
	ID   uint
	Name string
}

// UpdateClientHandler handles update client command
type UpdateClientHandler struct {
	repo domain.ClientRepository
}

// NewUpdateClientHandler creates a new update client handler
func NewUpdateClientHandler(repo domain.ClientRepository) *UpdateClientHandler {
	return &UpdateClientHandler{repo: repo}
}

// Handle executes the update client command
func (h *UpdateClientHandler) Handle(ctx context.Context, cmd UpdateClientCommand) (*domain.Client, error) {
	name := domain.NormalizeName(cmd.Name)
	if name == "" {
		return nil, apperr.InvalidInput("client name is required")
	}

	client, err := h.repo.FindByID(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}

	if err := ensureNameFree(ctx, h.repo, name, client.ID); err != nil {
		return nil, err
	}

	client.Name = name
	if err := h.repo.Update(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}
