package command

import (
	"context"
	"fmt"

	"github.com/tair/pos-backoffice/internal/client/domain"
	"github.com/tair/pos-backoffice/pkg/apperr"
	"github.com/tair/pos-backoffice/pkg/logger"
)

// SetClientActiveCommand toggles a client's active flag
type SetClientActiveCommand struct {
	ID     uint
	Active bool
}

// SetClientActiveHandler handles set client active command
type SetClientActiveHandler struct {
	repo     domain.ClientRepository
	products domain.ProductCounter
}

// NewSetClientActiveHandler creates a new set client active handler
func NewSetClientActiveHandler(repo domain.ClientRepository, products domain.ProductCounter) *SetClientActiveHandler {
	return &SetClientActiveHandler{repo: repo, products: products}
}

// Handle deactivates only clients that own no products; activation is always allowed
func (h *SetClientActiveHandler) Handle(ctx context.Context, cmd SetClientActiveCommand) (*domain.Client, error) {
	client, err := h.repo.FindByID(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}

	if !cmd.Active {
		count, err := h.products.CountByClient(ctx, client.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to count client products: %w", err)
		}
		if count > 0 {
			return nil, apperr.InvalidState("client %d still owns %d products", client.ID, count)
		}
	}

	client.IsActive = cmd.Active
	if err := h.repo.Update(ctx, client); err != nil {
		return nil, err
	}

	logger.Info(ctx).Uint("client_id", client.ID).Bool("active", client.IsActive).Msg("Client status changed")
	return client, nil
}
