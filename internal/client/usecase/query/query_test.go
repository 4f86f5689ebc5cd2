package query_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/pos-backoffice/internal/client/domain"
	"github.com/tair/pos-backoffice/internal/client/repository"
	"github.com/tair/pos-backoffice/internal/client/usecase/query"
	"github.com/tair/pos-backoffice/pkg/apperr"
	"github.com/tair/pos-backoffice/pkg/database/dbtest"
)

func TestListAndGetClients(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewGormClientRepository(dbtest.Open(t, &domain.Client{}))
	for i := 0; i < 15; i++ {
		require.NoError(t, repo.Create(ctx, &domain.Client{Name: fmt.Sprintf("client-%02d", i), IsActive: true}))
	}

	list := query.NewListClientsHandler(repo)

	firstPage, err := list.Handle(ctx, query.ListClientsQuery{})
	require.NoError(t, err)
	assert.Len(t, firstPage, 10)

	rest, err := list.Handle(ctx, query.ListClientsQuery{Limit: 10, Offset: 10})
	require.NoError(t, err)
	assert.Len(t, rest, 5)

	get := query.NewGetClientHandler(repo)
	c, err := get.Handle(ctx, query.GetClientQuery{ID: firstPage[0].ID})
	require.NoError(t, err)
	assert.Equal(t, "client-00", c.Name)

	_, err = get.Handle(ctx, query.GetClientQuery{ID: 4242})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
