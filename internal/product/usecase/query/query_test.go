package query_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/pos-backoffice/internal/product/domain"
	"github.com/tair/pos-backoffice/internal/product/repository"
	"github.com/tair/pos-backoffice/internal/product/usecase/query"
	"github.com/tair/pos-backoffice/pkg/apperr"
	"github.com/tair/pos-backoffice/pkg/database/dbtest"
)

func TestProductQueries(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewGormProductRepository(dbtest.Open(t, &domain.Product{}))

	for i := 0; i < 6; i++ {
		require.NoError(t, repo.Create(ctx, &domain.Product{
			Barcode:  fmt.Sprintf("bc-%d", i),
			ClientID: uint(i%2 + 1),
			Name:     fmt.Sprintf("item %d", i),
			MRP:      decimal.NewFromInt(int64(i + 1)),
		}))
	}

	list := query.NewListProductsHandler(repo)

	all, err := list.Handle(ctx, query.ListProductsQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 6)

	ofClient, err := list.Handle(ctx, query.ListProductsQuery{ClientID: 2})
	require.NoError(t, err)
	assert.Len(t, ofClient, 3)
	for _, p := range ofClient {
		assert.Equal(t, uint(2), p.ClientID)
	}

	count, err := repo.CountByClient(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	get := query.NewGetProductHandler(repo)

	byBarcode, err := get.Handle(ctx, query.GetProductQuery{Barcode: " BC-3 "})
	require.NoError(t, err)
	assert.Equal(t, "item 3", byBarcode.Name)

	_, err = get.Handle(ctx, query.GetProductQuery{})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	_, err = get.Handle(ctx, query.GetProductQuery{ID: 999})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
