package query_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/pos-backoffice/internal/order/domain"
	"github.com/tair/pos-backoffice/internal/order/repository"
	"github.com/tair/pos-backoffice/internal/order/usecase/query"
	"github.com/tair/pos-backoffice/pkg/apperr"
	"github.com/tair/pos-backoffice/pkg/database/dbtest"
)

func seed(t *testing.T, repo *repository.GormOrderRepository, createdAt time.Time) *domain.Order {
	t.Helper()
	item := domain.NewOrderItem(1, "tea", "tea-1", 2, decimal.RequireFromString("1.25"))
	order := &domain.Order{
		UserID:    1,
		Status:    domain.StatusCreated,
		Total:     domain.ComputeTotal([]domain.OrderItem{item}),
		CreatedAt: createdAt,
		Items:     []domain.OrderItem{item},
	}
	require.NoError(t, repo.Create(context.Background(), order))
	return order
}

func day(d, h int) time.Time {
	return time.Date(2024, 1, d, h, 0, 0, 0, time.UTC)
}

func TestOrdersByDateRange(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewGormOrderRepository(dbtest.Open(t, &domain.Order{}, &domain.OrderItem{}))

	seed(t, repo, day(4, 23))
	inFirst := seed(t, repo, day(5, 0))
	inLast := seed(t, repo, day(10, 23))
	seed(t, repo, day(11, 0))

	h := query.NewOrdersByDateRangeHandler(repo)

	orders, err := h.Handle(ctx, query.OrdersByDateRangeQuery{Start: day(5, 0), End: day(10, 0)})
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, inFirst.ID, orders[0].ID)
	assert.Equal(t, inLast.ID, orders[1].ID)
	require.Len(t, orders[0].Items, 1)
	assert.Equal(t, "2.50", orders[0].Items[0].Amount.StringFixed(2))

	_, err = h.Handle(ctx, query.OrdersByDateRangeQuery{Start: day(10, 0), End: day(5, 0)})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrInvalidRange))
}

func TestGetAndListOrders(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewGormOrderRepository(dbtest.Open(t, &domain.Order{}, &domain.OrderItem{}))

	first := seed(t, repo, day(1, 9))
	second := seed(t, repo, day(2, 9))

	order, err := query.NewGetOrderHandler(repo).Handle(ctx, query.GetOrderQuery{OrderID: first.ID})
	require.NoError(t, err)
	assert.Equal(t, "2.50", order.Total.StringFixed(2))
	require.Len(t, order.Items, 1)
	assert.Equal(t, "tea", order.Items[0].ProductName)

	_, err = query.NewGetOrderHandler(repo).Handle(ctx, query.GetOrderQuery{OrderID: 404})
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	orders, err := query.NewListOrdersHandler(repo).Handle(ctx, query.ListOrdersQuery{Limit: 0, Offset: -1})
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, second.ID, orders[0].ID)
	assert.Len(t, orders[1].Items, 1)
}
