package query_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	invoicedomain "github.com/tair/pos-backoffice/internal/invoice/domain"
	invoicerepo "github.com/tair/pos-backoffice/internal/invoice/repository"
	"github.com/tair/pos-backoffice/internal/report/domain"
	"github.com/tair/pos-backoffice/internal/report/usecase/query"
	"github.com/tair/pos-backoffice/pkg/apperr"
	"github.com/tair/pos-backoffice/pkg/cache"
	"github.com/tair/pos-backoffice/pkg/database/dbtest"
)

// mapCache mimics the Redis cache with JSON round trips
type mapCache struct {
	entries map[string][]byte
	sets    int
}

func (c *mapCache) Key(parts ...string) string {
	return cache.New(nil, "reports", time.Minute).Key(parts...)
}

func (c *mapCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	raw, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *mapCache) Set(_ context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.sets++
	c.entries[key] = raw
	return nil
}

func day(d, h int) time.Time {
	return time.Date(2024, 1, d, h, 0, 0, 0, time.UTC)
}

func TestDaySales(t *testing.T) {
	ctx := context.Background()
	repo := invoicerepo.NewGormInvoiceRepository(dbtest.Open(t, &invoicedomain.Invoice{}, &invoicedomain.InvoiceItem{}))

	seed := []struct {
		created time.Time
		qty     int
		total   string
	}{
		{day(4, 23), 9, "90.00"},
		{day(5, 8), 3, "7.50"},
		{day(5, 17), 1, "2.25"},
		{day(8, 12), 2, "4.00"},
		{day(10, 23), 5, "10.10"},
		{day(11, 0), 1, "1.00"},
	}
	for i, s := range seed {
		require.NoError(t, repo.Create(ctx, &invoicedomain.Invoice{
			Number:        invoicedomain.NewNumber(),
			OrderID:       uint(i + 1),
			Total:         decimal.RequireFromString(s.total),
			TotalQuantity: s.qty,
			CreatedAt:     s.created,
		}))
	}

	c := &mapCache{entries: map[string][]byte{}}
	h := query.NewDaySalesHandler(repo, c)

	days, err := h.Handle(ctx, query.DaySalesQuery{Start: day(5, 0), End: day(10, 0)})
	require.NoError(t, err)
	require.Len(t, days, 3)

	assert.Equal(t, domain.DaySales{Date: "2024-01-05", InvoicedOrders: 2, InvoicedItems: 4}, withoutRevenue(days[0]))
	assert.Equal(t, "9.75", days[0].TotalRevenue.StringFixed(2))
	assert.Equal(t, "2024-01-08", days[1].Date)
	assert.Equal(t, "2024-01-10", days[2].Date)
	assert.Equal(t, "10.10", days[2].TotalRevenue.StringFixed(2))

	cached, err := h.Handle(ctx, query.DaySalesQuery{Start: day(5, 0), End: day(10, 0)})
	require.NoError(t, err)
	assert.Equal(t, 1, c.sets)
	require.Len(t, cached, 3)
	assert.Equal(t, days[0].Date, cached[0].Date)
	assert.Equal(t, days[0].TotalRevenue.StringFixed(2), cached[0].TotalRevenue.StringFixed(2))
}

func TestDaySales_InvalidRange(t *testing.T) {
	repo := invoicerepo.NewGormInvoiceRepository(dbtest.Open(t, &invoicedomain.Invoice{}, &invoicedomain.InvoiceItem{}))
	c := &mapCache{entries: map[string][]byte{}}

	_, err := query.NewDaySalesHandler(repo, c).Handle(context.Background(), query.DaySalesQuery{
		Start: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrInvalidRange))
	assert.Equal(t, 0, c.sets)
}

func TestDaySales_EmptyRangeIsSparse(t *testing.T) {
	repo := invoicerepo.NewGormInvoiceRepository(dbtest.Open(t, &invoicedomain.Invoice{}, &invoicedomain.InvoiceItem{}))

	days, err := query.NewDaySalesHandler(repo, cache.New(nil, "reports", time.Minute)).
		Handle(context.Background(), query.DaySalesQuery{Start: day(1, 0), End: day(31, 0)})
	require.NoError(t, err)
	assert.Empty(t, days)
}

func withoutRevenue(d domain.DaySales) domain.DaySales {
	d.TotalRevenue = decimal.Decimal{}
	return d
}
