package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	invoicedomain "github.com/tair/pos-backoffice/internal/invoice/domain"
)

func TestAggregate(t *testing.T) {
	at := func(day, hour int) time.Time { return time.Date(2024, 1, day, hour, 0, 0, 0, time.UTC) }
	invoices := []invoicedomain.Invoice{
		{OrderID: 3, CreatedAt: at(7, 10), TotalQuantity: 1, Total: decimal.RequireFromString("0.10")},
		{OrderID: 1, CreatedAt: at(5, 9), TotalQuantity: 3, Total: decimal.RequireFromString("7.50")},
		{OrderID: 2, CreatedAt: at(5, 23), TotalQuantity: 2, Total: decimal.RequireFromString("2.25")},
		{OrderID: 4, CreatedAt: at(7, 11), TotalQuantity: 4, Total: decimal.RequireFromString("0.20")},
	}

	days := Aggregate(invoices)

	require.Len(t, days, 2)
	assert.Equal(t, "2024-01-05", days[0].Date)
	assert.Equal(t, 2, days[0].InvoicedOrders)
	assert.Equal(t, 5, days[0].InvoicedItems)
	assert.Equal(t, "9.75", days[0].TotalRevenue.StringFixed(2))

	assert.Equal(t, "2024-01-07", days[1].Date)
	assert.Equal(t, 2, days[1].InvoicedOrders)
	assert.Equal(t, 5, days[1].InvoicedItems)
	assert.Equal(t, "0.30", days[1].TotalRevenue.StringFixed(2))
}

func TestAggregate_Empty(t *testing.T) {
	assert.Empty(t, Aggregate(nil))
}
