package domain

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	invoicedomain "github.com/tair/pos-backoffice/internal/invoice/domain"
	"github.com/tair/pos-backoffice/pkg/daterange"
	"github.com/tair/pos-backoffice/pkg/money"
)

// DateLayout formats DaySales.Date
const DateLayout = "2006-01-02"

// DaySales summarises the invoices created on one UTC calendar day.
// It is derived data and can always be rebuilt from the invoices.
type DaySales struct {
	Date           string          `json:"date"`
	InvoicedOrders int             `json:"invoiced_orders"`
	InvoicedItems  int             `json:"invoiced_items"`
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
}

// InvoiceSource reads invoice headers by creation time
type InvoiceSource interface {
	FindByCreatedRange(ctx context.Context, from, to time.Time) ([]invoicedomain.Invoice, error)
}

// Aggregate groups invoices per day in ascending date order. Days without
// invoices are absent from the result.
func Aggregate(invoices []invoicedomain.Invoice) []DaySales {
	byDay := make(map[string]*DaySales)
	for _, inv := range invoices {
		key := daterange.Day(inv.CreatedAt).Format(DateLayout)
		day, ok := byDay[key]
		if !ok {
			day = &DaySales{Date: key, TotalRevenue: decimal.Zero}
			byDay[key] = day
		}
		day.InvoicedOrders++
		day.InvoicedItems += inv.TotalQuantity
		day.TotalRevenue = day.TotalRevenue.Add(inv.Total)
	}

	result := make([]DaySales, 0, len(byDay))
	for _, day := range byDay {
		day.TotalRevenue = money.Round(day.TotalRevenue)
		result = append(result, *day)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date < result[j].Date })
	return result
}
