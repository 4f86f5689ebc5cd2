package query

import (
	"context"
	"fmt"
	"time"

	"github.com/tair/pos-backoffice/internal/report/domain"
	"github.com/tair/pos-backoffice/pkg/daterange"
	"github.com/tair/pos-backoffice/pkg/logger"
)

// ReportCache stores computed reports by key
type ReportCache interface {
	Key(parts ...string) string
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}) error
}

// DaySalesQuery covers the UTC days Start..End inclusive
type DaySalesQuery struct {
	Start time.Time
	End   time.Time
}

// DaySalesHandler handles the day sales report query
type DaySalesHandler struct {
	invoices domain.InvoiceSource
	cache    ReportCache
}

// NewDaySalesHandler creates a new day sales handler
func NewDaySalesHandler(invoices domain.InvoiceSource, cache ReportCache) *DaySalesHandler {
	return &DaySalesHandler{invoices: invoices, cache: cache}
}

// Handle fails with InvalidRange when End is before Start. Cache errors only
// cost a recomputation.
func (h *DaySalesHandler) Handle(ctx context.Context, query DaySalesQuery) ([]domain.DaySales, error) {
	from, to, err := daterange.Bounds(query.Start, query.End)
	if err != nil {
		return nil, err
	}

	key := h.cache.Key("day-sales", from.Format(domain.DateLayout), to.Format(domain.DateLayout))

	var cached []domain.DaySales
	found, err := h.cache.Get(ctx, key, &cached)
	if err != nil {
		logger.Warn(ctx).Err(err).Str("cache_key", key).Msg("Failed to read report cache")
	}
	if found {
		return cached, nil
	}

	invoices, err := h.invoices.FindByCreatedRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load invoices: %w", err)
	}
	days := domain.Aggregate(invoices)

	if err := h.cache.Set(ctx, key, days); err != nil {
		logger.Warn(ctx).Err(err).Str("cache_key", key).Msg("Failed to write report cache")
	}
	return days, nil
}
