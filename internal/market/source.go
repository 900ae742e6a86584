// Package market loads price bars and company profiles for the dashboard.
package market

import (
	"context"
	"errors"
	"time"

	"stockdash/internal/domain"
)

// Errors returned by sources
var (
	ErrNoAPIKey = errors.New("no market data API key configured")
	ErrNoData   = errors.New("no price data")
)

// Source fetches the stock a query describes. now resolves the query's
// implicit "latest" window.
type Source interface {
	Fetch(ctx context.Context, q domain.Query, now time.Time) (*domain.Stock, error)
}

// Invalidator is implemented by sources that keep results around. A periodic
// refresh invalidates the query before fetching it again.
type Invalidator interface {
	Invalidate(q domain.Query)
}

// Load runs one fetch request against src and packs the answer for the
// graph. Failures are carried in the result, never returned.
func Load(ctx context.Context, src Source, req domain.FetchRequestedEvent, now time.Time) domain.FetchCompletedEvent {
	if req.Refresh {
		if inv, ok := src.(Invalidator); ok {
			inv.Invalidate(req.Query)
		}
	}
	stock, err := src.Fetch(ctx, req.Query, now)
	if err != nil {
		return domain.FetchCompletedEvent{Query: req.Query, Err: err}
	}
	return domain.FetchCompletedEvent{Query: req.Query, Stock: stock}
}
