package market

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	polygonrest "github.com/polygon-io/client-go/rest"
	rmodels "github.com/polygon-io/client-go/rest/models"

	"stockdash/internal/domain"
)

// maxBars caps one aggregates request
const maxBars = 50000

// PolygonSource reads daily or intraday aggregates and ticker details from
// the Polygon REST API
type PolygonSource struct {
	rest *polygonrest.Client
}

// NewPolygonSource creates a source authenticated with apiKey. httpClient
// may be nil, in which case a client with timeout is used.
func NewPolygonSource(apiKey string, httpClient *http.Client, timeout time.Duration) (*PolygonSource, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	log.Printf("Market: polygon source ready (timeout %s)", timeout)
	return &PolygonSource{rest: polygonrest.NewWithClient(apiKey, httpClient)}, nil
}

// Timespan returns the bar size requested for a time frame, chosen so that
// every window yields a few dozen to a few hundred bars
func Timespan(tf domain.TimeFrame) (rmodels.Timespan, int) {
	switch tf {
	case domain.FiveDays:
		return rmodels.Minute, 30
	case domain.OneMonth:
		return rmodels.Hour, 2
	case domain.ThreeMonths, domain.SixMonths, domain.YearToDate, domain.OneYear:
		return rmodels.Day, 1
	case domain.TwoYears, domain.FiveYears:
		return rmodels.Week, 1
	default:
		return rmodels.Month, 1
	}
}

// Fetch loads the bars of q and the company profile. A failed profile
// lookup is logged and leaves Profile nil.
func (p *PolygonSource) Fetch(ctx context.Context, q domain.Query, now time.Time) (*domain.Stock, error) {
	bars, err := p.bars(ctx, q, now)
	if err != nil {
		return nil, err
	}
	stock := &domain.Stock{Symbol: q.Symbol, Bars: bars}

	profile, err := p.profile(ctx, q.Symbol)
	if err != nil {
		log.Printf("Market: profile for %s unavailable: %v", q.Symbol, err)
	} else {
		stock.Profile = profile
	}
	return stock, nil
}

func (p *PolygonSource) bars(ctx context.Context, q domain.Query, now time.Time) ([]domain.Bar, error) {
	from, to := q.Bounds(now)
	timespan, multiplier := Timespan(q.TimeFrame)

	params := &rmodels.ListAggsParams{
		Ticker:     q.Symbol,
		Timespan:   timespan,
		Multiplier: multiplier,
		From:       rmodels.Millis(from),
		To:         rmodels.Millis(to),
	}
	lim := maxBars
	asc := rmodels.Asc
	adj := true
	params.Limit = &lim
	params.Order = &asc
	params.Adjusted = &adj

	iter := p.rest.ListAggs(ctx, params)
	var bars []domain.Bar
	for iter.Next() {
		a := iter.Item()
		bars = append(bars, domain.Bar{
			Time:   time.Time(a.Timestamp),
			Open:   a.Open,
			High:   a.High,
			Low:    a.Low,
			Close:  a.Close,
			Volume: a.Volume,
		})
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to list aggregates for %s: %w", q.Key(), err)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("%w for %s", ErrNoData, q.Key())
	}
	return bars, nil
}

func (p *PolygonSource) profile(ctx context.Context, symbol string) (*domain.Profile, error) {
	res, err := p.rest.GetTickerDetails(ctx, &rmodels.GetTickerDetailsParams{Ticker: symbol})
	if err != nil {
		return nil, fmt.Errorf("failed to get ticker details: %w", err)
	}
	t := res.Results
	return &domain.Profile{
		Name:        t.Name,
		Description: t.Description,
		Exchange:    t.PrimaryExchange,
		Homepage:    t.HomepageURL,
		Employees:   int(t.TotalEmployees),
		MarketCap:   t.MarketCap,
	}, nil
}
