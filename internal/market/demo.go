package market

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"math/rand/v2"
	"time"

	rmodels "github.com/polygon-io/client-go/rest/models"

	"stockdash/internal/domain"
)

// DemoSource makes up prices, so the dashboard runs without an API key.
// The price at a given instant depends only on the symbol and the instant,
// so paging and refreshing show consistent data.
type DemoSource struct{}

// NewDemoSource creates a generated-price source
func NewDemoSource() *DemoSource {
	return &DemoSource{}
}

// demoMaxBars keeps the oldest windows from generating thousands of bars
const demoMaxBars = 2000

// Fetch generates the bars of q. Symbols starting with "ZZ" have no data.
func (d *DemoSource) Fetch(ctx context.Context, q domain.Query, now time.Time) (*domain.Stock, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(q.Symbol) >= 2 && q.Symbol[:2] == "ZZ" {
		return nil, fmt.Errorf("%w for %s", ErrNoData, q.Key())
	}

	from, to := q.Bounds(now)
	step := barStep(q.TimeFrame)
	start := from.Truncate(step)
	if start.Before(from) {
		start = start.Add(step)
	}
	if n := int(to.Sub(start) / step); n > demoMaxBars {
		start = start.Add(time.Duration(n-demoMaxBars) * step)
	}

	seed := symbolSeed(q.Symbol)
	var bars []domain.Bar
	for t := start; !t.After(to); t = t.Add(step) {
		prev, last := demoPrice(seed, t.Add(-step)), demoPrice(seed, t)
		r := rand.New(rand.NewPCG(seed, uint64(t.Unix())))
		bars = append(bars, domain.Bar{
			Time:   t,
			Open:   prev,
			High:   math.Max(prev, last) * (1 + 0.01*r.Float64()),
			Low:    math.Min(prev, last) * (1 - 0.01*r.Float64()),
			Close:  last,
			Volume: math.Round(1e6 * (0.5 + r.Float64())),
		})
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("%w for %s", ErrNoData, q.Key())
	}

	return &domain.Stock{
		Symbol: q.Symbol,
		Bars:   bars,
		Profile: &domain.Profile{
			Name:        q.Symbol + " Demo Corp.",
			Description: "Generated prices. Set the market data API key to see real quotes.",
			Exchange:    "DEMO",
		},
	}, nil
}

func barStep(tf domain.TimeFrame) time.Duration {
	span, mult := Timespan(tf)
	unit := 30 * 24 * time.Hour
	switch span {
	case rmodels.Minute:
		unit = time.Minute
	case rmodels.Hour:
		unit = time.Hour
	case rmodels.Day:
		unit = 24 * time.Hour
	case rmodels.Week:
		unit = 7 * 24 * time.Hour
	}
	return time.Duration(mult) * unit
}

func symbolSeed(symbol string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(symbol))
	return h.Sum64()
}

// demoPrice is a slow wave plus a faster one plus a little noise around a
// base price picked by the symbol
func demoPrice(seed uint64, t time.Time) float64 {
	base := 20 + float64(seed%480)
	phase := float64(seed%1000) / 1000 * 2 * math.Pi
	days := float64(t.Unix()) / 86400

	r := rand.New(rand.NewPCG(seed^0x9e3779b97f4a7c15, uint64(t.Unix())))
	wave := 0.25*math.Sin(days/97+phase) + 0.08*math.Sin(days/11+2*phase)
	noise := 0.02 * (r.Float64() - 0.5)
	return math.Round(base*(1+wave+noise)*100) / 100
}
