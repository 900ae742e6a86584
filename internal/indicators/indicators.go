// Package indicators computes the technical overlays drawn on the price chart.
//
// Every function returns series aligned with its input: position i of a
// result belongs to closes[i]. Positions before the first full window are NaN.
package indicators

import (
	"math"

	"stockdash/internal/domain"
)

// Default parameters used by the indicator menu labels
const (
	Period = 20
	Width  = 2.0
)

// Series is one named line of an indicator
type Series struct {
	Name   string
	Values []float64
}

// SMA is the simple moving average over period closes
func SMA(closes []float64, period int) []float64 {
	out := nans(len(closes))
	if period <= 0 || len(closes) < period {
		return out
	}
	var sum float64
	for i, c := range closes {
		sum += c
		if i >= period {
			sum -= closes[i-period]
		}
		if i >= period-1 {
			out[i] = sum / float64(period)
		}
	}
	return out
}

// EMA is the exponential moving average, seeded with the SMA of the first
// period closes
func EMA(closes []float64, period int) []float64 {
	out := nans(len(closes))
	if period <= 0 || len(closes) < period {
		return out
	}
	k := 2 / float64(period+1)
	var seed float64
	for _, c := range closes[:period] {
		seed += c
	}
	prev := seed / float64(period)
	out[period-1] = prev
	for i := period; i < len(closes); i++ {
		prev = closes[i]*k + prev*(1-k)
		out[i] = prev
	}
	return out
}

// Bollinger returns the middle band (SMA) and the bands width population
// standard deviations above and below it
func Bollinger(closes []float64, period int, width float64) (mid, upper, lower []float64) {
	mid = SMA(closes, period)
	upper, lower = nans(len(closes)), nans(len(closes))
	for i := period - 1; i < len(closes) && period > 0; i++ {
		if math.IsNaN(mid[i]) {
			continue
		}
		var sq float64
		for _, c := range closes[i-period+1 : i+1] {
			d := c - mid[i]
			sq += d * d
		}
		sd := math.Sqrt(sq / float64(period))
		upper[i] = mid[i] + width*sd
		lower[i] = mid[i] - width*sd
	}
	return mid, upper, lower
}

// Compute returns the lines of ind over the bars' closing prices
func Compute(ind domain.Indicator, bars []domain.Bar) []Series {
	closes := Closes(bars)
	switch ind {
	case domain.SMA:
		return []Series{{Name: ind.Label(), Values: SMA(closes, Period)}}
	case domain.EMA:
		return []Series{{Name: ind.Label(), Values: EMA(closes, Period)}}
	case domain.Bollinger:
		mid, upper, lower := Bollinger(closes, Period, Width)
		return []Series{
			{Name: "upper", Values: upper},
			{Name: "mid", Values: mid},
			{Name: "lower", Values: lower},
		}
	}
	return nil
}

// Closes extracts the closing prices
func Closes(bars []domain.Bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Close
	}
	return out
}

func nans(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}
