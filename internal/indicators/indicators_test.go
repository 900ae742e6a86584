package indicators

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockdash/internal/domain"
)

func TestSMA(t *testing.T) {
	got := SMA([]float64{1, 2, 3, 4, 5}, 3)
	require.Len(t, got, 5)
	assert.True(t, math.IsNaN(got[0]))
	assert.True(t, math.IsNaN(got[1]))
	assert.InDelta(t, 2.0, got[2], 1e-9)
	assert.InDelta(t, 3.0, got[3], 1e-9)
	assert.InDelta(t, 4.0, got[4], 1e-9)
}

func TestSMAShortInput(t *testing.T) {
	got := SMA([]float64{1, 2}, 3)
	require.Len(t, got, 2)
	for _, v := range got {
		assert.True(t, math.IsNaN(v))
	}
}

func TestEMASeededWithSMA(t *testing.T) {
	got := EMA([]float64{2, 4, 6, 8}, 3)
	assert.True(t, math.IsNaN(got[1]))
	assert.InDelta(t, 4.0, got[2], 1e-9)
	// k = 0.5
	assert.InDelta(t, 6.0, got[3], 1e-9)
}

func TestBollingerBandsAreSymmetric(t *testing.T) {
	closes := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	mid, upper, lower := Bollinger(closes, 8, 2)

	assert.InDelta(t, 5.0, mid[7], 1e-9)
	assert.InDelta(t, 9.0, upper[7], 1e-9, "population sd of the window is 2")
	assert.InDelta(t, 1.0, lower[7], 1e-9)
	assert.True(t, math.IsNaN(upper[6]))
}

func TestBollingerFlatPrices(t *testing.T) {
	mid, upper, lower := Bollinger([]float64{3, 3, 3}, 2, 2)
	assert.Equal(t, mid[2], upper[2])
	assert.Equal(t, mid[2], lower[2])
}

func TestCompute(t *testing.T) {
	bars := make([]domain.Bar, 30)
	for i := range bars {
		bars[i].Close = float64(i)
	}

	tests := []struct {
		ind   domain.Indicator
		lines int
	}{
		{domain.SMA, 1},
		{domain.EMA, 1},
		{domain.Bollinger, 3},
	}
	for _, tt := range tests {
		t.Run(tt.ind.String(), func(t *testing.T) {
			got := Compute(tt.ind, bars)
			require.Len(t, got, tt.lines)
			for _, s := range got {
				assert.Len(t, s.Values, len(bars))
				assert.False(t, math.IsNaN(s.Values[len(bars)-1]))
			}
		})
	}
}
