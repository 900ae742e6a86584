package views

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Line is one series drawn on the chart. NaN values leave a gap.
type Line struct {
	Values []float64
	Style  lipgloss.Style
}

// Bounds returns the floor of the lowest and the ceiling of the highest
// finite value across lines. ok is false when there is nothing to draw.
func Bounds(lines ...Line) (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, l := range lines {
		for _, v := range l.Values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if math.IsInf(lo, 1) {
		return 0, 0, false
	}
	return math.Floor(lo), math.Ceil(hi), true
}

// brailleGrid is a width x height cell canvas with 2x4 dots per cell
type brailleGrid struct {
	w, h  int
	dots  [][]uint8
	owner [][]int // index of the last line that set a dot in the cell, -1 if none
}

func newBrailleGrid(w, h int) *brailleGrid {
	g := &brailleGrid{w: w, h: h, dots: make([][]uint8, h), owner: make([][]int, h)}
	for r := range g.dots {
		g.dots[r] = make([]uint8, w)
		g.owner[r] = make([]int, w)
		for c := range g.owner[r] {
			g.owner[r][c] = -1
		}
	}
	return g
}

// brailleBit returns the dot bit at column offX (0-1) and row offY (0-3)
// of a cell, following the Unicode braille dot numbering
func brailleBit(offX, offY int) uint8 {
	left := [4]uint8{0x01, 0x02, 0x04, 0x40}
	right := [4]uint8{0x08, 0x10, 0x20, 0x80}
	if offX == 0 {
		return left[offY]
	}
	return right[offY]
}

func (g *brailleGrid) set(x, y, line int) {
	if x < 0 || y < 0 || x >= g.w*2 || y >= g.h*4 {
		return
	}
	r, c := y/4, x/2
	g.dots[r][c] |= brailleBit(x%2, y%4)
	g.owner[r][c] = line
}

// segment draws a straight run of dots between two dot positions
func (g *brailleGrid) segment(x0, y0, x1, y1, line int) {
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := sign(x1-x0), sign(y1-y0)
	err := dx + dy
	for {
		g.set(x0, y0, line)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// Plot draws lines into a width x height braille canvas scaled to [lo, hi].
// Values are spread evenly across the width by index; later lines draw over
// earlier ones.
func Plot(width, height int, lo, hi float64, lines ...Line) []string {
	if width <= 0 || height <= 0 {
		return nil
	}
	g := newBrailleGrid(width, height)
	dotsW, dotsH := width*2, height*4

	for li, l := range lines {
		n := len(l.Values)
		prevX, prevY, havePrev := 0, 0, false
		for i, v := range l.Values {
			if math.IsNaN(v) {
				havePrev = false
				continue
			}
			x := dotsW / 2
			if n > 1 {
				x = i * (dotsW - 1) / (n - 1)
			}
			y := dotsH / 2
			if hi > lo {
				frac := (v - lo) / (hi - lo)
				frac = math.Max(0, math.Min(1, frac))
				y = int(math.Round((1 - frac) * float64(dotsH-1)))
			}
			if havePrev {
				g.segment(prevX, prevY, x, y, li)
			} else {
				g.set(x, y, li)
			}
			prevX, prevY, havePrev = x, y, true
		}
	}

	out := make([]string, height)
	for r := 0; r < height; r++ {
		var sb strings.Builder
		for c := 0; c < width; c++ {
			ch := string(rune(0x2800 + int(g.dots[r][c])))
			if li := g.owner[r][c]; li >= 0 {
				sb.WriteString(lines[li].Style.Render(ch))
			} else {
				sb.WriteString(ch)
			}
		}
		out[r] = sb.String()
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
