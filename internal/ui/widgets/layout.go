package widgets

import "stockdash/internal/domain"

// MenuLayout is the geometry of a rendered select menu: a frame of Border
// cells around one line per row. The renderer sizes the popup with it and
// the reducer maps clicks back to rows with it, so the two cannot drift.
type MenuLayout struct {
	Border int
}

// DefaultMenuLayout matches the single-line rounded border the views draw
var DefaultMenuLayout = MenuLayout{Border: 1}

// Height is the number of lines the menu occupies
func (l MenuLayout) Height(rows int) int {
	return rows + 2*l.Border
}

// Width is the number of cells the menu occupies for a widest label of w
func (l MenuLayout) Width(w int) int {
	return w + 2*l.Border
}

// RowY is the screen line row r is drawn on
func (l MenuLayout) RowY(area domain.Rect, r int) int {
	return area.Y + l.Border + r
}

// RowIndex maps screen line y inside area to a row, clamped to [0, rows-1].
// Clicks on the frame land on the nearest row.
func (l MenuLayout) RowIndex(area domain.Rect, y, rows int) int {
	return clamp(y-area.Y-l.Border, 0, rows-1)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
