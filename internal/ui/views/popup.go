package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"stockdash/internal/domain"
	"stockdash/internal/ui/widgets"
)

// PopupRenderer handles popup/modal rendering
type PopupRenderer struct {
	styles *Styles
}

// NewPopupRenderer creates a new popup renderer
func NewPopupRenderer(styles *Styles) *PopupRenderer {
	return &PopupRenderer{styles: styles}
}

const minFieldWidth = 10

// TextField renders the symbol input box with the cursor drawn in place
func (pr *PopupRenderer) TextField(s widgets.FieldState) string {
	runes := []rune(s.Value)
	var sb strings.Builder
	for i, r := range runes {
		if i == s.Cursor {
			sb.WriteString(pr.styles.Cursor.Render(string(r)))
		} else {
			sb.WriteRune(r)
		}
	}
	if s.Cursor >= len(runes) {
		sb.WriteString(pr.styles.Cursor.Render(" "))
	}
	width := max(minFieldWidth, len(runes)+1)
	return pr.styles.Popup.Render(lipgloss.NewStyle().Width(width).Render(sb.String()))
}

// Menu renders one line per row inside a frame of layout.Border cells,
// highlighting the selected row. The outermost cell of the frame is the
// popup border and the rest is blank.
func (pr *PopupRenderer) Menu(layout widgets.MenuLayout, labels []string, selectedRow int) string {
	widest := 0
	for _, l := range labels {
		widest = max(widest, ansi.StringWidth(l))
	}
	// row style pads one cell either side
	inner := widest + 2

	edge := min(layout.Border, 1)
	side := strings.Repeat(" ", layout.Border-edge)
	body := make([]string, layout.Height(len(labels))-2*edge)
	for i := range body {
		body[i] = strings.Repeat(" ", layout.Width(inner)-2*edge)
	}
	for i, l := range labels {
		style := pr.styles.MenuRow
		if i == selectedRow {
			style = pr.styles.MenuSelected
		}
		body[layout.RowY(domain.Rect{}, i)-edge] = side + style.Width(inner).Render(l) + side
	}

	out := strings.Join(body, "\n")
	if edge == 0 {
		return out
	}
	return pr.styles.Popup.Render(out)
}

// placeOverlay splices popup over base with its top-left corner at (x, y).
// Cells of base left and right of the popup are kept.
func placeOverlay(base, popup string, x, y int) string {
	lines := strings.Split(base, "\n")
	for i, pl := range strings.Split(popup, "\n") {
		row := y + i
		if row < 0 || row >= len(lines) {
			continue
		}
		line := lines[row]
		if pad := x - ansi.StringWidth(line); pad > 0 {
			line += strings.Repeat(" ", pad)
		}
		left := ansi.Truncate(line, x, "")
		right := ansi.TruncateLeft(line, x+ansi.StringWidth(pl), "")
		lines[row] = left + pl + right
	}
	return strings.Join(lines, "\n")
}

// desaturate strips styles from the lines and recolors them dim gray
func desaturate(lines []string) []string {
	gray := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = gray.Render(ansi.Strip(l))
	}
	return out
}
