package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"stockdash/internal/domain"
	"stockdash/internal/indicators"
	"stockdash/internal/ui/coordinator"
	"stockdash/internal/ui/widgets"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width      int
	Height     int
	Snapshot   coordinator.Snapshot
	TimeFrames widgets.SelectMenu[domain.TimeFrame]
	Indicators widgets.SelectMenu[domain.Indicator]
	Spinner    string // current spinner frame, shown while loading
	Help       string // rendered key help for the footer
}

// Frame is one rendered screen and the targets marked in it
type Frame struct {
	Content string
	Drawn   []domain.UiTarget
}

const (
	minWidth  = 30
	minHeight = 14
	dateFmt   = "2006-01-02"
)

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	popupRender *PopupRenderer
	zones       *Zones
}

// NewRenderer creates a new renderer marking targets in zones
func NewRenderer(zones *Zones) *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:      styles,
		popupRender: NewPopupRenderer(styles),
		zones:       zones,
	}
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) Frame {
	if state.Width < minWidth || state.Height < minHeight {
		return Frame{Content: r.styles.Dim.Render("Terminal too small")}
	}
	f := &frameBuilder{r: r}
	snap := state.Snapshot

	header := r.header(f, state)
	body := r.body(state)
	footer, anchors := r.footer(f, state)

	if snap.Focus.Set && snap.Focus.Target != domain.TargetStockSymbolInput {
		body = desaturate(body)
	}

	lines := make([]string, 0, state.Height)
	lines = append(lines, header)
	lines = append(lines, body...)
	lines = append(lines, footer)
	content := strings.Join(lines, "\n")

	// popups go on last so they cover the base regions
	if snap.Symbol.Active {
		popup := f.mark(domain.TargetStockSymbolInput, r.popupRender.TextField(snap.Symbol))
		content = placeOverlay(content, popup, 0, 1)
	}
	if snap.TimeFrames.Active {
		m := state.TimeFrames
		popup := r.menu(f, domain.TargetTimeFrameMenu, m.Layout(), timeFrameLabels(m), m.Row(snap.TimeFrames.Selected))
		content = placeOverlay(content, popup, anchors.timeFrame, state.Height-1-m.Layout().Height(m.Rows()))
	}
	if snap.Indicators.Active {
		m := state.Indicators
		popup := r.menu(f, domain.TargetIndicatorMenu, m.Layout(), indicatorLabels(m), m.Row(snap.Indicators.Selected))
		content = placeOverlay(content, popup, anchors.indicator, state.Height-1-m.Layout().Height(m.Rows()))
	}
	return Frame{Content: content, Drawn: f.drawn}
}

// frameBuilder collects the targets marked while one frame is rendered
type frameBuilder struct {
	r     *Renderer
	drawn []domain.UiTarget
}

func (f *frameBuilder) mark(t domain.UiTarget, s string) string {
	f.drawn = append(f.drawn, t)
	return f.r.zones.Mark(t, s)
}

func (r *Renderer) header(f *frameBuilder, state ViewState) string {
	snap := state.Snapshot
	symbol := f.mark(domain.TargetStockSymbol, r.styles.Symbol.Render(" "+snap.Query.Symbol+" "))
	left := symbol + r.styles.Header.Render(" ")

	name := snap.Stock.CompanyName()
	if name == "" && snap.Loading {
		name = "…"
	}
	right := r.quote(snap.Stock)
	room := state.Width - ansi.StringWidth(left) - ansi.StringWidth(right) - 1
	if room > 0 {
		left += f.mark(domain.TargetStockName, r.styles.Name.Render(ansi.Truncate(name, room, "…")))
	}

	pad := state.Width - ansi.StringWidth(left) - ansi.StringWidth(right)
	if pad < 0 {
		pad = 0
	}
	return left + r.styles.Header.Render(strings.Repeat(" ", pad)) + right
}

// quote is the last close and the change over the loaded window
func (r *Renderer) quote(stock *domain.Stock) string {
	first, ok := stock.FirstBar()
	if !ok {
		return ""
	}
	last, _ := stock.LastBar()
	change := last.Close - first.Close
	style := r.styles.Up
	if change < 0 {
		style = r.styles.Down
	}
	pct := 0.0
	if first.Close != 0 {
		pct = change / first.Close * 100
	}
	return r.styles.Header.Render(fmt.Sprintf("%.2f ", last.Close)) +
		style.Render(fmt.Sprintf("%+.2f (%+.2f%%) ", change, pct))
}

// body is the bordered price chart: y labels, braille plot and x labels
func (r *Renderer) body(state ViewState) []string {
	snap := state.Snapshot
	innerW, innerH := state.Width-2, state.Height-4
	var inner []string

	var bars []domain.Bar
	if snap.Stock != nil {
		bars = snap.Stock.Bars
	}
	switch {
	case snap.Err != nil && len(bars) == 0:
		inner = r.message(innerW, innerH, r.styles.StatusError.Render("No data: "+snap.Err.Error()))
	case len(bars) == 0 && snap.Loading:
		inner = r.message(innerW, innerH, r.styles.StatusLoading.Render("Loading "+snap.Query.Symbol+"…"))
	case len(bars) == 0:
		inner = r.message(innerW, innerH, r.styles.Dim.Render("No prices for "+snap.Query.Key()))
	default:
		inner = r.chart(innerW, innerH, bars, snap)
	}

	box := r.styles.ChartBox.Width(innerW).Height(innerH).Render(strings.Join(inner, "\n"))
	lines := strings.Split(box, "\n")
	title := r.styles.ChartTitle.Render(" Historical Prices · " + snap.Query.TimeFrame.String() + " · " + snap.Query.Range.String() + " ")
	if ansi.StringWidth(title)+2 < state.Width {
		lines[0] = placeOverlay(lines[0], title, 2, 0)
	}
	return lines
}

func (r *Renderer) message(w, h int, msg string) []string {
	out := make([]string, h)
	out[h/2] = lipgloss.PlaceHorizontal(w, lipgloss.Center, msg)
	return out
}

func (r *Renderer) chart(w, h int, bars []domain.Bar, snap coordinator.Snapshot) []string {
	price := Line{Values: indicators.Closes(bars), Style: r.styles.Price}
	lines := []Line{}
	if snap.HasIndicator {
		for i, s := range indicators.Compute(snap.Indicator, bars) {
			lines = append(lines, Line{Values: s.Values, Style: r.styles.IndicatorStyle(i)})
		}
	}
	lines = append(lines, price)

	lo, hi, _ := Bounds(lines...)
	hiLabel, loLabel := fmt.Sprintf("%.0f", hi), fmt.Sprintf("%.0f", lo)
	axisW := max(len(hiLabel), len(loLabel)) + 1

	plotH := h - 1
	plot := Plot(w-axisW, plotH, lo, hi, lines...)
	out := make([]string, 0, h)
	for i, row := range plot {
		label := ""
		switch i {
		case 0:
			label = hiLabel
		case plotH - 1:
			label = loLabel
		}
		out = append(out, r.styles.Axis.Render(fmt.Sprintf("%*s ", axisW-1, label))+row)
	}

	from, to := bars[0].Time.Format(dateFmt), bars[len(bars)-1].Time.Format(dateFmt)
	gap := w - axisW - len(from) - len(to)
	if gap < 1 {
		gap = 1
	}
	out = append(out, r.styles.Axis.Render(strings.Repeat(" ", axisW)+from+strings.Repeat(" ", gap)+to))
	return out
}

// footerAnchors are the columns the footer menus open at
type footerAnchors struct {
	timeFrame int
	indicator int
}

func (r *Renderer) footer(f *frameBuilder, state ViewState) (string, footerAnchors) {
	snap := state.Snapshot
	var anchors footerAnchors

	indicator := "none"
	if snap.HasIndicator {
		indicator = snap.Indicator.Label()
	}

	left := " "
	anchors.timeFrame = ansi.StringWidth(left)
	left += f.mark(domain.TargetTimeFrame, r.styles.Label.Render("Time frame: ")+r.styles.Value.Render(snap.Query.TimeFrame.String()))
	left += "  "
	anchors.indicator = ansi.StringWidth(left)
	left += f.mark(domain.TargetIndicator, r.styles.Label.Render("Indicator: ")+r.styles.Value.Render(indicator))
	left += "  " + r.status(state)

	right := state.Help
	pad := state.Width - ansi.StringWidth(left) - ansi.StringWidth(right)
	if pad < 1 {
		// help goes first, then the status is cut
		if w := ansi.StringWidth(left); w <= state.Width {
			return left + strings.Repeat(" ", state.Width-w), anchors
		}
		return ansi.Truncate(left, state.Width, "…"), anchors
	}
	return left + strings.Repeat(" ", pad) + right, anchors
}

func (r *Renderer) status(state ViewState) string {
	snap := state.Snapshot
	switch {
	case snap.Err != nil:
		return r.styles.StatusError.Render(snap.Err.Error())
	case snap.Loading:
		return r.styles.StatusLoading.Render(state.Spinner + " loading")
	case snap.Status != "":
		return r.styles.StatusWarning.Render(snap.Status)
	}
	return ""
}

func (r *Renderer) menu(f *frameBuilder, t domain.UiTarget, layout widgets.MenuLayout, labels []string, selectedRow int) string {
	return f.mark(t, r.popupRender.Menu(layout, labels, selectedRow))
}

func timeFrameLabels(m widgets.SelectMenu[domain.TimeFrame]) []string {
	labels := make([]string, 0, m.Rows())
	for _, tf := range m.Items() {
		labels = append(labels, tf.String())
	}
	return labels
}

func indicatorLabels(m widgets.SelectMenu[domain.Indicator]) []string {
	labels := make([]string, 0, m.Rows())
	if m.AllowEmpty() {
		labels = append(labels, "none")
	}
	for _, ind := range m.Items() {
		labels = append(labels, ind.Label())
	}
	return labels
}
