package ui

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockdash/internal/config"
	"stockdash/internal/domain"
	"stockdash/internal/ui/views"
)

var epoch = time.Date(2024, time.June, 3, 15, 0, 0, 0, time.UTC)

type stubSource struct {
	mu      sync.Mutex
	queries []domain.Query
}

func (s *stubSource) Fetch(_ context.Context, q domain.Query, _ time.Time) (*domain.Stock, error) {
	s.mu.Lock()
	s.queries = append(s.queries, q)
	s.mu.Unlock()

	bars := make([]domain.Bar, 30)
	for i := range bars {
		bars[i] = domain.Bar{Time: epoch.AddDate(0, 0, i-30), Close: 100 + float64(i)}
	}
	return &domain.Stock{Symbol: q.Symbol, Bars: bars, Profile: &domain.Profile{Name: q.Symbol + " Holdings"}}, nil
}

func newTestModel(t *testing.T) (*Model, *views.Zones, *stubSource) {
	zones := views.NewZones()
	t.Cleanup(zones.Close)

	src := &stubSource{}
	m := NewModel(config.DefaultConfig(), src, zones)
	m.now = func() time.Time { return epoch }
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return m, zones, src
}

// runCmd runs cmd and every command batched inside it. It must not be given
// timers.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func press(m *Model, keys ...string) []tea.Msg {
	var msgs []tea.Msg
	for _, k := range keys {
		_, cmd := m.Update(keyMsg(k))
		msgs = append(msgs, runCmd(cmd)...)
	}
	return msgs
}

func screen(m *Model) string {
	return ansi.Strip(m.View())
}

func fetchResults(msgs []tea.Msg) []domain.FetchCompletedEvent {
	var out []domain.FetchCompletedEvent
	for _, msg := range msgs {
		if r, ok := msg.(fetchResultMsg); ok {
			out = append(out, r.result)
		}
	}
	return out
}

func TestViewBeforeWindowSize(t *testing.T) {
	zones := views.NewZones()
	t.Cleanup(zones.Close)
	m := NewModel(config.DefaultConfig(), &stubSource{}, zones)
	assert.Equal(t, "Loading...", m.View())
}

func TestFetchResultIsDrawn(t *testing.T) {
	m, _, src := newTestModel(t)

	res := fetchResultMsg{result: domain.FetchCompletedEvent{Query: m.graph.Query()}}
	stock, err := src.Fetch(context.Background(), m.graph.Query(), epoch)
	require.NoError(t, err)
	res.result.Stock = stock
	m.Update(res)

	out := screen(m)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 24)
	assert.Contains(t, lines[0], "TSLA")
	assert.Contains(t, lines[0], "TSLA Holdings")
	assert.Contains(t, lines[23], "Time frame: 1mo")
}

func TestSymbolEntryFetchesNewSymbol(t *testing.T) {
	m, _, src := newTestModel(t)

	msgs := press(m, "s", "backspace", "backspace", "backspace", "backspace", "aapl")
	assert.Empty(t, fetchResults(msgs))
	assert.Contains(t, screen(m), "AAPL")

	results := fetchResults(press(m, "enter"))
	require.Len(t, results, 1)
	assert.Equal(t, "AAPL", results[0].Query.Symbol)
	require.NoError(t, results[0].Err)

	src.mu.Lock()
	defer src.mu.Unlock()
	require.Len(t, src.queries, 1)
	assert.Equal(t, "AAPL", src.queries[0].Symbol)
}

func TestQuitKey(t *testing.T) {
	m, _, _ := newTestModel(t)
	msgs := press(m, "q")
	assert.Contains(t, msgs, tea.Msg(tea.QuitMsg{}))
}

func TestClickOnTimeFrameOpensMenu(t *testing.T) {
	m, zones, _ := newTestModel(t)
	m.View()

	var rect domain.Rect
	require.Eventually(t, func() bool {
		r, ok := zones.Rect(domain.TargetTimeFrame)
		rect = r
		return ok
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, 23, rect.Y)

	m.Update(tea.MouseMsg{X: rect.X + 1, Y: rect.Y, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	assert.NotContains(t, screen(m), "10y")

	// the menu opens on the next tick
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	assert.Contains(t, screen(m), "10y")
}

func TestFooterHelpFollowsFocus(t *testing.T) {
	m, _, _ := newTestModel(t)
	assert.Contains(t, m.footerHelp(domain.Focus{}), "quit")

	focus := domain.Focus{Target: domain.TargetTimeFrameMenu, Set: true}
	assert.Equal(t, "time frame · enter accept · esc cancel", m.footerHelp(focus))
}
