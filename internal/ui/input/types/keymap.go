package types

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"stockdash/internal/domain"
)

// KeyMap holds the dashboard's key bindings
type KeyMap struct {
	Symbol    key.Binding
	TimeFrame key.Binding
	Indicator key.Binding
	Prev      key.Binding
	Next      key.Binding
	Profile   key.Binding
	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

// DefaultKeyMap returns the stock bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Symbol: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "symbol"),
		),
		TimeFrame: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "time frame"),
		),
		Indicator: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "indicator"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "earlier"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "later"),
		),
		Profile: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "profile"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Symbol, k.TimeFrame, k.Indicator, k.Prev, k.Next, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Symbol, k.TimeFrame, k.Indicator},
		{k.Prev, k.Next},
		{k.Profile, k.Help, k.Quit},
	}
}

// Hotkey resolves a key to the overlay it opens
func (k KeyMap) Hotkey(msg tea.KeyMsg) (domain.UiTarget, bool) {
	switch {
	case key.Matches(msg, k.Symbol):
		return domain.TargetStockSymbolInput, true
	case key.Matches(msg, k.TimeFrame):
		return domain.TargetTimeFrameMenu, true
	case key.Matches(msg, k.Indicator):
		return domain.TargetIndicatorMenu, true
	}
	return 0, false
}
