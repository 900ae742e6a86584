package types

import tea "github.com/charmbracelet/bubbletea"

// Action represents a command produced from one user event
type Action interface {
	Type() string
}

// ModeHandler turns the keys an overlay claims into actions
type ModeHandler interface {
	// HandleKey processes a key message and returns actions and whether the key was consumed
	HandleKey(msg tea.KeyMsg) ([]Action, bool)

	// Name returns the mode name for display
	Name() string
}
