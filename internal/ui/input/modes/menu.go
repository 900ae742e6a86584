package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"stockdash/internal/ui/input/types"
)

// MenuMode handles keys while a select menu is open
type MenuMode struct {
	name string
}

func NewMenuMode(name string) *MenuMode {
	return &MenuMode{name: name}
}

func (m *MenuMode) Name() string {
	return m.name
}

func (m *MenuMode) HandleKey(msg tea.KeyMsg) ([]types.Action, bool) {
	switch msg.String() {
	case "esc", "q":
		return []types.Action{types.DeactivateAction{}}, true

	case "enter":
		return []types.Action{types.SubmitAction{}}, true

	case "up", "k":
		return []types.Action{types.NavigateAction{Direction: "up"}}, true

	case "down", "j":
		return []types.Action{types.NavigateAction{Direction: "down"}}, true
	}

	return nil, false
}
