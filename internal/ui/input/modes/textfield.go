package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"stockdash/internal/ui/input/types"
)

// TextFieldMode handles keys while a text field is being edited
type TextFieldMode struct {
	name string
}

func NewTextFieldMode(name string) *TextFieldMode {
	return &TextFieldMode{name: name}
}

func (m *TextFieldMode) Name() string {
	return m.name
}

func (m *TextFieldMode) HandleKey(msg tea.KeyMsg) ([]types.Action, bool) {
	switch msg.Type {
	case tea.KeyEsc:
		return []types.Action{types.DeactivateAction{}}, true

	case tea.KeyEnter:
		return []types.Action{types.SubmitAction{}}, true

	case tea.KeyBackspace:
		return []types.Action{types.BackspaceAction{}}, true

	case tea.KeyDelete:
		return []types.Action{types.DeleteAction{}}, true

	case tea.KeyLeft:
		return []types.Action{types.NavigateAction{Direction: "left"}}, true

	case tea.KeyRight:
		return []types.Action{types.NavigateAction{Direction: "right"}}, true

	case tea.KeyHome, tea.KeyCtrlA:
		return []types.Action{types.NavigateAction{Direction: "home"}}, true

	case tea.KeyEnd, tea.KeyCtrlE:
		return []types.Action{types.NavigateAction{Direction: "end"}}, true

	case tea.KeySpace:
		return []types.Action{types.InsertTextAction{Runes: []rune{' '}}}, true

	case tea.KeyRunes:
		if len(msg.Runes) > 0 {
			return []types.Action{types.InsertTextAction{Runes: msg.Runes}}, true
		}
	}

	return nil, false
}
