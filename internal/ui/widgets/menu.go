package widgets

import (
	"fmt"

	"stockdash/internal/ui/input/types"
)

// MenuState is the running state of a select menu. Selected is the
// highlighted item and Committed the last accepted one; -1 means none.
type MenuState struct {
	Active    bool
	Selected  int
	Committed int
}

// MenuEventKind classifies what a menu step emitted
type MenuEventKind uint8

const (
	MenuOpened MenuEventKind = iota
	MenuClosed
	MenuAccepted
)

// MenuEvent is emitted by a menu step. An accepted event with Ok false
// commits "no selection".
type MenuEvent[T any] struct {
	Kind  MenuEventKind
	Value T
	Ok    bool
}

// SelectMenu is the reducer for a popup list of fixed items.
//
// Navigation works on rows. With AllowEmpty row 0 is "none" and item i sits
// on row i+1; without it item i sits on row i and -1 is the row of a menu
// that has never had a selection.
type SelectMenu[T comparable] struct {
	items      []T
	allowEmpty bool
	layout     MenuLayout
}

func NewSelectMenu[T comparable](items []T, allowEmpty bool, layout MenuLayout) SelectMenu[T] {
	if len(items) == 0 {
		panic("widgets: select menu without items")
	}
	return SelectMenu[T]{items: items, allowEmpty: allowEmpty, layout: layout}
}

func (m SelectMenu[T]) Items() []T {
	return m.items
}

func (m SelectMenu[T]) AllowEmpty() bool {
	return m.allowEmpty
}

func (m SelectMenu[T]) Layout() MenuLayout {
	return m.layout
}

// Rows is the number of rows the menu shows
func (m SelectMenu[T]) Rows() int {
	if m.allowEmpty {
		return len(m.items) + 1
	}
	return len(m.items)
}

// Row is the row an item index is drawn on
func (m SelectMenu[T]) Row(index int) int {
	if m.allowEmpty {
		return index + 1
	}
	return index
}

func (m SelectMenu[T]) index(row int) int {
	if m.allowEmpty {
		return row - 1
	}
	return row
}

// Initial returns the inactive state with value committed. Committing a
// value that is not one of the items panics.
func (m SelectMenu[T]) Initial(value T, ok bool) MenuState {
	if !ok {
		return MenuState{Selected: -1, Committed: -1}
	}
	for i, item := range m.items {
		if item == value {
			return MenuState{Selected: i, Committed: i}
		}
	}
	panic(fmt.Sprintf("widgets: %v is not a menu item", value))
}

// Selection returns the item at index, if there is one
func (m SelectMenu[T]) Selection(index int) (T, bool) {
	if index < 0 || index >= len(m.items) {
		var zero T
		return zero, false
	}
	return m.items[index], true
}

// Step applies one action
func (m SelectMenu[T]) Step(s MenuState, action types.Action) (MenuState, []MenuEvent[T]) {
	if !s.Active {
		switch action.(type) {
		case types.ActivateAction, types.ToggleAction:
			return MenuState{Active: true, Selected: s.Committed, Committed: s.Committed},
				[]MenuEvent[T]{{Kind: MenuOpened}}
		}
		return s, nil
	}

	switch a := action.(type) {
	case types.DeactivateAction, types.ToggleAction:
		return m.revert(s), []MenuEvent[T]{{Kind: MenuClosed}}

	case types.ReleaseAction:
		return m.revert(s), nil

	case types.NavigateAction:
		switch a.Direction {
		case "up":
			s.Selected = m.index(clamp(m.Row(s.Selected)-1, 0, m.Rows()-1))
		case "down":
			s.Selected = m.index(clamp(m.Row(s.Selected)+1, 0, m.Rows()-1))
		}
		return s, nil

	case types.SubmitAction:
		return m.accept(s)

	case types.ClickRowAction:
		s.Selected = m.index(m.layout.RowIndex(a.Area, a.Y, m.Rows()))
		return m.accept(s)
	}

	return s, nil
}

func (m SelectMenu[T]) accept(s MenuState) (MenuState, []MenuEvent[T]) {
	value, ok := m.Selection(s.Selected)
	committed := -1
	if ok {
		committed = s.Selected
	}
	return MenuState{Selected: committed, Committed: committed},
		[]MenuEvent[T]{{Kind: MenuAccepted, Value: value, Ok: ok}, {Kind: MenuClosed}}
}

func (m SelectMenu[T]) revert(s MenuState) MenuState {
	return MenuState{Selected: s.Committed, Committed: s.Committed}
}
