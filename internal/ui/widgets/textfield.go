// Package widgets holds the state machines behind the dashboard's overlays.
// Every reducer is a pure step from (state, action) to (state, events); the
// graph builder owns the running state.
package widgets

import (
	"strings"

	"stockdash/internal/ui/input/types"
)

// Edge is an edit the field refused
type Edge uint8

const (
	BackspacePastStart Edge = iota + 1
	DeletePastEnd
	MoveCursorPastStart
	MoveCursorPastEnd
	AcceptEmpty
)

func (e Edge) String() string {
	switch e {
	case BackspacePastStart:
		return "backspace past start"
	case DeletePastEnd:
		return "delete past end"
	case MoveCursorPastStart:
		return "cursor past start"
	case MoveCursorPastEnd:
		return "cursor past end"
	case AcceptEmpty:
		return "empty value"
	}
	return "none"
}

// FieldState is the running state of a text field. While inactive Value
// mirrors Saved; Cursor counts runes and stays within [0, len(Value)].
type FieldState struct {
	Active bool
	Value  string
	Cursor int
	Saved  string
}

// FieldEventKind classifies what a field step emitted
type FieldEventKind uint8

const (
	FieldOpened FieldEventKind = iota
	FieldClosed
	FieldAccepted
	FieldRejected
)

// FieldEvent is emitted by a field step
type FieldEvent struct {
	Kind  FieldEventKind
	Value string // accepted value
	Edge  Edge   // rejected edit
}

// TextField is the reducer for a single-line text input
type TextField struct {
	normalize func(string) string
}

// NewTextField builds a reducer that re-applies normalize to the whole
// value after every insertion. A nil normalize keeps input as typed.
func NewTextField(normalize func(string) string) TextField {
	if normalize == nil {
		normalize = func(s string) string { return s }
	}
	return TextField{normalize: normalize}
}

// UpperCase is the normalizer for ticker symbols
func UpperCase(s string) string {
	return strings.ToUpper(s)
}

// Initial returns the inactive state holding saved
func (f TextField) Initial(saved string) FieldState {
	saved = f.normalize(saved)
	return FieldState{Value: saved, Cursor: runeLen(saved), Saved: saved}
}

// Step applies one action
func (f TextField) Step(s FieldState, action types.Action) (FieldState, []FieldEvent) {
	if !s.Active {
		switch action.(type) {
		case types.ActivateAction, types.ToggleAction:
			return f.open(s), []FieldEvent{{Kind: FieldOpened}}
		}
		return s, nil
	}

	switch a := action.(type) {
	case types.DeactivateAction, types.ToggleAction:
		return f.close(s), []FieldEvent{{Kind: FieldClosed}}

	case types.ReleaseAction:
		return f.close(s), nil

	case types.InsertTextAction:
		value := []rune(s.Value)
		next := make([]rune, 0, len(value)+len(a.Runes))
		next = append(next, value[:s.Cursor]...)
		next = append(next, a.Runes...)
		next = append(next, value[s.Cursor:]...)
		s.Value = f.normalize(string(next))
		s.Cursor = min(s.Cursor+len(a.Runes), runeLen(s.Value))
		return s, nil

	case types.BackspaceAction:
		if s.Cursor == 0 {
			return s, reject(BackspacePastStart)
		}
		value := []rune(s.Value)
		s.Value = string(append(value[:s.Cursor-1:s.Cursor-1], value[s.Cursor:]...))
		s.Cursor--
		return s, nil

	case types.DeleteAction:
		value := []rune(s.Value)
		if s.Cursor == len(value) {
			return s, reject(DeletePastEnd)
		}
		s.Value = string(append(value[:s.Cursor:s.Cursor], value[s.Cursor+1:]...))
		return s, nil

	case types.NavigateAction:
		switch a.Direction {
		case "left":
			if s.Cursor == 0 {
				return s, reject(MoveCursorPastStart)
			}
			s.Cursor--
		case "right":
			if s.Cursor == runeLen(s.Value) {
				return s, reject(MoveCursorPastEnd)
			}
			s.Cursor++
		case "home":
			s.Cursor = 0
		case "end":
			s.Cursor = runeLen(s.Value)
		}
		return s, nil

	case types.SubmitAction:
		value := strings.TrimSpace(s.Value)
		if value == "" {
			return s, reject(AcceptEmpty)
		}
		return FieldState{Value: value, Cursor: runeLen(value), Saved: value},
			[]FieldEvent{{Kind: FieldAccepted, Value: value}, {Kind: FieldClosed}}
	}

	return s, nil
}

func (f TextField) open(s FieldState) FieldState {
	return FieldState{Active: true, Value: s.Saved, Cursor: runeLen(s.Saved), Saved: s.Saved}
}

func (f TextField) close(s FieldState) FieldState {
	return FieldState{Value: s.Saved, Cursor: runeLen(s.Saved), Saved: s.Saved}
}

func reject(e Edge) []FieldEvent {
	return []FieldEvent{{Kind: FieldRejected, Edge: e}}
}

func runeLen(s string) int {
	return len([]rune(s))
}
