package types

import "stockdash/internal/domain"

// Overlay lifecycle actions

type ActivateAction struct{}

func (a ActivateAction) Type() string { return "activate" }

// DeactivateAction closes an overlay and reverts it to its committed value
type DeactivateAction struct{}

func (a DeactivateAction) Type() string { return "deactivate" }

// ReleaseAction closes an overlay because another one took focus
type ReleaseAction struct{}

func (a ReleaseAction) Type() string { return "release" }

type ToggleAction struct{}

func (a ToggleAction) Type() string { return "toggle" }

// Text input actions
type InsertTextAction struct {
	Runes []rune
}

func (a InsertTextAction) Type() string { return "insert_text" }

type BackspaceAction struct{}

func (a BackspaceAction) Type() string { return "backspace" }

type DeleteAction struct{}

func (a DeleteAction) Type() string { return "delete" }

// Navigation actions
type NavigateAction struct {
	Direction string // "up", "down", "left", "right", "home", "end"
}

func (a NavigateAction) Type() string { return "navigate" }

// SubmitAction accepts the value being edited
type SubmitAction struct{}

func (a SubmitAction) Type() string { return "submit" }

// ClickRowAction is a click inside an open menu's own surface
type ClickRowAction struct {
	Y    int
	Area domain.Rect
}

func (a ClickRowAction) Type() string { return "click_row" }

// Dashboard actions

// PageAction moves the chart window one time frame back or forward
type PageAction struct {
	Direction string // "left", "right"
}

func (a PageAction) Type() string { return "page" }

type ShowProfileAction struct{}

func (a ShowProfileAction) Type() string { return "show_profile" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type QuitAction struct {
	Force bool
}

func (a QuitAction) Type() string { return "quit" }
