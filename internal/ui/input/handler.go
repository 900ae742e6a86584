package input

import (
	"stockdash/internal/domain"
	"stockdash/internal/ui/input/modes"
	"stockdash/internal/ui/input/types"
)

// Handler turns routed events into actions. Each overlay has its own key
// mode; unclaimed keys go through the normal mode.
type Handler struct {
	keys   types.KeyMap
	normal types.ModeHandler
	modes  [domain.NumTargets]types.ModeHandler
}

func NewHandler(keys types.KeyMap) *Handler {
	h := &Handler{
		keys:   keys,
		normal: modes.NewNormalMode(keys),
	}
	h.modes[domain.TargetStockSymbolInput] = modes.NewTextFieldMode("symbol")
	h.modes[domain.TargetTimeFrameMenu] = modes.NewMenuMode("time frame")
	h.modes[domain.TargetIndicatorMenu] = modes.NewMenuMode("indicator")
	return h
}

// Keys returns the bindings the handler was built with
func (h *Handler) Keys() types.KeyMap {
	return h.keys
}

// Mode returns the name of the mode that handles keys for the focus
func (h *Handler) Mode(focus domain.Focus) string {
	if focus.Set && h.modes[focus.Target] != nil {
		return h.modes[focus.Target].Name()
	}
	return h.normal.Name()
}

// Overlay returns the actions for an event claimed by r.Overlay.
//
// An inactive overlay is being opened, by its hotkey or by a click on one of
// its activators. An active overlay hands keys to its mode; a click on its
// own surface becomes a row click, a click on one of its activators toggles
// it, and any other click closes it.
func (h *Handler) Overlay(r Routed) []types.Action {
	if !r.Claimed {
		return nil
	}
	if !r.Active {
		return []types.Action{types.ActivateAction{}}
	}

	switch r.Event.Kind {
	case KindKey:
		mode := h.modes[r.Overlay]
		if mode == nil {
			return nil
		}
		actions, _ := mode.HandleKey(r.Event.Key)
		return actions

	case KindMouse:
		if !r.Event.IsClick() {
			return nil
		}
		if !r.HasHit {
			return []types.Action{types.DeactivateAction{}}
		}
		if r.Hit.Target == r.Overlay {
			return []types.Action{types.ClickRowAction{Y: r.Event.Mouse.Y, Area: r.Hit.Rect}}
		}
		if owner, ok := AssociatedOverlay(r.Hit.Target); ok && owner == r.Overlay {
			return []types.Action{types.ToggleAction{}}
		}
		return []types.Action{types.DeactivateAction{}}
	}
	return nil
}

// Global returns the actions for an event no overlay claimed
func (h *Handler) Global(r Routed) []types.Action {
	if r.Claimed || r.Event.Kind != KindKey {
		return nil
	}
	actions, _ := h.normal.HandleKey(r.Event.Key)
	return actions
}
