package input

import (
	"github.com/charmbracelet/bubbles/key"

	"stockdash/internal/domain"
	"stockdash/internal/reactive"
	"stockdash/internal/ui/input/types"
)

// Env is what routing needs to know about the screen
type Env struct {
	Focus domain.Focus
	Areas Areas
}

// Routed is a user event tagged with the overlay that claims it
type Routed struct {
	Event   Event
	Overlay domain.UiTarget
	Claimed bool // some overlay claims the event
	Active  bool // the claiming overlay was already active
	Hit     Hit
	HasHit  bool
}

// Route decides which overlay claims ev. An active overlay claims every
// event wherever it lands; otherwise keys go through the hotkey table and
// clicks through hit-testing and the associated-overlay table. ctrl+c is
// never claimed.
func Route(keys types.KeyMap, ev Event, env Env) Routed {
	r := Routed{Event: ev}
	if ev.IsClick() {
		r.Hit, r.HasHit = HitTest(env.Areas, ev.Mouse.X, ev.Mouse.Y)
	}

	if ev.Kind == KindKey && key.Matches(ev.Key, keys.ForceQuit) {
		return r
	}

	if env.Focus.Set {
		r.Overlay, r.Claimed, r.Active = env.Focus.Target, true, true
		return r
	}

	switch {
	case ev.Kind == KindKey:
		r.Overlay, r.Claimed = keys.Hotkey(ev.Key)
	case r.HasHit:
		r.Overlay, r.Claimed = AssociatedOverlay(r.Hit.Target)
	}
	return r
}

// Router splits routed events into one stream per overlay plus the stream
// of events no overlay claimed.
type Router struct {
	groups *reactive.Broadcast[*reactive.Grouped[domain.UiTarget, Routed]]
	global reactive.Stream[Routed]
}

// NewRouter tags every user event with its overlay. routed is subscribed
// once per branch, so it should be a hub.
func NewRouter(routed reactive.Stream[Routed]) *Router {
	claimed := reactive.Filter(routed, func(r Routed) bool { return r.Claimed })
	return &Router{
		groups: reactive.GroupBy(claimed, int(domain.NumTargets),
			func(r Routed) domain.UiTarget { return r.Overlay },
			func(r Routed) Routed { return r }),
		global: reactive.Filter(routed, func(r Routed) bool { return !r.Claimed }),
	}
}

// Overlay returns the events claimed by target
func (rt *Router) Overlay(target domain.UiTarget) reactive.Stream[Routed] {
	mine := reactive.Filter[*reactive.Grouped[domain.UiTarget, Routed]](rt.groups, func(g *reactive.Grouped[domain.UiTarget, Routed]) bool {
		return g.Key == target
	})
	return reactive.Switch(reactive.Map(mine, reactive.Inner[domain.UiTarget, Routed]))
}

// Global returns the events no overlay claimed
func (rt *Router) Global() reactive.Stream[Routed] {
	return rt.global
}
