package input

import "stockdash/internal/domain"

// Area is where a target was last drawn. Visible is false when the target
// was not rendered in the last frame.
type Area struct {
	Rect    domain.Rect
	Visible bool
}

// Areas holds the latest known area for every target, indexed by target
type Areas [domain.NumTargets]Area

// Set records the rectangle of a rendered target
func (a *Areas) Set(t domain.UiTarget, r domain.Rect) {
	a[t] = Area{Rect: r, Visible: !r.Empty()}
}

// Get returns the rectangle of t if it was rendered
func (a Areas) Get(t domain.UiTarget) (domain.Rect, bool) {
	area := a[t]
	return area.Rect, area.Visible
}

// Hit is the result of hit-testing a click
type Hit struct {
	Target domain.UiTarget
	Rect   domain.Rect
}

// HitTest returns the top-most target whose rectangle contains (x, y).
// Targets are scanned in reverse draw order; targets that were not
// rendered never match.
func HitTest(areas Areas, x, y int) (Hit, bool) {
	for i := len(domain.DrawOrder) - 1; i >= 0; i-- {
		t := domain.DrawOrder[i]
		r, ok := areas.Get(t)
		if ok && r.Contains(x, y) {
			return Hit{Target: t, Rect: r}, true
		}
	}
	return Hit{}, false
}

// TargetAreas builds the area table for the targets drawn in one frame.
// lookup reports where a drawn target ended up; targets that were not drawn
// or that lookup cannot place stay invisible.
func TargetAreas(drawn []domain.UiTarget, lookup func(domain.UiTarget) (domain.Rect, bool)) Areas {
	var areas Areas
	for _, t := range drawn {
		if r, ok := lookup(t); ok {
			areas.Set(t, r)
		}
	}
	return areas
}
