package domain

import "fmt"

// UiTarget names an interactive screen region
type UiTarget uint8

const (
	TargetStockSymbol UiTarget = iota
	TargetStockName
	TargetStockSymbolInput
	TargetTimeFrame
	TargetTimeFrameMenu
	TargetIndicator
	TargetIndicatorMenu

	NumTargets // number of targets; sizes per-target arenas
)

var targetNames = [...]string{
	"stock-symbol", "stock-name", "stock-symbol-input",
	"time-frame", "time-frame-menu", "indicator", "indicator-menu",
}

func (t UiTarget) String() string {
	if t < NumTargets {
		return targetNames[t]
	}
	return fmt.Sprintf("UiTarget(%d)", uint8(t))
}

// ZIndex is the drawing layer: popups sit above the base regions
func (t UiTarget) ZIndex() int {
	if t.IsOverlay() {
		return 1
	}
	return 0
}

// IsOverlay reports whether the target is a modal surface
func (t UiTarget) IsOverlay() bool {
	switch t {
	case TargetStockSymbolInput, TargetTimeFrameMenu, TargetIndicatorMenu:
		return true
	}
	return false
}

// DrawOrder lists every target bottom-most first (z-index, then ordinal).
// Hit-testing scans it in reverse.
var DrawOrder = func() []UiTarget {
	order := make([]UiTarget, 0, NumTargets)
	for z := 0; z <= 1; z++ {
		for t := UiTarget(0); t < NumTargets; t++ {
			if t.ZIndex() == z {
				order = append(order, t)
			}
		}
	}
	return order
}()

// OverlayState is the Active/Inactive flag of one overlay
type OverlayState bool

const (
	Inactive OverlayState = false
	Active   OverlayState = true
)

func (s OverlayState) String() string {
	if s {
		return "active"
	}
	return "inactive"
}

// OverlayChange is one (target, state) transition
type OverlayChange struct {
	Target UiTarget
	State  OverlayState
}

func (c OverlayChange) String() string {
	return fmt.Sprintf("(%s, %s)", c.Target, c.State)
}

// Rect is a screen rectangle in cells. It covers [X, X+W) x [Y, Y+H).
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell (x, y) is inside the rectangle
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Empty reports whether the rectangle covers no cells
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Focus is the committed active overlay, if any
type Focus struct {
	Target UiTarget
	Set    bool
}

// Is reports whether t is the active overlay
func (f Focus) Is(t UiTarget) bool {
	return f.Set && f.Target == t
}

func (f Focus) String() string {
	if !f.Set {
		return "none"
	}
	return f.Target.String()
}
