package views

import (
	zone "github.com/lrstanley/bubblezone"

	"stockdash/internal/domain"
	"stockdash/internal/ui/input"
)

// Zones marks targets in rendered output and reports where the terminal
// drew them. Zone positions are only known after the frame is scanned, so
// the areas read back always describe the previous frame.
type Zones struct {
	manager *zone.Manager
	prefix  string
}

// NewZones creates a zone tracker over its own manager
func NewZones() *Zones {
	m := zone.New()
	return &Zones{manager: m, prefix: m.NewPrefix()}
}

// Close stops the manager's worker
func (z *Zones) Close() {
	z.manager.Close()
}

func (z *Zones) id(t domain.UiTarget) string {
	return z.prefix + t.String()
}

// Mark wraps s in t's zone markers
func (z *Zones) Mark(t domain.UiTarget, s string) string {
	return z.manager.Mark(z.id(t), s)
}

// Scan strips the markers from a finished frame and records the positions
func (z *Zones) Scan(s string) string {
	return z.manager.Scan(s)
}

// Rect returns where t was drawn in the last scanned frame
func (z *Zones) Rect(t domain.UiTarget) (domain.Rect, bool) {
	info := z.manager.Get(z.id(t))
	if info.IsZero() {
		return domain.Rect{}, false
	}
	return spanRect(info.StartX, info.StartY, info.EndX, info.EndY)
}

// Areas returns the area table for the targets drawn in frame
func (z *Zones) Areas(frame Frame) input.Areas {
	return input.TargetAreas(frame.Drawn, z.Rect)
}

// spanRect converts inclusive corner cells into a rectangle
func spanRect(startX, startY, endX, endY int) (domain.Rect, bool) {
	if endX < startX || endY < startY {
		return domain.Rect{}, false
	}
	return domain.Rect{X: startX, Y: startY, W: endX - startX + 1, H: endY - startY + 1}, true
}
