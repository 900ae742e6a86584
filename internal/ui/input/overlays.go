package input

import "stockdash/internal/domain"

// AssociatedOverlay maps a clicked target to the overlay it belongs to:
// activators alias to the overlay they open, overlay surfaces to themselves.
// Targets without an overlay report false.
func AssociatedOverlay(t domain.UiTarget) (domain.UiTarget, bool) {
	switch t {
	case domain.TargetStockSymbol, domain.TargetStockName, domain.TargetStockSymbolInput:
		return domain.TargetStockSymbolInput, true
	case domain.TargetTimeFrame, domain.TargetTimeFrameMenu:
		return domain.TargetTimeFrameMenu, true
	case domain.TargetIndicator, domain.TargetIndicatorMenu:
		return domain.TargetIndicatorMenu, true
	}
	return 0, false
}
