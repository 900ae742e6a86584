package ui

import (
	"time"

	"stockdash/internal/domain"
)

// tickMsg is sent on a timer and drives the periodic refresh
type tickMsg time.Time

// fetchResultMsg carries a finished fetch back into the loop
type fetchResultMsg struct {
	result domain.FetchCompletedEvent
}

// pagerMsg is sent when the pager exits
type pagerMsg struct {
	what string
	err  error
}
