// Package overlay keeps at most one overlay active.
//
// Reducers decide their own transitions and Propose them. Proposals made
// during a tick are held in a queue and only published when the next tick
// begins, so a reducer that reacts to an overlay change can never feed a
// new change back into the same dispatch.
package overlay

import (
	"log"

	"stockdash/internal/domain"
	"stockdash/internal/reactive"
)

// Arbiter serializes overlay transitions
type Arbiter struct {
	pending *reactive.Queue[domain.OverlayChange]
	changes *reactive.Broadcast[domain.OverlayChange]
	focus   domain.Focus
}

// NewArbiter wires the arbiter's queue to its change hub
func NewArbiter() *Arbiter {
	a := &Arbiter{
		pending: reactive.NewQueue[domain.OverlayChange](),
		changes: reactive.NewBroadcast[domain.OverlayChange](),
	}
	a.pending.Subscribe(a.commit)
	return a
}

// Propose queues a transition for the next tick
func (a *Arbiter) Propose(change domain.OverlayChange) {
	a.pending.Push(change)
}

// Flush publishes the transitions proposed since the last flush. It
// returns how many proposals it handled.
func (a *Arbiter) Flush(ctx reactive.Context) int {
	return a.pending.Flush(ctx)
}

// Pending returns the number of queued proposals
func (a *Arbiter) Pending() int {
	return a.pending.Pending()
}

// Changes is the authoritative stream of overlay transitions. Activating B
// while A is active publishes (A, Inactive) immediately before (B, Active).
func (a *Arbiter) Changes() reactive.Stream[domain.OverlayChange] {
	return a.changes
}

// Focus returns the committed active overlay
func (a *Arbiter) Focus() domain.Focus {
	return a.focus
}

func (a *Arbiter) commit(ctx reactive.Context, change domain.OverlayChange) {
	switch change.State {
	case domain.Active:
		if a.focus.Is(change.Target) {
			a.changes.Send(ctx, change)
			return
		}
		if a.focus.Set {
			prev := a.focus.Target
			a.focus = domain.Focus{}
			a.changes.Send(ctx, domain.OverlayChange{Target: prev, State: domain.Inactive})
		}
		a.focus = domain.Focus{Target: change.Target, Set: true}
		a.changes.Send(ctx, change)

	case domain.Inactive:
		if !a.focus.Is(change.Target) {
			log.Printf("Overlay: dropping stale %s", change)
			return
		}
		a.focus = domain.Focus{}
		a.changes.Send(ctx, change)
	}
}
