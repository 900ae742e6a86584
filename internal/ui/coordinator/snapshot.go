package coordinator

import (
	"stockdash/internal/domain"
	"stockdash/internal/reactive"
	"stockdash/internal/ui/overlay"
	"stockdash/internal/ui/widgets"
)

// Snapshot is the read-only state the renderer draws from
type Snapshot struct {
	Tick         uint64
	Overlays     overlay.States
	Focus        domain.Focus
	Symbol       widgets.FieldState
	TimeFrames   widgets.MenuState
	Indicators   widgets.MenuState
	Query        domain.Query
	Indicator    domain.Indicator
	HasIndicator bool
	Stock        *domain.Stock
	Err          error
	Loading      bool
	Status       string
}

type snapshotPatch func(Snapshot) Snapshot

func patch[T any](s reactive.Stream[T], apply func(Snapshot, T) Snapshot) reactive.Stream[snapshotPatch] {
	return reactive.Map(s, func(x T) snapshotPatch {
		return func(snap Snapshot) Snapshot { return apply(snap, x) }
	})
}

// snapshots folds every state the renderer needs into one value
func (w *wiring) snapshots() {
	g := w.g
	initial := Snapshot{
		Symbol:     w.field.Value().State,
		TimeFrames: w.timeFrame.Value().State,
		Indicators: w.indicator.Value().State,
		Query:      w.initial,
		Loading:    true,
	}
	initial.Indicator, initial.HasIndicator = g.indicators.Selection(initial.Indicators.Committed)

	patches := reactive.Merge(
		patch[overlay.States](w.states, func(s Snapshot, st overlay.States) Snapshot {
			s.Overlays, s.Focus = st, st.Active()
			return s
		}),
		patch[fieldReduction](w.field, func(s Snapshot, r fieldReduction) Snapshot {
			s.Symbol = r.State
			return s
		}),
		patch[timeFrameReduction](w.timeFrame, func(s Snapshot, r timeFrameReduction) Snapshot {
			s.TimeFrames = r.State
			return s
		}),
		patch[indicatorReduction](w.indicator, func(s Snapshot, r indicatorReduction) Snapshot {
			s.Indicators = r.State
			s.Indicator, s.HasIndicator = g.indicators.Selection(r.State.Committed)
			return s
		}),
		patch[domain.Query](g.query, func(s Snapshot, q domain.Query) Snapshot {
			s.Query = q
			return s
		}),
		patch(reactive.Merge(w.requests, w.refresh), func(s Snapshot, _ domain.FetchRequestedEvent) Snapshot {
			s.Loading, s.Status = true, ""
			return s
		}),
		patch(w.current, func(s Snapshot, res domain.FetchCompletedEvent) Snapshot {
			s.Loading, s.Err = false, res.Err
			if res.Err == nil {
				s.Stock = res.Stock
			}
			return s
		}),
		patch(w.fieldEvents, func(s Snapshot, e widgets.FieldEvent) Snapshot {
			if e.Kind == widgets.FieldRejected {
				s.Status = e.Edge.String()
			}
			return s
		}),
	)

	stamped := reactive.MapCtx(patches, func(ctx reactive.Context, p snapshotPatch) snapshotPatch {
		return func(s Snapshot) Snapshot {
			s = p(s)
			s.Tick = ctx.Tick
			return s
		}
	})
	g.snapshot = reactive.Fold(stamped, initial, func(s Snapshot, p snapshotPatch) Snapshot { return p(s) })
}
