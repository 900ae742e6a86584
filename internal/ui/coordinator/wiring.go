package coordinator

import (
	"log"
	"time"

	"stockdash/internal/domain"
	"stockdash/internal/reactive"
	"stockdash/internal/ui/input"
	"stockdash/internal/ui/input/types"
	"stockdash/internal/ui/overlay"
	"stockdash/internal/ui/widgets"
)

type (
	fieldReduction     = reduction[widgets.FieldState, widgets.FieldEvent]
	timeFrameReduction = reduction[widgets.MenuState, widgets.MenuEvent[domain.TimeFrame]]
	indicatorReduction = reduction[widgets.MenuState, widgets.MenuEvent[domain.Indicator]]
)

// queryPatch edits the query; now is the logical time of the edit
type queryPatch func(q domain.Query, now time.Time) domain.Query

// wiring holds the intermediate nodes while Build connects them
type wiring struct {
	g       *Graph
	opts    Options
	initial domain.Query

	ticks  reactive.Stream[input.Event]
	router *input.Router
	global reactive.Stream[types.Action]

	states *reactive.Folded[overlay.States]

	field           *reactive.Folded[fieldReduction]
	timeFrame       *reactive.Folded[timeFrameReduction]
	indicator       *reactive.Folded[indicatorReduction]
	fieldEvents     reactive.Stream[widgets.FieldEvent]
	timeEvents      reactive.Stream[widgets.MenuEvent[domain.TimeFrame]]
	indicatorEvents reactive.Stream[widgets.MenuEvent[domain.Indicator]]

	latest   reactive.Stream[domain.Query]
	requests reactive.Stream[domain.FetchRequestedEvent]
	refresh  reactive.Stream[domain.FetchRequestedEvent]
	current  reactive.Stream[domain.FetchCompletedEvent]

	// loaded carries every stock delivered for the current query. Paging
	// samples it while building the query, before fetches() feeds it.
	loaded *reactive.Broadcast[*domain.Stock]
}

// routing splits raw input and tags user events with their overlay
func (w *wiring) routing() {
	g := w.g
	var user reactive.Stream[input.Event]
	w.ticks, user = input.Split(g.raw)

	w.states = overlay.Snapshot(g.arbiter.Changes())
	env := reactive.CombineLatest(
		reactive.StartWith[domain.Focus](overlay.Focused(w.states), domain.Focus{}),
		reactive.StartWith[input.Areas](g.areas, input.Areas{}),
		func(f domain.Focus, a input.Areas) input.Env { return input.Env{Focus: f, Areas: a} },
	)

	keys := g.handler.Keys()
	routed := reactive.WithLatestFrom(user, reactive.StartWith[input.Env](env, input.Env{}),
		func(ev input.Event, env input.Env) input.Routed { return input.Route(keys, ev, env) })

	w.router = input.NewRouter(routed)
	w.global = reactive.Flatten(reactive.Map(w.router.Global(), g.handler.Global))
}

// overlays folds every overlay's actions through its reducer and turns the
// reducers' open/close decisions into arbiter proposals
func (w *wiring) overlays() {
	g := w.g
	per := overlay.NewPerTarget(g.arbiter.Changes())

	actions := func(target domain.UiTarget) reactive.Stream[[]types.Action] {
		released := reactive.FilterMap(per.Target(target), func(s domain.OverlayState) ([]types.Action, bool) {
			return []types.Action{types.ReleaseAction{}}, s == domain.Inactive
		})
		return reactive.Merge(reactive.Map(w.router.Overlay(target), g.handler.Overlay), released)
	}

	w.field = reactive.Fold(actions(domain.TargetStockSymbolInput),
		fieldReduction{State: g.symbol.Initial(w.opts.Symbol)},
		reducer(g.symbol.Step))
	w.timeFrame = reactive.Fold(actions(domain.TargetTimeFrameMenu),
		timeFrameReduction{State: g.timeFrames.Initial(w.opts.TimeFrame, true)},
		reducer(g.timeFrames.Step))
	w.indicator = reactive.Fold(actions(domain.TargetIndicatorMenu),
		indicatorReduction{State: g.indicators.Initial(w.opts.Indicator, w.opts.HasIndicator)},
		reducer(g.indicators.Step))

	w.fieldEvents = reactive.Flatten(reactive.Map(w.field, func(r fieldReduction) []widgets.FieldEvent { return r.Events }))
	w.timeEvents = menuEvents(w.timeFrame)
	w.indicatorEvents = menuEvents(w.indicator)

	w.fieldEvents.Subscribe(func(_ reactive.Context, e widgets.FieldEvent) {
		switch e.Kind {
		case widgets.FieldOpened:
			g.arbiter.Propose(domain.OverlayChange{Target: domain.TargetStockSymbolInput, State: domain.Active})
		case widgets.FieldClosed:
			g.arbiter.Propose(domain.OverlayChange{Target: domain.TargetStockSymbolInput, State: domain.Inactive})
		}
	})
	proposeMenu(g.arbiter, domain.TargetTimeFrameMenu, w.timeEvents)
	proposeMenu(g.arbiter, domain.TargetIndicatorMenu, w.indicatorEvents)
}

func menuEvents[T any](f *reactive.Folded[reduction[widgets.MenuState, widgets.MenuEvent[T]]]) reactive.Stream[widgets.MenuEvent[T]] {
	return reactive.Flatten(reactive.Map[reduction[widgets.MenuState, widgets.MenuEvent[T]]](f,
		func(r reduction[widgets.MenuState, widgets.MenuEvent[T]]) []widgets.MenuEvent[T] { return r.Events }))
}

func proposeMenu[T any](arbiter *overlay.Arbiter, target domain.UiTarget, events reactive.Stream[widgets.MenuEvent[T]]) {
	events.Subscribe(func(_ reactive.Context, e widgets.MenuEvent[T]) {
		switch e.Kind {
		case widgets.MenuOpened:
			arbiter.Propose(domain.OverlayChange{Target: target, State: domain.Active})
		case widgets.MenuClosed:
			arbiter.Propose(domain.OverlayChange{Target: target, State: domain.Inactive})
		}
	})
}

// queries folds accepted symbols, time frames and paging into the current
// query and derives a fetch request whenever it changes
func (w *wiring) queries() {
	g := w.g
	w.loaded = reactive.NewBroadcast[*domain.Stock]()

	symbols := reactive.FilterMap(w.fieldEvents, func(e widgets.FieldEvent) (queryPatch, bool) {
		return func(q domain.Query, _ time.Time) domain.Query {
			return domain.Query{Symbol: e.Value, TimeFrame: q.TimeFrame}
		}, e.Kind == widgets.FieldAccepted
	})

	timeFrames := reactive.FilterMap(w.timeEvents, func(e widgets.MenuEvent[domain.TimeFrame]) (queryPatch, bool) {
		return func(q domain.Query, _ time.Time) domain.Query {
			return domain.Query{Symbol: q.Symbol, TimeFrame: e.Value}
		}, e.Kind == widgets.MenuAccepted && e.Ok
	})

	pages := reactive.FilterMap(w.global, func(a types.Action) (string, bool) {
		pa, ok := a.(types.PageAction)
		return pa.Direction, ok
	})
	paging := reactive.FilterMap(reactive.WithLatestFrom(pages, w.loaded, reactive.PairOf[string, *domain.Stock]),
		func(p reactive.Pair[string, *domain.Stock]) (queryPatch, bool) {
			direction, stock := p.First, p.Second
			return func(q domain.Query, now time.Time) domain.Query {
				return page(q, direction, stock, now)
			}, stock != nil
		})

	edits := reactive.MapCtx(reactive.Merge(symbols, timeFrames, paging),
		func(ctx reactive.Context, p queryPatch) func(domain.Query) domain.Query {
			return func(q domain.Query) domain.Query { return p(q, ctx.At) }
		})
	g.query = reactive.Fold(edits, w.initial, func(q domain.Query, edit func(domain.Query) domain.Query) domain.Query {
		return edit(q)
	})

	w.latest = reactive.StartWith[domain.Query](g.query, w.initial)
	changed := reactive.DistinctUntilChangedFunc(w.latest, func(a, b domain.Query) bool { return a.Key() == b.Key() })
	w.requests = reactive.Map(changed, func(q domain.Query) domain.FetchRequestedEvent {
		return domain.FetchRequestedEvent{Query: q}
	})
}

// page shifts q one time frame before the first or after the last loaded
// bar. Time frames without a fixed length do not page.
func page(q domain.Query, direction string, stock *domain.Stock, now time.Time) domain.Query {
	var (
		r  domain.DateRange
		ok bool
	)
	switch direction {
	case "left":
		first, has := stock.FirstBar()
		if !has {
			return q
		}
		r, ok = domain.ShiftBefore(q.TimeFrame, first.Time)
	case "right":
		if q.Range.IsZero() {
			return q
		}
		last, has := stock.LastBar()
		if !has {
			return q
		}
		r, ok = domain.ShiftAfter(q.TimeFrame, last.Time, now)
	}
	if !ok {
		return q
	}
	q.Range = r
	return q
}

// fetches filters delivered results down to the current query and sets up
// the periodic refresh of the latest window
func (w *wiring) fetches() {
	g := w.g
	matched := reactive.WithLatestFrom(g.results, w.latest, reactive.PairOf[domain.FetchCompletedEvent, domain.Query])
	w.current = reactive.FilterMap(matched, func(p reactive.Pair[domain.FetchCompletedEvent, domain.Query]) (domain.FetchCompletedEvent, bool) {
		res, q := p.First, p.Second
		if res.Query.Key() != q.Key() {
			log.Printf("Coordinator: dropping stale result for %s", res.Query.Key())
			return res, false
		}
		return res, true
	})

	w.current.Subscribe(func(ctx reactive.Context, res domain.FetchCompletedEvent) {
		if res.Err == nil && res.Stock != nil {
			w.loaded.Send(ctx, res.Stock)
		}
	})

	w.refresh = reactive.StreamFunc[domain.FetchRequestedEvent](func(reactive.Observer[domain.FetchRequestedEvent]) {})
	if w.opts.RefreshTicks <= 0 {
		return
	}
	batches := reactive.Buffer(w.ticks, w.opts.RefreshTicks)
	w.refresh = reactive.FilterMap(reactive.WithLatestFrom(batches, w.latest, func(_ []input.Event, q domain.Query) domain.Query { return q }),
		func(q domain.Query) (domain.FetchRequestedEvent, bool) {
			return domain.FetchRequestedEvent{Query: q, Refresh: true}, q.Range.IsZero()
		})
}

// commands collects everything the shell has to act on into the outbox
func (w *wiring) commands() {
	g := w.g
	globals := reactive.FilterMap(w.global, func(a types.Action) (domain.DomainEvent, bool) {
		switch a.(type) {
		case types.QuitAction:
			return domain.QuitRequestedEvent{}, true
		case types.ShowProfileAction:
			return domain.ProfileShownEvent{}, true
		case types.ToggleHelpAction:
			return domain.HelpShownEvent{}, true
		}
		return nil, false
	})
	bells := reactive.FilterMap(w.fieldEvents, func(e widgets.FieldEvent) (domain.DomainEvent, bool) {
		return domain.BellEvent{Reason: e.Edge.String()}, e.Kind == widgets.FieldRejected
	})

	all := reactive.Merge(
		asEvents(w.requests),
		asEvents(w.refresh),
		globals,
		bells,
	)
	all.Subscribe(func(_ reactive.Context, e domain.DomainEvent) {
		g.outbox = append(g.outbox, e)
	})
}

func asEvents[E domain.DomainEvent](s reactive.Stream[E]) reactive.Stream[domain.DomainEvent] {
	return reactive.Map(s, func(e E) domain.DomainEvent { return e })
}
