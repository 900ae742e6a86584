package coordinator

import (
	"log"
	"strings"
	"time"

	"stockdash/internal/domain"
	"stockdash/internal/reactive"
	"stockdash/internal/ui/input"
	"stockdash/internal/ui/input/types"
	"stockdash/internal/ui/overlay"
	"stockdash/internal/ui/widgets"
)

// Options seeds the graph
type Options struct {
	Symbol       string
	TimeFrame    domain.TimeFrame
	Indicator    domain.Indicator
	HasIndicator bool
	RefreshTicks int // re-issue the latest query every this many ticks; 0 disables
	Keys         types.KeyMap
}

// Graph is the dataflow graph behind the dashboard. It is built once by
// Build and driven by the terminal loop: BeginTick at the start of every
// loop iteration, then Feed for raw input or Deliver for fetch results.
type Graph struct {
	// Inputs
	raw     *reactive.Broadcast[input.Event]
	areas   *reactive.Broadcast[input.Areas]
	results *reactive.Broadcast[domain.FetchCompletedEvent]

	// Reducers
	arbiter    *overlay.Arbiter
	handler    *input.Handler
	symbol     widgets.TextField
	timeFrames widgets.SelectMenu[domain.TimeFrame]
	indicators widgets.SelectMenu[domain.Indicator]

	// Outputs
	query    *reactive.Folded[domain.Query]
	snapshot *reactive.Folded[Snapshot]
	outbox   []domain.DomainEvent

	tick uint64
	seq  uint64
	at   time.Time
}

// reduction is the running state of one widget plus what its last step emitted
type reduction[S, E any] struct {
	State  S
	Events []E
}

// reducer lifts a widget step over the batch of actions one event produced
func reducer[S, E any](step func(S, types.Action) (S, []E)) func(reduction[S, E], []types.Action) reduction[S, E] {
	return func(acc reduction[S, E], actions []types.Action) reduction[S, E] {
		next := reduction[S, E]{State: acc.State}
		for _, a := range actions {
			var events []E
			next.State, events = step(next.State, a)
			next.Events = append(next.Events, events...)
		}
		return next
	}
}

// Build constructs and wires every node of the graph
func Build(opts Options) *Graph {
	g := &Graph{
		raw:        reactive.NewBroadcast[input.Event](),
		areas:      reactive.NewBroadcast[input.Areas](),
		results:    reactive.NewBroadcast[domain.FetchCompletedEvent](),
		arbiter:    overlay.NewArbiter(),
		handler:    input.NewHandler(opts.Keys),
		symbol:     widgets.NewTextField(widgets.UpperCase),
		timeFrames: widgets.NewSelectMenu(domain.TimeFrames, false, widgets.DefaultMenuLayout),
		indicators: widgets.NewSelectMenu(domain.Indicators, true, widgets.DefaultMenuLayout),
	}

	initial := domain.Query{Symbol: widgets.UpperCase(strings.TrimSpace(opts.Symbol)), TimeFrame: opts.TimeFrame}
	w := &wiring{g: g, opts: opts, initial: initial}
	w.routing()
	w.overlays()
	w.queries()
	w.fetches()
	w.commands()
	w.snapshots()

	log.Printf("Coordinator: graph built for %s (%d raw input observers)", initial.Key(), g.raw.Len())
	return g
}

// BeginTick starts a loop iteration: it advances the tick counter and
// publishes the overlay transitions proposed during the previous one.
func (g *Graph) BeginTick(at time.Time) []domain.DomainEvent {
	g.tick++
	g.at = at
	g.arbiter.Flush(g.context())
	return g.drain()
}

// SetAreas records where every target was drawn in the last frame
func (g *Graph) SetAreas(areas input.Areas) {
	g.areas.Send(g.context(), areas)
}

// Feed pushes one raw input event through the graph and returns the
// commands it produced
func (g *Graph) Feed(ev input.Event) []domain.DomainEvent {
	g.seq++
	g.raw.Send(g.context(), ev)
	return g.drain()
}

// Deliver hands a fetch result back to the graph. Results for a query that
// is no longer current are ignored.
func (g *Graph) Deliver(res domain.FetchCompletedEvent) []domain.DomainEvent {
	g.seq++
	g.results.Send(g.context(), res)
	return g.drain()
}

// Query returns the current query
func (g *Graph) Query() domain.Query {
	return g.query.Value()
}

// Snapshot returns the state the renderer draws
func (g *Graph) Snapshot() Snapshot {
	return g.snapshot.Value()
}

// TimeFrameMenu returns the time frame reducer, for its items and layout
func (g *Graph) TimeFrameMenu() widgets.SelectMenu[domain.TimeFrame] {
	return g.timeFrames
}

// IndicatorMenu returns the indicator reducer, for its items and layout
func (g *Graph) IndicatorMenu() widgets.SelectMenu[domain.Indicator] {
	return g.indicators
}

// Handler returns the input handler, for its key bindings and mode names
func (g *Graph) Handler() *input.Handler {
	return g.handler
}

func (g *Graph) context() reactive.Context {
	return reactive.Context{Tick: g.tick, Seq: g.seq, At: g.at}
}

func (g *Graph) drain() []domain.DomainEvent {
	out := g.outbox
	g.outbox = nil
	return out
}
