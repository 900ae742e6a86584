// Package reactive is a small push-based dataflow engine.
//
// A Stream delivers (Context, item) pairs to observers synchronously, on the
// caller's stack, in send order. There is no unsubscribe: a graph is wired
// once before the event loop starts and lives for the life of the process.
// Stateless operators (Map, Filter, StartWith) are lazy wrappers that
// subscribe upstream when they are subscribed; stateful operators subscribe
// upstream once at construction and publish through their own Broadcast, so
// every accumulator is owned by exactly one operator instance.
//
// The engine is single-threaded. Feedback edges must go through a Queue,
// which defers items to the next tick; a Broadcast that is sent to while it
// is still dispatching panics.
package reactive

import (
	"errors"
	"time"
)

// ErrReentrantSend is the panic value raised when a Broadcast is sent to
// from inside one of its own observers.
var ErrReentrantSend = errors.New("reactive: re-entrant send")

// Context is the ambient metadata carried alongside every item.
type Context struct {
	Tick uint64    // loop iteration that produced the item
	Seq  uint64    // arrival order of the raw input
	At   time.Time // logical time stamped by the loop
}

// Observer receives items from a Stream.
type Observer[T any] func(ctx Context, item T)

// Stream is a push-only sequence that can only be consumed by subscribing.
type Stream[T any] interface {
	Subscribe(o Observer[T])
}

// StreamFunc adapts a subscribe function to the Stream interface.
type StreamFunc[T any] func(o Observer[T])

// Subscribe calls f(o).
func (f StreamFunc[T]) Subscribe(o Observer[T]) {
	f(o)
}

// Broadcast is the multicast hub every stateful operator publishes through.
type Broadcast[T any] struct {
	observers   []Observer[T]
	dispatching bool
}

// NewBroadcast creates a hub with no observers.
func NewBroadcast[T any]() *Broadcast[T] {
	return &Broadcast[T]{}
}

// Subscribe registers o for every item sent after this call.
func (b *Broadcast[T]) Subscribe(o Observer[T]) {
	b.observers = append(b.observers, o)
}

// Send delivers item to every registered observer in registration order.
// Observers registered while Send is running see the next item, not this one.
// Items sent with no observers are dropped.
func (b *Broadcast[T]) Send(ctx Context, item T) {
	if b.dispatching {
		panic(ErrReentrantSend)
	}
	b.dispatching = true
	defer func() { b.dispatching = false }()

	observers := b.observers
	for _, o := range observers {
		o(ctx, item)
	}
}

// Len returns the number of registered observers.
func (b *Broadcast[T]) Len() int {
	return len(b.observers)
}

// Collect subscribes to s and appends every item to the returned slice.
// It is meant for tests and for the composition point's snapshot reads.
func Collect[T any](s Stream[T]) *[]T {
	items := &[]T{}
	s.Subscribe(func(_ Context, x T) {
		*items = append(*items, x)
	})
	return items
}
