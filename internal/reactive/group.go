package reactive

import "fmt"

// Enum is the set of key types GroupBy accepts: small integer enumerations
// that double as arena indexes.
type Enum interface {
	~int | ~int8 | ~int16 | ~int32 | ~uint8 | ~uint16 | ~uint32
}

// Grouped is the sub-stream GroupBy creates for one key.
type Grouped[K Enum, V any] struct {
	Key K
	hub *Broadcast[V]
}

// Subscribe registers o on the group's hub.
func (g *Grouped[K, V]) Subscribe(o Observer[V]) {
	g.hub.Subscribe(o)
}

// GroupBy routes every item to the sub-stream for key(item). The first time
// a key is seen its sub-stream is created and emitted downstream, then the
// item is pushed into it; later items with that key go straight to the
// existing sub-stream without re-announcing it.
//
// Sub-streams live in a fixed arena of size entries and are never torn
// down. A key outside [0, size) panics.
func GroupBy[T any, K Enum, V any](s Stream[T], size int, key func(T) K, value func(T) V) *Broadcast[*Grouped[K, V]] {
	out := NewBroadcast[*Grouped[K, V]]()
	arena := make([]*Grouped[K, V], size)
	s.Subscribe(func(ctx Context, x T) {
		k := key(x)
		idx := int(k)
		if idx < 0 || idx >= size {
			panic(fmt.Sprintf("reactive: group key %d outside arena of %d", idx, size))
		}
		g := arena[idx]
		if g == nil {
			g = &Grouped[K, V]{Key: k, hub: NewBroadcast[V]()}
			arena[idx] = g
			out.Send(ctx, g)
		}
		g.hub.Send(ctx, value(x))
	})
	return out
}

// Inner widens a grouped sub-stream to a plain Stream so it can feed Switch.
func Inner[K Enum, V any](g *Grouped[K, V]) Stream[V] {
	return g
}

// Switch flattens a stream of streams, always forwarding from the most
// recently received inner stream. Earlier inner streams stay subscribed but
// are gated off by a generation counter, so they go inert without needing
// an unsubscribe primitive.
func Switch[T any](s Stream[Stream[T]]) *Broadcast[T] {
	out := NewBroadcast[T]()
	var current uint64
	s.Subscribe(func(_ Context, inner Stream[T]) {
		current++
		gen := current
		inner.Subscribe(func(ctx Context, x T) {
			if gen == current {
				out.Send(ctx, x)
			}
		})
	})
	return out
}
