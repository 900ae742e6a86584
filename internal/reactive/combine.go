package reactive

// Pair is the default result of combining two streams.
type Pair[A, B any] struct {
	First  A
	Second B
}

// PairOf builds a Pair; it is the usual combiner for CombineLatest and
// WithLatestFrom.
func PairOf[A, B any](a A, b B) Pair[A, B] {
	return Pair[A, B]{First: a, Second: b}
}

// CombineLatest remembers the latest item from each side and emits
// f(latestA, latestB) whenever either side produces an item, but only once
// both sides have produced at least one. The emitted item carries the
// Context of the item that triggered it.
func CombineLatest[A, B, R any](a Stream[A], b Stream[B], f func(A, B) R) *Broadcast[R] {
	out := NewBroadcast[R]()
	var (
		lastA A
		lastB B
		haveA bool
		haveB bool
	)
	a.Subscribe(func(ctx Context, x A) {
		lastA, haveA = x, true
		if haveB {
			out.Send(ctx, f(lastA, lastB))
		}
	})
	b.Subscribe(func(ctx Context, x B) {
		lastB, haveB = x, true
		if haveA {
			out.Send(ctx, f(lastA, lastB))
		}
	})
	return out
}

// WithLatestFrom emits f(a, latestB) for every item a, sampling b passively.
// Nothing is emitted until b has produced a value. b is subscribed before a
// so that when both derive from the same source, a sees b's update for the
// same item.
func WithLatestFrom[A, B, R any](a Stream[A], b Stream[B], f func(A, B) R) *Broadcast[R] {
	out := NewBroadcast[R]()
	var (
		lastB B
		haveB bool
	)
	b.Subscribe(func(_ Context, x B) {
		lastB, haveB = x, true
	})
	a.Subscribe(func(ctx Context, x A) {
		if haveB {
			out.Send(ctx, f(x, lastB))
		}
	})
	return out
}

// Merge interleaves the items of all streams in arrival order. Each item
// keeps the Context it was sent with.
func Merge[T any](streams ...Stream[T]) *Broadcast[T] {
	out := NewBroadcast[T]()
	for _, s := range streams {
		s.Subscribe(out.Send)
	}
	return out
}
