package reactive

// Map transforms every item with f.
func Map[T, U any](s Stream[T], f func(T) U) Stream[U] {
	return StreamFunc[U](func(o Observer[U]) {
		s.Subscribe(func(ctx Context, x T) {
			o(ctx, f(x))
		})
	})
}

// MapCtx is Map with access to the item's Context.
func MapCtx[T, U any](s Stream[T], f func(Context, T) U) Stream[U] {
	return StreamFunc[U](func(o Observer[U]) {
		s.Subscribe(func(ctx Context, x T) {
			o(ctx, f(ctx, x))
		})
	})
}

// Filter drops items for which keep returns false.
func Filter[T any](s Stream[T], keep func(T) bool) Stream[T] {
	return StreamFunc[T](func(o Observer[T]) {
		s.Subscribe(func(ctx Context, x T) {
			if keep(x) {
				o(ctx, x)
			}
		})
	})
}

// FilterMap applies f and forwards only the results reported as ok.
func FilterMap[T, U any](s Stream[T], f func(T) (U, bool)) Stream[U] {
	return StreamFunc[U](func(o Observer[U]) {
		s.Subscribe(func(ctx Context, x T) {
			if y, ok := f(x); ok {
				o(ctx, y)
			}
		})
	})
}

// Flatten emits the elements of every slice in order, each with the
// slice's Context.
func Flatten[T any](s Stream[[]T]) Stream[T] {
	return StreamFunc[T](func(o Observer[T]) {
		s.Subscribe(func(ctx Context, xs []T) {
			for _, x := range xs {
				o(ctx, x)
			}
		})
	})
}

// StartWith emits seed to each new observer before any upstream item.
func StartWith[T any](s Stream[T], seed T) Stream[T] {
	return StreamFunc[T](func(o Observer[T]) {
		o(Context{}, seed)
		s.Subscribe(o)
	})
}

// Folded is the hub returned by Fold. It owns the running accumulator.
type Folded[A any] struct {
	*Broadcast[A]
	acc A
}

// Value returns the current accumulator.
func (f *Folded[A]) Value() A {
	return f.acc
}

// Fold runs step over every item, starting from initial, and emits each new
// accumulator. The accumulator type may differ from the item type.
func Fold[T, A any](s Stream[T], initial A, step func(A, T) A) *Folded[A] {
	f := &Folded[A]{Broadcast: NewBroadcast[A](), acc: initial}
	s.Subscribe(func(ctx Context, x T) {
		f.acc = step(f.acc, x)
		f.Send(ctx, f.acc)
	})
	return f
}

// DistinctUntilChanged suppresses an item equal to the previously emitted
// one. The first item is always emitted.
func DistinctUntilChanged[T comparable](s Stream[T]) *Broadcast[T] {
	return DistinctUntilChangedFunc(s, func(a, b T) bool { return a == b })
}

// DistinctUntilChangedFunc is DistinctUntilChanged with a caller-supplied
// equality, for item types that are not comparable.
func DistinctUntilChangedFunc[T any](s Stream[T], equal func(a, b T) bool) *Broadcast[T] {
	out := NewBroadcast[T]()
	var last T
	seen := false
	s.Subscribe(func(ctx Context, x T) {
		if seen && equal(last, x) {
			return
		}
		last, seen = x, true
		out.Send(ctx, x)
	})
	return out
}

// Buffer collects items and emits them in batches of exactly n. A partial
// batch is never flushed. Each emitted slice is freshly allocated.
func Buffer[T any](s Stream[T], n int) *Broadcast[[]T] {
	if n <= 0 {
		panic("reactive: buffer size must be positive")
	}
	out := NewBroadcast[[]T]()
	buf := make([]T, 0, n)
	s.Subscribe(func(ctx Context, x T) {
		buf = append(buf, x)
		if len(buf) < n {
			return
		}
		batch := buf
		buf = make([]T, 0, n)
		out.Send(ctx, batch)
	})
	return out
}
