package reactive

// Queue defers items to the next tick. Items pushed while a tick is being
// processed are held until Flush, which sends them in FIFO order. Items
// pushed while Flush is running are kept for the following Flush, which is
// what breaks feedback cycles between a hub and its own observers.
type Queue[T any] struct {
	*Broadcast[T]
	pending []T
}

// NewQueue creates an empty queue.
func NewQueue[T any]() *Queue[T] {
	return &Queue[T]{Broadcast: NewBroadcast[T]()}
}

// Push appends item to the pending batch.
func (q *Queue[T]) Push(item T) {
	q.pending = append(q.pending, item)
}

// Pending returns the number of items waiting for the next Flush.
func (q *Queue[T]) Pending() int {
	return len(q.pending)
}

// Flush sends the pending batch with ctx and returns how many items it sent.
func (q *Queue[T]) Flush(ctx Context) int {
	batch := q.pending
	q.pending = nil
	for _, item := range batch {
		q.Send(ctx, item)
	}
	return len(batch)
}
