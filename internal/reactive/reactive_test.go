package reactive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ctxAt(seq uint64) Context {
	return Context{Tick: seq, Seq: seq}
}

func TestBroadcastDeliversInRegistrationOrder(t *testing.T) {
	hub := NewBroadcast[int]()
	var got []string
	hub.Subscribe(func(_ Context, x int) { got = append(got, "a") })
	hub.Subscribe(func(_ Context, x int) { got = append(got, "b") })

	hub.Send(ctxAt(1), 1)
	hub.Send(ctxAt(2), 2)

	assert.Equal(t, []string{"a", "b", "a", "b"}, got)
}

func TestBroadcastDropsWithoutObservers(t *testing.T) {
	hub := NewBroadcast[int]()
	hub.Send(ctxAt(1), 1)

	got := Collect[int](hub)
	hub.Send(ctxAt(2), 2)

	assert.Equal(t, []int{2}, *got)
}

func TestBroadcastLateSubscriberSeesNextItem(t *testing.T) {
	hub := NewBroadcast[int]()
	var late []int
	hub.Subscribe(func(_ Context, x int) {
		if x == 1 {
			hub.Subscribe(func(_ Context, y int) { late = append(late, y) })
		}
	})

	hub.Send(ctxAt(1), 1)
	hub.Send(ctxAt(2), 2)

	assert.Equal(t, []int{2}, late)
}

func TestBroadcastPanicsOnReentrantSend(t *testing.T) {
	hub := NewBroadcast[int]()
	hub.Subscribe(func(ctx Context, x int) {
		if x < 3 {
			hub.Send(ctx, x+1)
		}
	})

	assert.PanicsWithValue(t, ErrReentrantSend, func() {
		hub.Send(ctxAt(1), 1)
	})

	// The hub is usable again after the panic unwound.
	got := Collect[int](hub)
	hub.Send(ctxAt(2), 5)
	assert.Equal(t, []int{5}, *got)
}

func TestMapFilter(t *testing.T) {
	hub := NewBroadcast[int]()
	evens := Filter(hub, func(x int) bool { return x%2 == 0 })
	got := Collect(Map(evens, func(x int) string { return string(rune('a' + x)) }))

	for i := 0; i < 6; i++ {
		hub.Send(ctxAt(uint64(i)), i)
	}

	assert.Equal(t, []string{"a", "c", "e"}, *got)
}

func TestMapKeepsContext(t *testing.T) {
	hub := NewBroadcast[int]()
	var ctxs []uint64
	MapCtx(hub, func(ctx Context, x int) int { return x }).Subscribe(func(ctx Context, _ int) {
		ctxs = append(ctxs, ctx.Seq)
	})

	hub.Send(ctxAt(7), 1)
	hub.Send(ctxAt(9), 1)

	assert.Equal(t, []uint64{7, 9}, ctxs)
}

func TestFilterMap(t *testing.T) {
	hub := NewBroadcast[string]()
	got := Collect(FilterMap(hub, func(s string) (int, bool) { return len(s), s != "" }))

	hub.Send(ctxAt(1), "ab")
	hub.Send(ctxAt(2), "")
	hub.Send(ctxAt(3), "abcd")

	assert.Equal(t, []int{2, 4}, *got)
}

func TestFlattenKeepsSliceOrder(t *testing.T) {
	src := NewBroadcast[[]int]()
	got := Collect(Flatten[int](src))

	src.Send(ctxAt(1), []int{1, 2})
	src.Send(ctxAt(2), nil)
	src.Send(ctxAt(3), []int{3})

	assert.Equal(t, []int{1, 2, 3}, *got)
}

func TestFoldEmitsAccumulator(t *testing.T) {
	hub := NewBroadcast[int]()
	sum := Fold(hub, "", func(acc string, x int) string {
		return acc + string(rune('0'+x))
	})
	got := Collect[string](sum)

	hub.Send(ctxAt(1), 1)
	hub.Send(ctxAt(2), 2)
	hub.Send(ctxAt(3), 3)

	assert.Equal(t, []string{"1", "12", "123"}, *got)
	assert.Equal(t, "123", sum.Value())
}

func TestFoldStateIsSharedAcrossObservers(t *testing.T) {
	hub := NewBroadcast[int]()
	count := Fold(hub, 0, func(acc, _ int) int { return acc + 1 })
	a := Collect[int](count)
	b := Collect[int](count)

	hub.Send(ctxAt(1), 0)
	hub.Send(ctxAt(2), 0)

	assert.Equal(t, []int{1, 2}, *a)
	assert.Equal(t, []int{1, 2}, *b)
}

func TestDistinctUntilChanged(t *testing.T) {
	hub := NewBroadcast[int]()
	got := Collect[int](DistinctUntilChanged[int](hub))

	for i, x := range []int{1, 1, 2, 2, 2, 3} {
		hub.Send(ctxAt(uint64(i)), x)
	}

	assert.Equal(t, []int{1, 2, 3}, *got)
}

func TestDistinctUntilChangedAllowsReturnToEarlierValue(t *testing.T) {
	hub := NewBroadcast[int]()
	got := Collect[int](DistinctUntilChanged[int](hub))

	for i, x := range []int{1, 2, 1, 1} {
		hub.Send(ctxAt(uint64(i)), x)
	}

	assert.Equal(t, []int{1, 2, 1}, *got)
}

func TestDistinctUntilChangedFunc(t *testing.T) {
	hub := NewBroadcast[[]int]()
	sameLen := func(a, b []int) bool { return len(a) == len(b) }
	got := Collect[[]int](DistinctUntilChangedFunc[[]int](hub, sameLen))

	hub.Send(ctxAt(1), []int{1})
	hub.Send(ctxAt(2), []int{2})
	hub.Send(ctxAt(3), []int{1, 2})

	assert.Equal(t, [][]int{{1}, {1, 2}}, *got)
}

func TestStartWithSeedsEachObserver(t *testing.T) {
	hub := NewBroadcast[int]()
	s := StartWith[int](hub, 0)
	a := Collect(s)
	hub.Send(ctxAt(1), 1)
	b := Collect(s)
	hub.Send(ctxAt(2), 2)

	assert.Equal(t, []int{0, 1, 2}, *a)
	assert.Equal(t, []int{0, 2}, *b)
}

func TestBufferEmitsFullBatchesOnly(t *testing.T) {
	hub := NewBroadcast[int]()
	got := Collect[[]int](Buffer[int](hub, 3))

	for i := 1; i <= 7; i++ {
		hub.Send(ctxAt(uint64(i)), i)
	}

	assert.Equal(t, [][]int{{1, 2, 3}, {4, 5, 6}}, *got)
}

func TestBufferRejectsNonPositiveSize(t *testing.T) {
	assert.Panics(t, func() {
		Buffer[int](NewBroadcast[int](), 0)
	})
}

func TestCombineLatestWaitsForBothSides(t *testing.T) {
	a := NewBroadcast[int]()
	b := NewBroadcast[string]()
	got := Collect[Pair[int, string]](CombineLatest[int, string](a, b, PairOf[int, string]))

	a.Send(ctxAt(1), 1)
	a.Send(ctxAt(2), 2)
	require.Empty(t, *got)

	b.Send(ctxAt(3), "x")
	assert.Equal(t, []Pair[int, string]{{2, "x"}}, *got)

	a.Send(ctxAt(4), 3)
	b.Send(ctxAt(5), "y")
	assert.Equal(t, []Pair[int, string]{{2, "x"}, {3, "x"}, {3, "y"}}, *got)
}

func TestCombineLatestUsesTriggeringContext(t *testing.T) {
	a := NewBroadcast[int]()
	b := NewBroadcast[int]()
	var seqs []uint64
	CombineLatest[int, int](a, b, func(x, y int) int { return x + y }).Subscribe(func(ctx Context, _ int) {
		seqs = append(seqs, ctx.Seq)
	})

	a.Send(ctxAt(1), 1)
	b.Send(ctxAt(2), 1)
	a.Send(ctxAt(3), 1)

	assert.Equal(t, []uint64{2, 3}, seqs)
}

func TestWithLatestFromSamplesPassively(t *testing.T) {
	a := NewBroadcast[int]()
	b := NewBroadcast[string]()
	got := Collect[Pair[int, string]](WithLatestFrom[int, string](a, b, PairOf[int, string]))

	a.Send(ctxAt(1), 1)
	b.Send(ctxAt(2), "x")
	b.Send(ctxAt(3), "y")
	require.Empty(t, *got)

	a.Send(ctxAt(4), 2)
	assert.Equal(t, []Pair[int, string]{{2, "y"}}, *got)
}

func TestWithLatestFromSameSourceSeesCurrentItem(t *testing.T) {
	src := NewBroadcast[int]()
	doubled := Map[int](src, func(x int) int { return x * 2 })
	got := Collect[Pair[int, int]](WithLatestFrom[int, int](src, doubled, PairOf[int, int]))

	src.Send(ctxAt(1), 1)
	src.Send(ctxAt(2), 5)

	assert.Equal(t, []Pair[int, int]{{1, 2}, {5, 10}}, *got)
}

func TestMergeInterleavesInArrivalOrder(t *testing.T) {
	a := NewBroadcast[string]()
	b := NewBroadcast[string]()
	var got []string
	var seqs []uint64
	Merge[string](a, b).Subscribe(func(ctx Context, x string) {
		got = append(got, x)
		seqs = append(seqs, ctx.Seq)
	})

	a.Send(ctxAt(1), "a1")
	b.Send(ctxAt(2), "b1")
	b.Send(ctxAt(3), "b2")
	a.Send(ctxAt(4), "a2")

	assert.Equal(t, []string{"a1", "b1", "b2", "a2"}, got)
	assert.Equal(t, []uint64{1, 2, 3, 4}, seqs)
}

type letter uint8

const (
	letterA letter = iota
	letterB
	letterC
	numLetters
)

type tagged struct {
	key letter
	n   int
}

func TestGroupByAnnouncesEachKeyOnce(t *testing.T) {
	hub := NewBroadcast[tagged]()
	groups := GroupBy(hub, int(numLetters),
		func(x tagged) letter { return x.key },
		func(x tagged) int { return x.n })

	var announced []letter
	perKey := map[letter][]int{}
	groups.Subscribe(func(_ Context, g *Grouped[letter, int]) {
		announced = append(announced, g.Key)
		key := g.Key
		g.Subscribe(func(_ Context, n int) { perKey[key] = append(perKey[key], n) })
	})

	keys := []letter{letterA, letterB, letterA, letterC, letterA}
	for i, k := range keys {
		hub.Send(ctxAt(uint64(i)), tagged{key: k, n: i})
	}

	assert.Equal(t, []letter{letterA, letterB, letterC}, announced)
	assert.Equal(t, []int{0, 2, 4}, perKey[letterA])
	assert.Equal(t, []int{1}, perKey[letterB])
	assert.Equal(t, []int{3}, perKey[letterC])
}

func TestGroupByPanicsOutsideArena(t *testing.T) {
	hub := NewBroadcast[tagged]()
	GroupBy(hub, 2, func(x tagged) letter { return x.key }, func(x tagged) int { return x.n })

	assert.Panics(t, func() {
		hub.Send(ctxAt(1), tagged{key: letterC})
	})
}

func TestGroupBySwitchMergePreservesOrder(t *testing.T) {
	hub := NewBroadcast[tagged]()
	groups := GroupBy(hub, int(numLetters),
		func(x tagged) letter { return x.key },
		func(x tagged) tagged { return x })

	branch := func(k letter) Stream[tagged] {
		mine := Filter[*Grouped[letter, tagged]](groups, func(g *Grouped[letter, tagged]) bool { return g.Key == k })
		return Switch(Map(mine, Inner[letter, tagged]))
	}
	merged := Merge(branch(letterA), branch(letterB), branch(letterC))

	var got []tagged
	merged.Subscribe(func(_ Context, x tagged) { got = append(got, x) })

	keys := []letter{letterA, letterB, letterA, letterC, letterA}
	for i, k := range keys {
		hub.Send(ctxAt(uint64(i)), tagged{key: k, n: i})
	}

	require.Len(t, got, len(keys))
	for i, x := range got {
		assert.Equal(t, i, x.n, "item %d out of order", i)
		assert.Equal(t, keys[i], x.key)
	}
}

func TestSwitchFollowsNewestInner(t *testing.T) {
	outer := NewBroadcast[Stream[int]]()
	first := NewBroadcast[int]()
	second := NewBroadcast[int]()
	got := Collect[int](Switch[int](outer))

	outer.Send(ctxAt(1), first)
	first.Send(ctxAt(2), 1)
	outer.Send(ctxAt(3), second)
	first.Send(ctxAt(4), 2)
	second.Send(ctxAt(5), 3)

	assert.Equal(t, []int{1, 3}, *got)
}

func TestQueueDefersToFlush(t *testing.T) {
	q := NewQueue[int]()
	got := Collect[int](q)

	q.Push(1)
	q.Push(2)
	require.Empty(t, *got)
	require.Equal(t, 2, q.Pending())

	n := q.Flush(ctxAt(1))
	assert.Equal(t, 2, n)
	assert.Equal(t, []int{1, 2}, *got)
	assert.Equal(t, 0, q.Pending())
}

func TestQueuePushDuringFlushWaitsForNextFlush(t *testing.T) {
	q := NewQueue[int]()
	var got []int
	q.Subscribe(func(_ Context, x int) {
		got = append(got, x)
		if x < 3 {
			q.Push(x + 1)
		}
	})

	q.Push(1)
	q.Flush(ctxAt(1))
	assert.Equal(t, []int{1}, got)

	q.Flush(ctxAt(2))
	q.Flush(ctxAt(3))
	q.Flush(ctxAt(4))
	assert.Equal(t, []int{1, 2, 3}, got)
}

func TestDeterministicAcrossRuns(t *testing.T) {
	run := func() []Pair[int, int] {
		src := NewBroadcast[int]()
		sum := Fold[int](src, 0, func(acc, x int) int { return acc + x })
		evens := Filter[int](src, func(x int) bool { return x%2 == 0 })
		got := Collect[Pair[int, int]](CombineLatest[int, int](sum, evens, PairOf[int, int]))
		for i, x := range []int{3, 4, 1, 6, 6, 2} {
			src.Send(ctxAt(uint64(i)), x)
		}
		return *got
	}

	assert.Equal(t, run(), run())
}
