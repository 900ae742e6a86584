package input

import (
	tea "github.com/charmbracelet/bubbletea"

	"stockdash/internal/reactive"
)

// Kind is the kind of raw input event
type Kind uint8

const (
	KindTick Kind = iota
	KindKey
	KindMouse
)

func (k Kind) String() string {
	switch k {
	case KindTick:
		return "tick"
	case KindKey:
		return "key"
	case KindMouse:
		return "mouse"
	default:
		return "unknown"
	}
}

// Event is one raw input event as delivered by the terminal loop
type Event struct {
	Kind  Kind
	Key   tea.KeyMsg
	Mouse tea.MouseMsg
}

// Tick builds a timer tick event
func Tick() Event {
	return Event{Kind: KindTick}
}

// Key builds a key press event
func Key(msg tea.KeyMsg) Event {
	return Event{Kind: KindKey, Key: msg}
}

// Mouse builds a pointer event
func Mouse(msg tea.MouseMsg) Event {
	return Event{Kind: KindMouse, Mouse: msg}
}

// IsClick reports whether the event is a left-button release. X10 mouse
// reporting does not say which button was released, so an unknown-button
// release counts too.
func (e Event) IsClick() bool {
	if e.Kind != KindMouse || e.Mouse.Action != tea.MouseActionRelease {
		return false
	}
	return e.Mouse.Button == tea.MouseButtonLeft || e.Mouse.Button == tea.MouseButtonNone
}

func (e Event) String() string {
	switch e.Kind {
	case KindKey:
		return "key " + e.Key.String()
	case KindMouse:
		return "mouse " + e.Mouse.String()
	default:
		return e.Kind.String()
	}
}

// Partition splits the raw stream into independently consumable branches
type Partition uint8

const (
	PartitionTick Partition = iota
	PartitionUser

	numPartitions
)

// PartitionOf classifies an event
func PartitionOf(e Event) Partition {
	if e.Kind == KindTick {
		return PartitionTick
	}
	return PartitionUser
}

// Split partitions raw input into the tick branch and the user-interaction
// branch. Each branch is a switch over the group_by sub-stream of its
// partition, so the raw hub is subscribed exactly once.
func Split(raw reactive.Stream[Event]) (ticks, user reactive.Stream[Event]) {
	groups := reactive.GroupBy(raw, int(numPartitions), PartitionOf, func(e Event) Event { return e })
	branch := func(p Partition) reactive.Stream[Event] {
		mine := reactive.Filter[*reactive.Grouped[Partition, Event]](groups, func(g *reactive.Grouped[Partition, Event]) bool {
			return g.Key == p
		})
		return reactive.Switch(reactive.Map(mine, reactive.Inner[Partition, Event]))
	}
	return branch(PartitionTick), branch(PartitionUser)
}
