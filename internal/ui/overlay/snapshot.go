package overlay

import (
	"stockdash/internal/domain"
	"stockdash/internal/reactive"
)

// States is the Active/Inactive flag of every target
type States [domain.NumTargets]domain.OverlayState

// Active returns the active overlay, if any
func (s States) Active() domain.Focus {
	for t, st := range s {
		if st == domain.Active {
			return domain.Focus{Target: domain.UiTarget(t), Set: true}
		}
	}
	return domain.Focus{}
}

// Snapshot folds transitions into the per-target state table
func Snapshot(changes reactive.Stream[domain.OverlayChange]) *reactive.Folded[States] {
	return reactive.Fold(changes, States{}, func(s States, c domain.OverlayChange) States {
		s[c.Target] = c.State
		return s
	})
}

// Focused derives the committed active overlay, emitting only when it changes
func Focused(states reactive.Stream[States]) *reactive.Broadcast[domain.Focus] {
	return reactive.DistinctUntilChanged(reactive.Map(states, States.Active))
}

// PerTarget splits transitions by target. They are grouped once; each
// Target call selects one group.
type PerTarget struct {
	groups *reactive.Broadcast[*reactive.Grouped[domain.UiTarget, domain.OverlayState]]
}

func NewPerTarget(changes reactive.Stream[domain.OverlayChange]) *PerTarget {
	return &PerTarget{
		groups: reactive.GroupBy(changes, int(domain.NumTargets),
			func(c domain.OverlayChange) domain.UiTarget { return c.Target },
			func(c domain.OverlayChange) domain.OverlayState { return c.State }),
	}
}

// Target returns the distinct states of target
func (p *PerTarget) Target(target domain.UiTarget) *reactive.Broadcast[domain.OverlayState] {
	mine := reactive.Filter[*reactive.Grouped[domain.UiTarget, domain.OverlayState]](p.groups,
		func(g *reactive.Grouped[domain.UiTarget, domain.OverlayState]) bool { return g.Key == target })
	return reactive.DistinctUntilChanged(reactive.Switch(reactive.Map(mine, reactive.Inner[domain.UiTarget, domain.OverlayState])))
}
