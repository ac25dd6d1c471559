package feed

import (
	"math"
	"sort"

	"spectrum-feed/internal/domain/entity"
)

// DefaultSlots is the number of sources a feed draws from.
const DefaultSlots = 4

// SelectorConfig controls source selection.
type SelectorConfig struct {
	// Slots is the maximum number of sources selected. Values below 1 mean DefaultSlots.
	Slots int
	// BalanceSides reserves a slot for the nearest source of each side
	// before filling the rest by distance.
	BalanceSides bool
}

// DefaultSelectorConfig returns four slots with side balancing enabled.
func DefaultSelectorConfig() SelectorConfig {
	return SelectorConfig{Slots: DefaultSlots, BalanceSides: true}
}

// Selector picks the sources closest to a query coordinate.
// It holds its own copy of the catalog and is safe for concurrent use.
type Selector struct {
	sources []entity.Source
	slots   int
	balance bool
}

// NewSelector returns a Selector over sources.
func NewSelector(sources []entity.Source, cfg SelectorConfig) *Selector {
	slots := cfg.Slots
	if slots < 1 {
		slots = DefaultSlots
	}
	cp := make([]entity.Source, len(sources))
	copy(cp, sources)
	return &Selector{sources: cp, slots: slots, balance: cfg.BalanceSides}
}

// Slots returns the configured slot count.
func (s *Selector) Slots() int {
	return s.slots
}

type rankedSource struct {
	src      entity.Source
	distance float64
}

// rank orders sources by (distance asc, id asc).
func rank(sources []entity.Source, at entity.Coordinate) []rankedSource {
	ranked := make([]rankedSource, len(sources))
	for i, src := range sources {
		d := src.DistanceTo(at)
		if math.IsNaN(d) {
			d = math.Inf(1)
		}
		ranked[i] = rankedSource{src: src, distance: d}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].distance != ranked[j].distance {
			return ranked[i].distance < ranked[j].distance
		}
		return ranked[i].src.ID < ranked[j].src.ID
	})
	return ranked
}

// SelectSources returns up to Slots sources nearest to (x, y) in ranking order.
//
// With side balancing, the nearest source of every side present in the
// catalog is chosen first (as long as slots remain) and the remaining slots
// go to the next nearest sources. The result is always ordered by
// (distance, id). An empty catalog yields an empty result.
func (s *Selector) SelectSources(x, y float64) []entity.Source {
	ranked := rank(s.sources, entity.Coordinate{X: x, Y: y})

	out := make([]entity.Source, 0, min(len(ranked), s.slots))
	if len(ranked) <= s.slots || !s.balance {
		for _, r := range ranked {
			if len(out) == s.slots {
				break
			}
			out = append(out, r.src)
		}
		return out
	}

	chosen := make([]bool, len(ranked))
	covered := make(map[entity.Side]bool, len(entity.Sides))
	count := 0
	for i, r := range ranked {
		if count == s.slots {
			break
		}
		if !covered[r.src.Side] {
			covered[r.src.Side] = true
			chosen[i] = true
			count++
		}
	}
	for i := range ranked {
		if count == s.slots {
			break
		}
		if !chosen[i] {
			chosen[i] = true
			count++
		}
	}

	for i, r := range ranked {
		if chosen[i] {
			out = append(out, r.src)
		}
	}
	return out
}
