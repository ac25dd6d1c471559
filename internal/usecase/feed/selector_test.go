package feed

import (
	"fmt"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spectrum-feed/internal/domain/entity"
)

func ids(sources []entity.Source) []string {
	out := make([]string, len(sources))
	for i, s := range sources {
		out[i] = s.ID
	}
	return out
}

// testCatalog is a small plane with every side represented.
var testCatalog = []entity.Source{
	{ID: "l1", Name: "Left One", Side: entity.SideLeft, X: -1, Y: 0},
	{ID: "l2", Name: "Left Two", Side: entity.SideLeft, X: -0.7, Y: 0.1},
	{ID: "l3", Name: "Left Three", Side: entity.SideLeft, X: -0.9, Y: -0.2},
	{ID: "c1", Name: "Center One", Side: entity.SideCenter, X: 0, Y: 0.5},
	{ID: "c2", Name: "Center Two", Side: entity.SideCenter, X: 0.1, Y: 0.3},
	{ID: "r1", Name: "Right One", Side: entity.SideRight, X: 1, Y: 0},
	{ID: "r2", Name: "Right Two", Side: entity.SideRight, X: 0.8, Y: -0.3},
}

func TestSelectSources_TwoSourceScenario(t *testing.T) {
	sel := NewSelector([]entity.Source{
		{ID: "A", Name: "A", Side: entity.SideLeft, X: 0, Y: 0},
		{ID: "B", Name: "B", Side: entity.SideRight, X: 10, Y: 10},
	}, DefaultSelectorConfig())

	assert.Equal(t, []string{"A", "B"}, ids(sel.SelectSources(1, 1)))
}

func TestSelectSources_EmptyCatalog(t *testing.T) {
	sel := NewSelector(nil, DefaultSelectorConfig())
	got := sel.SelectSources(0, 0)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSelectSources_FewerThanSlotsReturnsWholeCatalog(t *testing.T) {
	catalog := []entity.Source{
		{ID: "z", Name: "Z", Side: entity.SideLeft, X: 5, Y: 5},
		{ID: "y", Name: "Y", Side: entity.SideLeft, X: 1, Y: 1},
		{ID: "x", Name: "X", Side: entity.SideLeft, X: 3, Y: 3},
	}
	for _, balance := range []bool{true, false} {
		t.Run(fmt.Sprintf("balance=%v", balance), func(t *testing.T) {
			sel := NewSelector(catalog, SelectorConfig{Slots: 4, BalanceSides: balance})
			assert.Equal(t, []string{"y", "x", "z"}, ids(sel.SelectSources(0, 0)))
		})
	}
}

func TestSelectSources_StrictNearest(t *testing.T) {
	sel := NewSelector(testCatalog, SelectorConfig{Slots: 4, BalanceSides: false})

	// (-1, 0): all three LEFT sources are closer than any other.
	assert.Equal(t, []string{"l1", "l3", "l2", "c1"}, ids(sel.SelectSources(-1, 0)))
}

func TestSelectSources_BalancedCoversEverySide(t *testing.T) {
	sel := NewSelector(testCatalog, DefaultSelectorConfig())

	// nearest LEFT, nearest CENTER, nearest RIGHT, then the next nearest overall,
	// output in distance order.
	got := sel.SelectSources(-1, 0)
	require.Len(t, got, 4)

	sides := map[entity.Side]bool{}
	for _, s := range got {
		sides[s.Side] = true
	}
	assert.True(t, sides[entity.SideLeft])
	assert.True(t, sides[entity.SideCenter])
	assert.True(t, sides[entity.SideRight])
	assert.Equal(t, []string{"l1", "l3", "c1", "r2"}, ids(got))
}

func TestSelectSources_BalancedWithTwoSlots(t *testing.T) {
	sel := NewSelector(testCatalog, SelectorConfig{Slots: 2, BalanceSides: true})

	// Only two slots: nearest LEFT then nearest CENTER in ranking order.
	assert.Equal(t, []string{"l1", "c1"}, ids(sel.SelectSources(-1, 0)))
}

func TestSelectSources_TieBreakByID(t *testing.T) {
	sel := NewSelector([]entity.Source{
		{ID: "b", Name: "B", Side: entity.SideLeft, X: 1, Y: 0},
		{ID: "a", Name: "A", Side: entity.SideLeft, X: -1, Y: 0},
		{ID: "c", Name: "C", Side: entity.SideLeft, X: 0, Y: 1},
	}, SelectorConfig{Slots: 2})

	assert.Equal(t, []string{"a", "b"}, ids(sel.SelectSources(0, 0)))
}

func TestSelectSources_NaNQueryIsTotal(t *testing.T) {
	sel := NewSelector(testCatalog, DefaultSelectorConfig())

	var got []entity.Source
	assert.NotPanics(t, func() { got = sel.SelectSources(math.NaN(), 0) })
	assert.Len(t, got, 4)
	// every distance is +Inf, so ranking falls back to id order within the balance rule
	assert.Equal(t, []string{"c1", "c2", "l1", "r1"}, ids(got))
}

func TestSelectSources_DefaultSlots(t *testing.T) {
	sel := NewSelector(testCatalog, SelectorConfig{Slots: 0})
	assert.Equal(t, DefaultSlots, sel.Slots())
	assert.Len(t, sel.SelectSources(0, 0), DefaultSlots)
}

func TestNewSelector_CopiesCatalog(t *testing.T) {
	catalog := []entity.Source{{ID: "a", Name: "A", Side: entity.SideLeft}}
	sel := NewSelector(catalog, DefaultSelectorConfig())
	catalog[0].ID = "mutated"

	assert.Equal(t, []string{"a"}, ids(sel.SelectSources(0, 0)))
}

// Properties checked over a grid of query points.
func TestSelectSources_Properties(t *testing.T) {
	inCatalog := map[string]bool{}
	for _, s := range testCatalog {
		inCatalog[s.ID] = true
	}

	for _, balance := range []bool{true, false} {
		sel := NewSelector(testCatalog, SelectorConfig{Slots: 4, BalanceSides: balance})
		for x := -2.0; x <= 2.0; x += 0.25 {
			for y := -2.0; y <= 2.0; y += 0.25 {
				got := sel.SelectSources(x, y)

				require.LessOrEqual(t, len(got), 4)
				seen := map[string]bool{}
				for _, s := range got {
					require.True(t, inCatalog[s.ID], "unknown source %s", s.ID)
					require.False(t, seen[s.ID], "duplicate source %s at (%g,%g)", s.ID, x, y)
					seen[s.ID] = true
				}

				// ranking order
				at := entity.Coordinate{X: x, Y: y}
				for i := 1; i < len(got); i++ {
					prev, cur := got[i-1].DistanceTo(at), got[i].DistanceTo(at)
					require.True(t, prev < cur || (prev == cur && got[i-1].ID < got[i].ID),
						"out of order at (%g,%g): %v", x, y, ids(got))
				}

				if diff := cmp.Diff(got, sel.SelectSources(x, y)); diff != "" {
					t.Fatalf("non-deterministic at (%g,%g) (-first +second):\n%s", x, y, diff)
				}
			}
		}
	}
}
