package accordion

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/ziadkadry99/coursesite/internal/content"
	"github.com/ziadkadry99/coursesite/internal/motion"
)

func sessionsN(n int) []content.Session {
	out := make([]content.Session, n)
	for i := range out {
		out[i] = content.Session{ID: i + 1, Title: "s"}
	}
	return out
}

// TestAccordionProperties checks the toggle invariants over arbitrary
// sequences of toggles.
func TestAccordionProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	// Property: at most one session is expanded after every toggle.
	properties.Property("at most one expanded", prop.ForAll(
		func(ids []int) bool {
			a := New(sessionsN(5), motion.NewManualClock(t0))
			for _, id := range ids {
				a.Toggle(id)
				open := 0
				for _, v := range a.Panels() {
					if v.Expanded {
						open++
					}
					if (v.Detail != nil) != v.Expanded {
						return false
					}
				}
				if open > 1 {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(1, 5)),
	))

	// Property: toggling the same id twice restores the previous state.
	properties.Property("double toggle round trip", prop.ForAll(
		func(prefix []int, x int) bool {
			a := New(sessionsN(5), motion.NewManualClock(t0))
			for _, id := range prefix {
				a.Toggle(id)
			}
			before, _ := a.Expanded()
			a.Toggle(x)
			a.Toggle(x)
			after, _ := a.Expanded()
			if before == x {
				return after == x
			}
			return after == None
		},
		gen.SliceOf(gen.IntRange(1, 5)),
		gen.IntRange(1, 5),
	))

	// Property: toggle(x); toggle(y) with x != y leaves only y expanded.
	properties.Property("switch leaves only the second", prop.ForAll(
		func(x, y int) bool {
			if x == y {
				return true
			}
			a := New(sessionsN(5), motion.NewManualClock(t0))
			a.Toggle(x)
			a.Toggle(y)
			return a.IsExpanded(y) && !a.IsExpanded(x)
		},
		gen.IntRange(1, 5),
		gen.IntRange(1, 5),
	))

	properties.TestingRun(t)
}
