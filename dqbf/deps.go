package dqbf

import mapset "github.com/deckarep/golang-set/v2"

// Dependencies is the dependency relation of spec.md §3: for each
// existential id, the set of universal ids it may depend on, stored both
// as a set (membership tests) and an insertion-ordered sequence
// (deterministic iteration).
type Dependencies struct {
	set   map[int]mapset.Set[int]
	order map[int][]int
}

// NewDependencies builds a Dependencies relation from an existential id ->
// ordered universal ids map, such as the one dqcir.Formula produces.
func NewDependencies(raw map[int][]int) *Dependencies {
	d := &Dependencies{
		set:   make(map[int]mapset.Set[int], len(raw)),
		order: make(map[int][]int, len(raw)),
	}
	for e, us := range raw {
		d.set[e] = mapset.NewSet[int](us...)
		ordered := make([]int, len(us))
		copy(ordered, us)
		d.order[e] = ordered
	}
	return d
}

// Of returns the ordered dependency sequence for e (nil if e has none).
func (d *Dependencies) Of(e int) []int {
	return d.order[e]
}

// Contains reports whether u is in e's dependency set.
func (d *Dependencies) Contains(e, u int) bool {
	s, ok := d.set[e]
	return ok && s.Contains(u)
}

// Restrict filters assignment down to the literals whose variable lies in
// dep(e), preserving order.
func (d *Dependencies) Restrict(e int, assignment []int) []int {
	out := make([]int, 0, len(assignment))
	for _, lit := range assignment {
		v := lit
		if v < 0 {
			v = -v
		}
		if d.Contains(e, v) {
			out = append(out, lit)
		}
	}
	return out
}
