package engine

import (
	"github.com/irifrance/gini"
	"github.com/irifrance/gini/z"
)

// Gini backs one propositional engine with github.com/irifrance/gini.
// It is used for both the counterexample engine and the expansion engine
// (spec.md §2): gini's internal variable table grows on demand
// (z.Vars.ensureInnerCap/ensureOuterCap), which the two engines need since
// rule-chain and expansion variables are minted continually during
// refinement, unlike a solver whose vocabulary is fixed at construction.
//
// Grounded on the teacher's own gini wrapper in marco/solver.go and
// marco/gini.go, which already convert between DIMACS-signed ints and
// z.Lit via z.Var(v).Pos()/Neg(); this uses the equivalent
// z.Dimacs2Lit/Lit.Dimacs round trip instead of hand-rolling the shift.
type Gini struct {
	g *gini.Gini
}

// NewGini returns an empty Gini-backed engine.
func NewGini() *Gini {
	return &Gini{g: gini.New()}
}

func (e *Gini) AddClause(lits []int) {
	for _, l := range lits {
		e.g.Add(z.Dimacs2Lit(l))
	}
	e.g.Add(z.LitNull)
}

func (e *Gini) Assume(lits []int) {
	ms := make([]z.Lit, len(lits))
	for i, l := range lits {
		ms[i] = z.Dimacs2Lit(l)
	}
	e.g.Assume(ms...)
}

// Phase is a documented no-op: gini's exported surface (inter.S / *Gini)
// has no public decision-polarity hook, only an internal, unexported
// heuristic in internal/xo/phases.go. The hint is advisory per spec.md
// §4.2, so ignoring it is a conforming implementation.
func (e *Gini) Phase(lit int) {}

func (e *Gini) Solve() Status {
	switch e.g.Solve() {
	case 1:
		return Sat
	case -1:
		return Unsat
	default:
		panic("gini engine: unexpected solve result for a call without a timeout")
	}
}

func (e *Gini) Val(v int) int {
	if e.g.Value(z.Dimacs2Lit(v)) {
		return v
	}
	return -v
}

func (e *Gini) Failed(assumed []int) []int {
	failed := e.g.Why(nil)
	inCore := make(map[int]bool, len(failed))
	for _, m := range failed {
		inCore[m.Dimacs()] = true
	}
	out := make([]int, 0, len(assumed))
	for _, l := range assumed {
		if inCore[l] {
			out = append(out, l)
		}
	}
	return out
}
