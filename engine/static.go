package engine

import (
	"github.com/crillab/gophersat/solver"
)

// Static backs a propositional engine whose variable vocabulary is fixed
// at construction, using github.com/crillab/gophersat/solver. It is used
// only by dqbf.DetectEquivalentExistentials, the one place in the
// algorithm that bootstraps a fresh, one-off solver from the frozen CNF
// matrix (mirroring dqbf_solver.py's
// detection_solver = SAT(bootstrap_with=self.matrix)) rather than
// incrementally growing a solver's vocabulary across a refinement loop.
//
// Grounded on marco/gophersat-solver.go's use of solver.ParseSlice plus
// AppendClause, and on the headroom-reservation pattern in
// crillab-gophersat/explain/mus.go's MUSDeletion (pb2.NbVars +=
// pb2.nbClauses before solver.New), applied here to reserve room for the
// per-pair assumption variables the equivalence detector allocates.
type Static struct {
	s *solver.Solver
}

// NewStatic builds a Static engine from clauses over variables 1..nbVars,
// reserving extraVars additional, as-yet-unused variable slots above
// nbVars for the caller to allocate assumption variables into.
func NewStatic(clauses [][]int, nbVars, extraVars int) *Static {
	pb := solver.ParseSlice(clauses)
	if pb.NbVars < nbVars+extraVars {
		pb.NbVars = nbVars + extraVars
	}
	// solver.New takes its per-variable binding table from pb.Model, which
	// ParseSlice sized for the parsed vocabulary only; grow it to match.
	for len(pb.Model) < pb.NbVars {
		pb.Model = append(pb.Model, 0)
	}
	return &Static{s: solver.New(pb)}
}

func (e *Static) AddClause(lits []int) {
	ls := make([]solver.Lit, len(lits))
	for i, l := range lits {
		ls[i] = solver.IntToLit(int32(l))
	}
	e.s.AppendClause(solver.NewClause(ls))
}

// Assume records the assumption set for the following Solve, following
// the s.Assume(lits); s.Solve() pattern from MUSDeletion.
func (e *Static) Assume(lits []int) {
	ls := make([]solver.Lit, len(lits))
	for i, l := range lits {
		ls[i] = solver.IntToLit(int32(l))
	}
	e.s.Assume(ls)
}

// Phase is a no-op: equivalence detection never relies on polarity hints.
func (e *Static) Phase(lit int) {}

func (e *Static) Solve() Status {
	switch e.s.Solve() {
	case solver.Sat:
		return Sat
	case solver.Unsat:
		return Unsat
	default:
		panic("static engine: solve did not reach a definite verdict")
	}
}

func (e *Static) Val(v int) int {
	model := e.s.Model()
	if model[v-1] {
		return v
	}
	return -v
}

// Failed has no cheap conflict-core extraction in gophersat's solver
// package; the equivalence detector never needs a minimized core (it only
// checks Solve's verdict), so this conservatively returns assumed
// unchanged.
func (e *Static) Failed(assumed []int) []int {
	out := make([]int, len(assumed))
	copy(out, assumed)
	return out
}
