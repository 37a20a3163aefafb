package dqbf

import (
	"sort"

	"dqbfsolver/engine"
	"dqbfsolver/internal/unionfind"
)

// DetectEquivalentExistentials groups existentials that are provably
// semantically equivalent under the current matrix (spec.md §4.8),
// grounded on dqbf_solver.py's detect_equivalent_existentials.
//
// Candidates are first grouped by |dep(e)| (a cheap, incomplete
// pre-filter: two existentials with differently-sized dependency sets are
// never compared, so such a pair is never merged even when the two are
// equivalent). Every same-size pair not already unioned is then settled by an
// actual SAT query against a fresh, fixed-vocabulary bootstrap of the
// matrix: e1 and e2 are equivalent iff forcing them to differ, together
// with the output gate, is UNSAT.
func (s *Solver) DetectEquivalentExistentials() map[int][]int {
	byDepCount := make(map[int][]int)
	for _, e := range s.existentials {
		n := len(s.deps.Of(e))
		byDepCount[n] = append(byDepCount[n], e)
	}

	pairCount := 0
	for _, group := range byDepCount {
		if len(group) > 1 {
			pairCount += len(group) * (len(group) - 1) / 2
		}
	}

	uf := unionfind.New()
	for _, e := range s.existentials {
		uf.Find(e)
	}
	if pairCount == 0 {
		return uf.Classes()
	}

	det := engine.NewStatic(s.matrix, s.alloc.Count(), pairCount)

	for _, group := range byDepCount {
		sorted := append([]int(nil), group...)
		sort.Ints(sorted)
		for i := 0; i < len(sorted); i++ {
			for j := i + 1; j < len(sorted); j++ {
				e1, e2 := sorted[i], sorted[j]
				if uf.SameSet(e1, e2) {
					continue
				}
				a := s.alloc.Next()

				// a ties each pair of corresponding dependencies together,
				// so e1 and e2 are compared under the same input
				// assignment, then forces them apart.
				deps1, deps2 := s.deps.Of(e1), s.deps.Of(e2)
				for k := range deps1 {
					dep1, dep2 := deps1[k], deps2[k]
					det.AddClause([]int{-a, -dep1, dep2})
					det.AddClause([]int{-a, dep1, -dep2})
				}

				// a => (e1 <-> e2 is forced apart): a ∧ e1 ∧ e2 is
				// forbidden, and a ∧ ¬e1 ∧ ¬e2 is forbidden, so under
				// assumption a, e1 and e2 must take opposite values.
				det.AddClause([]int{-a, -e1, -e2})
				det.AddClause([]int{-a, e1, e2})

				det.Assume([]int{a, s.outputGate})
				if det.Solve() == engine.Unsat {
					uf.Union(e1, e2)
				}
			}
		}
	}

	return uf.Classes()
}
