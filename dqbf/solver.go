// Package dqbf is the CEGAR-over-decision-lists DQBF solver core: the ID
// allocator, the two propositional engine states, the rule-chain
// bookkeeping and the expansion-variable cache, tied together by the
// counterexample search and refinement driver.
package dqbf

import (
	"fmt"
	"log"

	mapset "github.com/deckarep/golang-set/v2"

	"dqbfsolver/engine"
	"dqbfsolver/internal/ids"
)

// Config is the Core API's constructor input (spec.md §6): name/id
// tables, the dependency relation, the CNF matrix, the ordered universal
// and existential lists and the output gate id, exactly what the dqcir
// parser collaborator hands to the core. Alloc is optional; when nil, a
// fresh allocator is seeded above the maximum id already present.
type Config struct {
	NameToID     map[string]int
	IDToName     map[int]string
	Dependencies map[int][]int
	Matrix       [][]int
	Universals   []int
	Existentials []int
	OutputGate   int
	Alloc        *ids.Allocator
	Verbose      bool
}

// Solver is the CEGAR-over-decision-lists DQBF core. One instance owns two
// propositional engines, the shared id allocator, the name table, the
// dependency relation, the rule-chain encoder and the expansion cache; it
// is never shared across solves.
type Solver struct {
	alloc *ids.Allocator
	names *NameTable
	deps  *Dependencies

	universals   []int
	existentials []int
	outputGate   int
	matrix       [][]int

	ceEngine  engine.Engine
	expEngine engine.Engine

	ruleChains *RuleChains
	expansion  *ExpansionCache

	expansionAssignment []int
	// expansionValue maps each expansion variable id to its committed
	// literal in expansionAssignment, so a model query can look one up by
	// (existential, restricted universal assignment) without a linear
	// scan (mirrors dqbf_solver.py's assumptions.append(lit) for
	// already-expanded rules).
	expansionValue    map[int]int
	lastUniversalLits []int

	lastCore       mapset.Set[int]
	lastUniversals mapset.Set[int]

	iterations int
	Verbose    bool
}

// NewSolver builds a Solver from cfg: installs the matrix into the
// counterexample engine and runs InitModel for every existential.
func NewSolver(cfg Config) *Solver {
	alloc := cfg.Alloc
	if alloc == nil {
		alloc = ids.NewAllocator()
		seed := 0
		for id := range cfg.IDToName {
			if id > seed {
				seed = id
			}
		}
		for _, clause := range cfg.Matrix {
			for _, lit := range clause {
				if a := abs(lit); a > seed {
					seed = a
				}
			}
		}
		alloc.SeedTo(seed)
	}

	names := NewNameTable(cfg.NameToID, cfg.IDToName)
	deps := NewDependencies(cfg.Dependencies)

	ceEngine := engine.NewGini()
	expEngine := engine.NewGini()
	for _, clause := range cfg.Matrix {
		ceEngine.AddClause(clause)
	}

	ruleChains := NewRuleChains(alloc, names, deps, ceEngine)
	expansion := NewExpansionCache(alloc, names, deps, ruleChains)

	s := &Solver{
		alloc:        alloc,
		names:        names,
		deps:         deps,
		universals:   append([]int(nil), cfg.Universals...),
		existentials: append([]int(nil), cfg.Existentials...),
		outputGate:   cfg.OutputGate,
		matrix:       cfg.Matrix,
		ceEngine:     ceEngine,
		expEngine:    expEngine,
		ruleChains:   ruleChains,
		expansion:    expansion,
		Verbose:      cfg.Verbose,
	}

	for _, e := range s.existentials {
		ruleChains.InitModel(e)
	}

	return s
}

// GetCounterexample runs the two-phase counterexample search of spec.md
// §4.5 against the current model. found is false iff the counterexample
// engine reports UNSAT in phase 1, meaning no counterexample exists under
// the current model and the formula is satisfiable.
func (s *Solver) GetCounterexample() (found bool, existentialCore, universalAssignment []int) {
	assume := make([]int, 0, 2+len(s.ruleChains.PermanentAssumptions)+2*len(s.existentials)+len(s.expansionAssignment))
	assume = append(assume, -s.outputGate)
	assume = append(assume, s.ruleChains.PermanentAssumptions...)
	for _, e := range s.existentials {
		assume = append(assume, s.ruleChains.FireVar(e))
	}
	for _, e := range s.existentials {
		assume = append(assume, s.ruleChains.ValueLit(e))
	}
	assume = append(assume, s.expansionAssignment...)

	for _, lit := range s.lastUniversalLits {
		s.ceEngine.Phase(lit)
	}

	s.ceEngine.Assume(assume)
	switch s.ceEngine.Solve() {
	case engine.Unsat:
		return false, nil, nil
	case engine.Sat:
	default:
		panic("dqbf: counterexample engine phase 1 returned neither SAT nor UNSAT")
	}

	counterUniversals := make([]int, len(s.universals))
	for i, u := range s.universals {
		counterUniversals[i] = s.ceEngine.Val(u)
	}
	counterExistentials := make([]int, len(s.existentials))
	for i, e := range s.existentials {
		counterExistentials[i] = s.ceEngine.Val(e)
	}

	verify := make([]int, 0, len(counterUniversals)+len(counterExistentials)+1)
	verify = append(verify, counterUniversals...)
	verify = append(verify, counterExistentials...)
	verify = append(verify, s.outputGate)

	s.ceEngine.Assume(verify)
	if s.ceEngine.Solve() != engine.Unsat {
		panic("dqbf: internal consistency failure: counterexample verification query was not UNSAT")
	}
	core := s.ceEngine.Failed(counterExistentials)

	s.lastUniversalLits = counterUniversals
	return true, core, counterUniversals
}

// AnalyzeCounterexample builds the expansion-engine blocking clause for
// one counterexample (spec.md §4.5 step 5), updating each involved
// existential's default value along the way.
func (s *Solver) AnalyzeCounterexample(existentialCore, universalAssignment []int) []int {
	blocking := make([]int, 0, len(existentialCore))
	for _, lit := range existentialCore {
		e := abs(lit)
		a := s.deps.Restrict(e, universalAssignment)
		x := s.expansion.Get(e, a)
		if lit > 0 {
			blocking = append(blocking, -x)
			s.ruleChains.SetDefaultValue(e, false)
		} else {
			blocking = append(blocking, x)
			s.ruleChains.SetDefaultValue(e, true)
		}
	}
	return blocking
}

// Solve runs the CEGAR refinement loop to completion (spec.md §4.6),
// returning true iff the formula is satisfiable.
func (s *Solver) Solve() bool {
	for {
		s.iterations++
		found, core, ua := s.GetCounterexample()
		if !found {
			if s.Verbose {
				log.Printf("dqbf: SATISFIABLE after %d iteration(s)", s.iterations)
			}
			return true
		}

		coreSet := mapset.NewSet[int](core...)
		uaSet := mapset.NewSet[int](ua...)
		if s.lastCore != nil && s.lastCore.Equal(coreSet) && s.lastUniversals.Equal(uaSet) {
			panic(fmt.Sprintf("dqbf: cycle detected at iteration %d: identical counterexample repeated", s.iterations))
		}
		s.lastCore, s.lastUniversals = coreSet, uaSet

		blocking := s.AnalyzeCounterexample(core, ua)
		s.expEngine.AddClause(blocking)

		if s.expEngine.Solve() == engine.Unsat {
			if s.Verbose {
				log.Printf("dqbf: UNSATISFIABLE after %d iteration(s)", s.iterations)
			}
			return false
		}

		assignment := make([]int, len(s.expansion.Vars))
		value := make(map[int]int, len(s.expansion.Vars))
		for i, x := range s.expansion.Vars {
			lit := s.expEngine.Val(x)
			assignment[i] = lit
			value[x] = lit
		}
		s.expansionAssignment = assignment
		s.expansionValue = value

		if s.Verbose {
			log.Printf("dqbf: iteration %d: core=%v universals=%v expansion_vars=%d", s.iterations, core, ua, len(s.expansion.Vars))
		}
	}
}

// ComputeModelFunctions returns the existential outputs consistent with a
// specific universal assignment uLits, after a SAT verdict (spec.md §4.7).
// ok is false iff no consistent assignment exists for this input.
func (s *Solver) ComputeModelFunctions(uLits []int) (values []int, ok bool) {
	assume := make([]int, 0, len(s.ruleChains.PermanentAssumptions)+3*len(s.existentials)+len(uLits))
	assume = append(assume, s.ruleChains.PermanentAssumptions...)
	for _, e := range s.existentials {
		assume = append(assume, s.ruleChains.FireVar(e))
	}
	for _, e := range s.existentials {
		assume = append(assume, s.ruleChains.ValueLit(e))
	}
	// For any existential whose dep-restricted sub-assignment already has
	// a committed expansion variable, pin that variable to its committed
	// value too, or it stays unconstrained and e can be picked arbitrarily.
	for _, e := range s.existentials {
		restricted := s.deps.Restrict(e, uLits)
		if x, found := s.expansion.Lookup(e, restricted); found {
			if lit, ok2 := s.expansionValue[x]; ok2 {
				assume = append(assume, lit)
			}
		}
	}
	assume = append(assume, uLits...)

	s.ceEngine.Assume(assume)
	switch s.ceEngine.Solve() {
	case engine.Sat:
		vals := make([]int, len(s.existentials))
		for i, e := range s.existentials {
			vals[i] = s.ceEngine.Val(e)
		}
		return vals, true
	case engine.Unsat:
		return nil, false
	default:
		panic("dqbf: model-function query returned neither SAT nor UNSAT")
	}
}

// EnumerateModelFunctions computes compute_model_functions for every one
// of the 2^m universal assignments. Panics if any row is UNSAT, since that
// would mean the post-SAT model is internally inconsistent.
func (s *Solver) EnumerateModelFunctions() [][]int {
	m := len(s.universals)
	rows := make([][]int, 0, 1<<uint(m))
	for mask := 0; mask < (1 << uint(m)); mask++ {
		uLits := make([]int, m)
		for i, u := range s.universals {
			if mask&(1<<uint(i)) != 0 {
				uLits[i] = u
			} else {
				uLits[i] = -u
			}
		}
		vals, ok := s.ComputeModelFunctions(uLits)
		if !ok {
			panic(fmt.Sprintf("dqbf: internal consistency failure: no model for universal assignment %v after overall SAT verdict", uLits))
		}
		row := make([]int, 0, m+len(vals))
		row = append(row, uLits...)
		row = append(row, vals...)
		rows = append(rows, row)
	}
	return rows
}

// Statistics is the result of GetStatistics (spec.md §4.8).
type Statistics struct {
	Iterations      int
	ExistentialVars int
	UniversalVars   int
	ExpansionVars   int
}

// GetStatistics reports the solver's current counters.
func (s *Solver) GetStatistics() Statistics {
	return Statistics{
		Iterations:      s.iterations,
		ExistentialVars: len(s.existentials),
		UniversalVars:   len(s.universals),
		ExpansionVars:   len(s.expansion.Vars),
	}
}

// Names exposes the solver's name table for callers that render
// diagnostics (e.g. the CLI's model-function listing).
func (s *Solver) Names() *NameTable { return s.names }

// Universals returns the ordered list of universal variable ids.
func (s *Solver) Universals() []int { return append([]int(nil), s.universals...) }

// Existentials returns the ordered list of existential variable ids.
func (s *Solver) Existentials() []int { return append([]int(nil), s.existentials...) }

// RuleHistory renders the rule-chain encoder's diagnostic history, one
// line per installed rule across every existential.
func (s *Solver) RuleHistory() []string { return s.ruleChains.History() }
