package dqbf

import (
	"fmt"
	"sort"
	"strings"

	"dqbfsolver/engine"
	"dqbfsolver/internal/ids"
)

// ruleChainState is the per-existential "current slots" of spec.md §3
// ("Rule-chain state, per existential e").
type ruleChainState struct {
	valueVar    int  // unsigned id of the current default-value variable
	valuePos    bool // polarity: true => literal is +valueVar
	noRuleFired int
	fireVar     int
	ruleNumber  int
}

func (s *ruleChainState) valueLit() int {
	if s.valuePos {
		return s.valueVar
	}
	return -s.valueVar
}

// ruleHistoryEntry records one installed rule, kept for diagnostic dumps
// (spec.md §3, "History lists").
type ruleHistoryEntry struct {
	existential int
	ruleIndex   int
	fireVar     int
	premise     []int
	description string
}

// RuleChains implements the rule-chain encoder of spec.md §4.3: per
// existential e, an ordered decision list of rules encoded into the
// counterexample engine as fires-variables, no-rule-fired variables and
// value variables.
type RuleChains struct {
	alloc   *ids.Allocator
	names   *NameTable
	deps    *Dependencies
	engine  engine.Engine
	state   map[int]*ruleChainState
	history []ruleHistoryEntry

	// PermanentAssumptions is the append-only list of literals that must
	// hold in every counterexample query (spec.md §3, "Permanent
	// assumptions"): frozen conclusion polarities of rules whose
	// conclusion is a plain boolean constant.
	PermanentAssumptions []int
}

// NewRuleChains constructs an (initially empty) rule-chain encoder.
func NewRuleChains(alloc *ids.Allocator, names *NameTable, deps *Dependencies, ce engine.Engine) *RuleChains {
	return &RuleChains{
		alloc:  alloc,
		names:  names,
		deps:   deps,
		engine: ce,
		state:  make(map[int]*ruleChainState),
	}
}

// Initialized reports whether InitModel has already run for e.
func (rc *RuleChains) Initialized(e int) bool {
	_, ok := rc.state[e]
	return ok
}

func (rc *RuleChains) mustState(e int) *ruleChainState {
	s, ok := rc.state[e]
	if !ok {
		panic(fmt.Sprintf("dqbf: rule chain operation on uninitialized existential %d", e))
	}
	return s
}

// InitModel allocates value_var_1, no_rule_fired_0 and fires_1 for e and
// emits the initialisation biconditional. Idempotent.
func (rc *RuleChains) InitModel(e int) {
	if rc.Initialized(e) {
		return
	}
	valueVar1 := rc.alloc.Next()
	rc.names.Register(valueVar1, fmt.Sprintf("%s_value_1", rc.names.Name(e)))

	noRuleFired0 := rc.alloc.Next()
	rc.names.Register(noRuleFired0, fmt.Sprintf("%s_nofired_0", rc.names.Name(e)))
	rc.engine.AddClause([]int{noRuleFired0})

	fires1 := rc.alloc.Next()
	rc.names.Register(fires1, fmt.Sprintf("%s_fire_1", rc.names.Name(e)))

	// no_rule_fired_0 ∧ fires_1 => e ≡ value_var_1.
	rc.engine.AddClause([]int{-noRuleFired0, -fires1, -e, valueVar1})
	rc.engine.AddClause([]int{-noRuleFired0, -fires1, e, -valueVar1})

	rc.state[e] = &ruleChainState{
		valueVar:    valueVar1,
		valuePos:    true,
		noRuleFired: noRuleFired0,
		fireVar:     fires1,
		ruleNumber:  1,
	}
}

// SetDefaultValue flips the polarity of e's current value variable so
// that its literal reads +v (b true) or -v (b false).
func (rc *RuleChains) SetDefaultValue(e int, b bool) {
	rc.mustState(e).valuePos = b
}

// ValueLit returns e's current default-value literal.
func (rc *RuleChains) ValueLit(e int) int {
	return rc.mustState(e).valueLit()
}

// FireVar returns e's current (next-to-bind) fires variable.
func (rc *RuleChains) FireVar(e int) int {
	return rc.mustState(e).fireVar
}

// NoRuleFiredVar returns e's current no-rule-fired variable.
func (rc *RuleChains) NoRuleFiredVar(e int) int {
	return rc.mustState(e).noRuleFired
}

// RuleCount returns how many rules have been installed for e (1 if only
// InitModel has run, since that counts as the default rule).
func (rc *RuleChains) RuleCount(e int) int {
	return rc.mustState(e).ruleNumber
}

// History renders one line per installed rule, in installation order,
// for diagnostic dumps (spec.md §3, "History lists").
func (rc *RuleChains) History() []string {
	lines := make([]string, len(rc.history))
	for i, h := range rc.history {
		lines[i] = fmt.Sprintf("%s rule %d: fire_%d when %s", rc.names.Name(h.existential), h.ruleIndex, h.ruleIndex, h.description)
	}
	return lines
}

// AddRule extends e's decision list with premise => conclusion. If
// valueVarOpt is 0, the conclusion is the constant conclusionBool and gets
// appended to PermanentAssumptions; otherwise valueVarOpt names a
// variable whose value will serve as the rule's conclusion, tied to the
// rule's value slot by a biconditional.
func (rc *RuleChains) AddRule(e int, premise []int, conclusionBool bool, valueVarOpt int) {
	s := rc.mustState(e)

	for _, p := range premise {
		v := p
		if v < 0 {
			v = -v
		}
		if !rc.deps.Contains(e, v) {
			panic(fmt.Sprintf("dqbf: rule premise variable %d is outside dep(%d)", v, e))
		}
	}

	nextFire := rc.alloc.Next()
	thisNoRuleFired := rc.alloc.Next()
	nextValueVar := rc.alloc.Next()

	prevNF := s.noRuleFired
	thisFire := s.fireVar
	thisVal := s.valueVar

	// Clause group 1: this_fire ≡ premise ∧ prev_nf.
	for _, p := range premise {
		rc.engine.AddClause([]int{-thisFire, p})
	}
	closing := make([]int, 0, len(premise)+2)
	closing = append(closing, thisFire, -prevNF)
	for _, p := range premise {
		closing = append(closing, -p)
	}
	rc.engine.AddClause(closing)

	// Clause group 2: this_nrf ≡ prev_nf ∧ ¬this_fire.
	rc.engine.AddClause([]int{-thisNoRuleFired, prevNF})
	rc.engine.AddClause([]int{-thisNoRuleFired, -thisFire})
	rc.engine.AddClause([]int{thisNoRuleFired, -prevNF, thisFire})

	// Clause group 3: next_fire ∧ this_nrf => e ≡ next_value_var.
	rc.engine.AddClause([]int{-nextFire, -thisNoRuleFired, -e, nextValueVar})
	rc.engine.AddClause([]int{-nextFire, -thisNoRuleFired, e, -nextValueVar})

	if valueVarOpt == 0 {
		if conclusionBool {
			rc.PermanentAssumptions = append(rc.PermanentAssumptions, thisVal)
		} else {
			rc.PermanentAssumptions = append(rc.PermanentAssumptions, -thisVal)
		}
	} else {
		rc.engine.AddClause([]int{-thisVal, valueVarOpt})
		rc.engine.AddClause([]int{thisVal, -valueVarOpt})
	}

	ruleIdx := s.ruleNumber
	premiseDesc := describePremise(rc.names, premise)
	rc.names.Register(nextFire, fmt.Sprintf("%s_fire_%d", rc.names.Name(e), ruleIdx+1))
	rc.names.Register(thisNoRuleFired, fmt.Sprintf("%s_nofired_%d", rc.names.Name(e), ruleIdx))
	rc.names.Register(nextValueVar, fmt.Sprintf("%s_value_%d", rc.names.Name(e), ruleIdx+1))

	rc.history = append(rc.history, ruleHistoryEntry{
		existential: e,
		ruleIndex:   ruleIdx,
		fireVar:     thisFire,
		premise:     append([]int(nil), premise...),
		description: premiseDesc,
	})

	s.noRuleFired = thisNoRuleFired
	s.fireVar = nextFire
	s.valueVar = nextValueVar
	s.valuePos = true
	s.ruleNumber = ruleIdx + 1
}

func describePremise(names *NameTable, premise []int) string {
	if len(premise) == 0 {
		return "always"
	}
	parts := make([]string, len(premise))
	for i, lit := range premise {
		v := lit
		neg := ""
		if v < 0 {
			v = -v
			neg = "-"
		}
		parts[i] = neg + names.Name(v)
	}
	sort.Strings(parts)
	return strings.Join(parts, ",")
}
