package dqbf

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"dqbfsolver/internal/ids"
)

// canonical returns assignment's literals sorted by absolute variable id
// ascending, so that differently-ordered equivalent sub-assignments map to
// the same expansion-cache key (spec.md §4.4, P3).
func canonical(assignment []int) []int {
	out := make([]int, len(assignment))
	copy(out, assignment)
	sort.Slice(out, func(i, j int) bool {
		return abs(out[i]) < abs(out[j])
	})
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func canonicalKey(e int, canonicalAssignment []int) string {
	parts := make([]string, len(canonicalAssignment))
	for i, lit := range canonicalAssignment {
		parts[i] = strconv.Itoa(lit)
	}
	return fmt.Sprintf("%d|%s", e, strings.Join(parts, ","))
}

// ExpansionCache implements spec.md §4.4: interns (existential, canonical
// universal sub-assignment) pairs to fresh expansion variables, pairing
// every insertion with exactly one rule-chain rule addition (INV-3).
type ExpansionCache struct {
	alloc      *ids.Allocator
	names      *NameTable
	deps       *Dependencies
	ruleChains *RuleChains

	cache map[string]int
	// Vars is the insertion-ordered list of all minted expansion
	// variables, so the expansion engine can be queried for their values
	// as a block.
	Vars []int
}

// NewExpansionCache constructs an empty cache tied to the given
// rule-chain encoder, which every new entry installs a rule into.
func NewExpansionCache(alloc *ids.Allocator, names *NameTable, deps *Dependencies, ruleChains *RuleChains) *ExpansionCache {
	return &ExpansionCache{
		alloc:      alloc,
		names:      names,
		deps:       deps,
		ruleChains: ruleChains,
		cache:      make(map[string]int),
	}
}

// Get returns the expansion variable for (e, assignment), minting and
// caching a fresh one (and adding the corresponding rule to the
// rule-chain encoder) on first demand.
func (ec *ExpansionCache) Get(e int, assignment []int) int {
	for _, lit := range assignment {
		if !ec.deps.Contains(e, abs(lit)) {
			panic(fmt.Sprintf("dqbf: expansion assignment variable %d is outside dep(%d)", abs(lit), e))
		}
	}

	canon := canonical(assignment)
	key := canonicalKey(e, canon)
	if x, ok := ec.cache[key]; ok {
		return x
	}

	x := ec.alloc.Next()
	ec.names.Register(x, fmt.Sprintf("%s_expand_%s", ec.names.Name(e), describeAssignment(ec.names, canon)))
	ec.cache[key] = x

	// The conclusion polarity "true" here is a convention: x is a fresh
	// variable whose truth value is fixed by the expansion engine, not by
	// this rule.
	ec.ruleChains.AddRule(e, canon, true, x)

	ec.Vars = append(ec.Vars, x)
	return x
}

// Lookup returns the expansion variable already cached for (e,
// assignment), if any, without minting a new one. Used by model queries
// that must respect an already-committed expansion but never create a
// fresh, unconstrained one of their own (mirrors dqbf_solver.py's
// "if key in self.expansion_vars" membership check).
func (ec *ExpansionCache) Lookup(e int, assignment []int) (int, bool) {
	canon := canonical(assignment)
	key := canonicalKey(e, canon)
	x, ok := ec.cache[key]
	return x, ok
}

func describeAssignment(names *NameTable, canon []int) string {
	if len(canon) == 0 {
		return "always"
	}
	parts := make([]string, len(canon))
	for i, lit := range canon {
		v := lit
		tag := "T"
		if v < 0 {
			v = -v
			tag = "F"
		}
		parts[i] = names.Name(v) + tag
	}
	return strings.Join(parts, "_")
}
