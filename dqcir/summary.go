package dqcir

import (
	"fmt"
	"strings"
)

// Summary renders a human-readable overview of the parsed formula, in the
// style of the original DQCIRParser::print_summary: variable/gate counts,
// the output gate name, a per-existential dependency preview (first 5
// dependencies, truncated with "..." beyond that), and, if requested, a
// capped preview of the CNF matrix.
func (f *Formula) Summary(showMatrix bool) string {
	var b strings.Builder
	fmt.Fprintln(&b, strings.Repeat("=", 60))
	fmt.Fprintln(&b, "DQCIR Formula Summary")
	fmt.Fprintln(&b, strings.Repeat("=", 60))
	fmt.Fprintf(&b, "Total variables/gates: %d\n", f.Alloc.Count())
	fmt.Fprintf(&b, "Universal variables: %d\n", len(f.Universals))
	fmt.Fprintf(&b, "Existential variables: %d\n", len(f.Existentials))
	fmt.Fprintf(&b, "Gates: %d\n", len(f.Gates))
	if f.Output >= 0 {
		fmt.Fprintf(&b, "Output gate: %s\n", f.IDToName[f.Output])
	}

	fmt.Fprintln(&b, "\nDependencies:")
	for _, e := range f.Existentials {
		deps := f.Dependencies[e]
		names := make([]string, 0, len(deps))
		limit := len(deps)
		truncated := false
		if limit > 5 {
			limit = 5
			truncated = true
		}
		for _, u := range deps[:limit] {
			names = append(names, f.IDToName[u])
		}
		suffix := ""
		if truncated {
			suffix = ", ..."
		}
		fmt.Fprintf(&b, "  %s depends on {%s%s}\n", f.IDToName[e], strings.Join(names, ", "), suffix)
	}

	if showMatrix {
		fmt.Fprintln(&b, "\nCNF matrix (Tseitin-encoded):")
		limit := len(f.Matrix)
		truncated := false
		if limit > 20 {
			limit = 20
			truncated = true
		}
		for _, clause := range f.Matrix[:limit] {
			fmt.Fprintf(&b, "  %v\n", clause)
		}
		if truncated {
			fmt.Fprintf(&b, "  ... (%d more clauses)\n", len(f.Matrix)-limit)
		}
	}

	return b.String()
}
