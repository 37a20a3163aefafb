// Package engine wraps incremental propositional (CNF-SAT) solvers behind
// one small adapter contract, following the pattern the teacher's own
// marco package uses to swap gini and gophersat behind a shared Solver
// interface.
package engine

// Status is the result of a Solve call. The numeric values match the exit
// code contract of the CLI (spec.md §6): SAT solves report 10, UNSAT
// solves report 20.
type Status int

const (
	// Unknown is never returned by a conforming backend; seeing it means
	// the underlying solver was interrupted or misbehaved.
	Unknown Status = 0
	// Sat means the last Solve/assumption query is satisfiable.
	Sat Status = 10
	// Unsat means the last Solve/assumption query is unsatisfiable.
	Unsat Status = 20
)

// Engine is the uniform contract over an incremental CDCL solver used by
// both the counterexample engine and the expansion engine. Literals are
// signed integers (DIMACS convention): the variable is |lit|, negation is
// arithmetic negation, 0 is never a valid literal.
type Engine interface {
	// AddClause installs a permanent clause. Visible starting with the
	// very next Solve call.
	AddClause(lits []int)

	// Assume appends literals to the assumption set for the next Solve
	// call only; the set is cleared immediately after that call.
	Assume(lits []int)

	// Phase records a decision-polarity hint for the variable |lit|.
	// Purely advisory: a backend with no polarity hook may ignore it.
	Phase(lit int)

	// Solve runs the search under the current clauses and assumptions.
	Solve() Status

	// Val returns the signed literal for variable v in the last model
	// (+v if true, -v if false). Undefined unless the last Solve
	// returned Sat.
	Val(v int) int

	// Failed returns the subset of assumed that participated in the
	// conflict underlying the last Unsat result, in the order the
	// literals appear in assumed.
	Failed(assumed []int) []int
}
