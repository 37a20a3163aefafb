// Command dqbfsolver reads a DQCIR file and decides its satisfiability
// with the CEGAR-over-decision-lists algorithm in package dqbf.
//
// Grounded on crillab-gophersat/main.go's flag wiring and
// _examples/original_source/src/dqbf_solver_main.cpp's control flow and
// exit-code contract (10 SAT, 20 UNSAT, 1 error, 0 info-only).
package main

import (
	"fmt"
	"os"
	"sort"

	"dqbfsolver/dqbf"
	"dqbfsolver/dqcir"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) (exitCode int) {
	fs := newFlagSet()
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if fs.help {
		fs.printUsage(os.Stdout)
		return 0
	}
	if fs.filename == "" {
		fs.printUsage(os.Stderr)
		return 1
	}

	f, err := os.Open(fs.filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dqbfsolver: %v\n", err)
		return 1
	}
	defer f.Close()

	formula, err := dqcir.ParseReader(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dqbfsolver: %v\n", err)
		return 1
	}

	matrix := formula.Tseitin()

	if fs.info {
		fmt.Println(formula.Summary(true))
		return 0
	}

	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "dqbfsolver: internal error: %v\n", r)
			exitCode = 1
		}
	}()

	solver := dqbf.NewSolver(dqbf.Config{
		NameToID:     formula.NameToID,
		IDToName:     formula.IDToName,
		Dependencies: formula.Dependencies,
		Matrix:       matrix,
		Universals:   formula.Universals,
		Existentials: formula.Existentials,
		OutputGate:   formula.Output,
		Alloc:        formula.Alloc,
		Verbose:      fs.verbose,
	})

	if fs.detectEquiv {
		printEquivalenceClasses(solver)
		return 0
	}

	sat := solver.Solve()
	stats := solver.GetStatistics()
	if sat {
		fmt.Println("SATISFIABLE")
	} else {
		fmt.Println("UNSATISFIABLE")
	}
	fmt.Printf("c iterations: %d\n", stats.Iterations)
	fmt.Printf("c existential variables: %d\n", stats.ExistentialVars)
	fmt.Printf("c universal variables: %d\n", stats.UniversalVars)
	fmt.Printf("c expansion variables: %d\n", stats.ExpansionVars)

	if fs.verbose {
		for _, line := range solver.RuleHistory() {
			fmt.Println("c", line)
		}
	}
	if sat && fs.verbose {
		printModelFunctions(solver)
	}

	if sat {
		return 10
	}
	return 20
}

func printEquivalenceClasses(s *dqbf.Solver) {
	classes := s.DetectEquivalentExistentials()
	reps := make([]int, 0, len(classes))
	for rep := range classes {
		reps = append(reps, rep)
	}
	sort.Ints(reps)
	names := s.Names()
	for _, rep := range reps {
		members := classes[rep]
		if len(members) < 2 {
			continue
		}
		sort.Ints(members)
		fmt.Printf("equivalence class:")
		for _, m := range members {
			fmt.Printf(" %s", names.Name(m))
		}
		fmt.Println()
	}
}

func printModelFunctions(s *dqbf.Solver) {
	names := s.Names()
	rows := s.EnumerateModelFunctions()
	m := len(s.Universals())
	for _, row := range rows {
		uLits, eLits := row[:m], row[m:]
		fmt.Print("model:")
		for _, lit := range uLits {
			fmt.Printf(" %s=%t", names.Name(abs(lit)), lit > 0)
		}
		fmt.Print(" =>")
		for _, lit := range eLits {
			fmt.Printf(" %s=%t", names.Name(abs(lit)), lit > 0)
		}
		fmt.Println()
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
