// Package dqcir parses the DQCIR textual format and Tseitin-encodes its
// gates into CNF, producing exactly the inputs the dqbf core needs: name
// tables, the dependency relation, the ordered universal list, the CNF
// matrix and the output gate id.
//
// Grounded on _examples/original_source/src/dqcir_parser.{hpp,cpp}, with
// the grammar itself expressed via github.com/alecthomas/participle/v2
// (declared in the teacher's go.mod but never imported there) rather than
// the original's hand-rolled string splitting.
package dqcir

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"dqbfsolver/internal/ids"
)

// Gate is a parsed, not-yet-encoded gate definition. Inputs are already
// resolved to signed integer literals over variable/gate ids.
type Gate struct {
	ID     int
	Name   string
	Op     string
	Inputs []int
}

// Formula holds everything a DQCIR file declares, before and after
// Tseitin encoding.
type Formula struct {
	Alloc *ids.Allocator

	NameToID map[string]int
	IDToName map[int]string

	Universals   []int
	Existentials []int

	// Dependencies maps an existential id to its dependency set, stored
	// in the order it was declared or overridden.
	Dependencies map[int][]int

	Gates  []*Gate
	Output int

	Matrix [][]int

	universalSet map[int]bool
	gateByID     map[int]*Gate
}

// NewFormula returns an empty Formula backed by a fresh id allocator.
func NewFormula() *Formula {
	return &Formula{
		Alloc:        ids.NewAllocator(),
		NameToID:     make(map[string]int),
		IDToName:     make(map[int]string),
		Dependencies: make(map[int][]int),
		universalSet: make(map[int]bool),
		gateByID:     make(map[int]*Gate),
		Output:       -1,
	}
}

// ParseReader reads a DQCIR file from r into a fresh Formula.
func ParseReader(r io.Reader) (*Formula, error) {
	f := NewFormula()
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := f.parseLine(line); err != nil {
			return nil, fmt.Errorf("dqcir: line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("dqcir: %w", err)
	}
	if f.Output < 0 {
		return nil, fmt.Errorf("dqcir: no output statement")
	}
	return f, nil
}

func (f *Formula) parseLine(line string) error {
	stmt, err := statementParser.ParseString("", line)
	if err != nil {
		return fmt.Errorf("parse error: %w", err)
	}
	switch {
	case stmt.Forall != nil:
		for _, name := range stmt.Forall.Vars {
			id := f.getOrCreateID(name)
			if !f.universalSet[id] {
				f.universalSet[id] = true
				f.Universals = append(f.Universals, id)
			}
		}
	case stmt.Exists != nil:
		for _, name := range stmt.Exists.Vars {
			id := f.getOrCreateID(name)
			f.Existentials = append(f.Existentials, id)
			// Henkin default: depend on every universal declared so far,
			// unless a later `depend(...)` line overrides this.
			deps := make([]int, len(f.Universals))
			copy(deps, f.Universals)
			f.Dependencies[id] = deps
		}
	case stmt.Depend != nil:
		e := f.getOrCreateID(stmt.Depend.Existential)
		deps := make([]int, 0, len(stmt.Depend.Deps))
		for _, name := range stmt.Depend.Deps {
			deps = append(deps, f.getOrCreateID(name))
		}
		f.Dependencies[e] = deps
	case stmt.Output != nil:
		f.Output = f.getOrCreateID(stmt.Output.Gate)
	case stmt.Gate != nil:
		g := &Gate{
			ID:   f.getOrCreateID(stmt.Gate.Name),
			Name: stmt.Gate.Name,
			Op:   strings.ToLower(stmt.Gate.Op),
		}
		if g.Op != "and" && g.Op != "or" && g.Op != "xor" {
			return fmt.Errorf("unknown gate operator %q", stmt.Gate.Op)
		}
		for _, lit := range stmt.Gate.Inputs {
			id := f.getOrCreateID(lit.Name)
			if lit.Neg {
				g.Inputs = append(g.Inputs, -id)
			} else {
				g.Inputs = append(g.Inputs, id)
			}
		}
		f.Gates = append(f.Gates, g)
		f.gateByID[g.ID] = g
	default:
		return fmt.Errorf("empty statement")
	}
	return nil
}

func (f *Formula) getOrCreateID(name string) int {
	if id, ok := f.NameToID[name]; ok {
		return id
	}
	id := f.Alloc.Next()
	f.NameToID[name] = id
	f.IDToName[id] = name
	return id
}
