package dqcir

import "fmt"

// Tseitin encodes every declared gate into CNF, in gate-declaration order,
// and stores the result on the Formula. Reproduces
// DQCIRParser::tseitin_and/or/xor/xor2 from the original C++ reference
// exactly, including the auxiliary-variable chaining for xor gates with
// more than two inputs.
func (f *Formula) Tseitin() [][]int {
	var clauses [][]int
	for _, g := range f.Gates {
		switch g.Op {
		case "and":
			clauses = append(clauses, tseitinAnd(g.ID, g.Inputs)...)
		case "or":
			clauses = append(clauses, tseitinOr(g.ID, g.Inputs)...)
		case "xor":
			clauses = append(clauses, f.tseitinXor(g.ID, g.Inputs)...)
		default:
			panic(fmt.Sprintf("dqcir: unknown gate operator %q on gate %q", g.Op, g.Name))
		}
	}
	f.Matrix = clauses
	return clauses
}

func tseitinAnd(gate int, inputs []int) [][]int {
	clauses := make([][]int, 0, len(inputs)+1)
	closing := make([]int, 0, len(inputs)+1)
	closing = append(closing, gate)
	for _, lit := range inputs {
		clauses = append(clauses, []int{-gate, lit})
		closing = append(closing, -lit)
	}
	clauses = append(clauses, closing)
	return clauses
}

func tseitinOr(gate int, inputs []int) [][]int {
	clauses := make([][]int, 0, len(inputs)+1)
	closing := make([]int, 0, len(inputs)+1)
	closing = append(closing, -gate)
	for _, lit := range inputs {
		clauses = append(clauses, []int{-lit, gate})
		closing = append(closing, lit)
	}
	clauses = append(clauses, closing)
	return clauses
}

func (f *Formula) tseitinXor(gate int, inputs []int) [][]int {
	switch len(inputs) {
	case 0:
		return [][]int{{-gate}}
	case 1:
		return [][]int{{-gate, inputs[0]}, {gate, -inputs[0]}}
	case 2:
		return tseitinXor2(gate, inputs[0], inputs[1])
	default:
		var clauses [][]int
		aux := f.createAuxVar(fmt.Sprintf("xor_%d", gate))
		clauses = append(clauses, tseitinXor2(aux, inputs[0], inputs[1])...)
		prevAux := aux
		for i := 2; i < len(inputs)-1; i++ {
			newAux := f.createAuxVar(fmt.Sprintf("xor_%d_%d", gate, i))
			clauses = append(clauses, tseitinXor2(newAux, prevAux, inputs[i])...)
			prevAux = newAux
		}
		clauses = append(clauses, tseitinXor2(gate, prevAux, inputs[len(inputs)-1])...)
		return clauses
	}
}

func tseitinXor2(out, lit1, lit2 int) [][]int {
	return [][]int{
		{-out, -lit1, -lit2},
		{-out, lit1, lit2},
		{out, -lit1, lit2},
		{out, lit1, -lit2},
	}
}

func (f *Formula) createAuxVar(hint string) int {
	id := f.Alloc.Next()
	name := fmt.Sprintf("_aux_%s_%d", hint, id)
	f.NameToID[name] = id
	f.IDToName[id] = name
	return id
}
