package dqcir

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTseitinAndClauses(t *testing.T) {
	src := `
forall(u1)
exists(e1)
g1 = and(e1, -u1)
output(g1)
`
	f, err := ParseReader(strings.NewReader(src))
	require.NoError(t, err)
	e1, u1, g1 := f.NameToID["e1"], f.NameToID["u1"], f.NameToID["g1"]

	clauses := f.Tseitin()
	assert.Contains(t, clauses, []int{-g1, e1})
	assert.Contains(t, clauses, []int{-g1, -u1})
	assert.Contains(t, clauses, []int{g1, -e1, u1})
}

func TestTseitinOrClauses(t *testing.T) {
	src := `
forall(u1)
exists(e1)
g1 = or(e1, u1)
output(g1)
`
	f, err := ParseReader(strings.NewReader(src))
	require.NoError(t, err)
	e1, u1, g1 := f.NameToID["e1"], f.NameToID["u1"], f.NameToID["g1"]

	clauses := f.Tseitin()
	assert.Contains(t, clauses, []int{-e1, g1})
	assert.Contains(t, clauses, []int{-u1, g1})
	assert.Contains(t, clauses, []int{-g1, e1, u1})
}

func TestTseitinXorTwoInputs(t *testing.T) {
	src := `
forall(u1, u2)
g1 = xor(u1, u2)
output(g1)
`
	f, err := ParseReader(strings.NewReader(src))
	require.NoError(t, err)
	u1, u2, g1 := f.NameToID["u1"], f.NameToID["u2"], f.NameToID["g1"]

	clauses := f.Tseitin()
	assert.ElementsMatch(t, [][]int{
		{-g1, -u1, -u2},
		{-g1, u1, u2},
		{g1, -u1, u2},
		{g1, u1, -u2},
	}, clauses)
}

func TestTseitinXorChainsAuxVarsForMoreThanTwoInputs(t *testing.T) {
	src := `
forall(u1, u2, u3, u4)
g1 = xor(u1, u2, u3, u4)
output(g1)
`
	f, err := ParseReader(strings.NewReader(src))
	require.NoError(t, err)
	before := f.Alloc.Count()

	clauses := f.Tseitin()

	// Two aux vars minted for a 4-input xor: one combining the first two
	// inputs, one combining that with the third, before the final xor2
	// closes onto the gate itself with the fourth input.
	assert.Equal(t, before+2, f.Alloc.Count())
	assert.Len(t, clauses, 12)
}

func TestTseitinEmptyXorIsUnitFalse(t *testing.T) {
	src := `
exists(e1)
g1 = xor()
output(g1)
`
	f, err := ParseReader(strings.NewReader(src))
	require.NoError(t, err)
	g1 := f.NameToID["g1"]

	clauses := f.Tseitin()
	assert.Equal(t, [][]int{{-g1}}, clauses)
}
