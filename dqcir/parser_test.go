package dqcir

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBasicFormula(t *testing.T) {
	src := `
# a trivial formula
forall(u1, u2)
exists(e1)
depend(e1, u1)
g1 = and(e1, -u2)
output(g1)
`
	f, err := ParseReader(strings.NewReader(src))
	require.NoError(t, err)

	assert.Len(t, f.Universals, 2)
	assert.Len(t, f.Existentials, 1)
	e1 := f.NameToID["e1"]
	u1 := f.NameToID["u1"]
	assert.Equal(t, []int{u1}, f.Dependencies[e1])
	assert.Equal(t, f.NameToID["g1"], f.Output)
}

func TestHenkinDefaultDependency(t *testing.T) {
	src := `
forall(u1, u2)
exists(e1)
output(e1)
`
	f, err := ParseReader(strings.NewReader(src))
	require.NoError(t, err)

	e1 := f.NameToID["e1"]
	u1, u2 := f.NameToID["u1"], f.NameToID["u2"]
	assert.Equal(t, []int{u1, u2}, f.Dependencies[e1])
}

func TestHenkinDefaultOnlyCoversUniversalsDeclaredSoFar(t *testing.T) {
	src := `
forall(u1)
exists(e1)
forall(u2)
output(e1)
`
	f, err := ParseReader(strings.NewReader(src))
	require.NoError(t, err)

	e1 := f.NameToID["e1"]
	u1 := f.NameToID["u1"]
	assert.Equal(t, []int{u1}, f.Dependencies[e1])
}

func TestDependOverridesHenkinDefault(t *testing.T) {
	src := `
forall(u1, u2)
exists(e1)
depend(e1, u2)
output(e1)
`
	f, err := ParseReader(strings.NewReader(src))
	require.NoError(t, err)

	e1 := f.NameToID["e1"]
	u2 := f.NameToID["u2"]
	assert.Equal(t, []int{u2}, f.Dependencies[e1])
}

func TestGateOperatorsAreCaseInsensitive(t *testing.T) {
	src := `
forall(u1)
exists(e1)
g1 = AND(e1, u1)
g2 = Or(g1, u1)
g3 = xOr(g1, g2)
output(g3)
`
	f, err := ParseReader(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, f.Gates, 3)
	assert.Equal(t, "and", f.Gates[0].Op)
	assert.Equal(t, "or", f.Gates[1].Op)
	assert.Equal(t, "xor", f.Gates[2].Op)
}

func TestMissingOutputIsAnError(t *testing.T) {
	src := `
forall(u1)
exists(e1)
`
	_, err := ParseReader(strings.NewReader(src))
	assert.Error(t, err)
}

func TestPurelyNumericNamesAreAccepted(t *testing.T) {
	src := `
forall(1,2)
exists(3)
depend(3, 1, 2)
4 = and(1,2)
output(4)
`
	f, err := ParseReader(strings.NewReader(src))
	require.NoError(t, err)

	assert.Len(t, f.Universals, 2)
	assert.Len(t, f.Existentials, 1)
	e := f.NameToID["3"]
	u1, u2 := f.NameToID["1"], f.NameToID["2"]
	assert.Equal(t, []int{u1, u2}, f.Dependencies[e])
	assert.Equal(t, f.NameToID["4"], f.Output)
}

func TestUnknownGateOperatorIsAnError(t *testing.T) {
	src := `
forall(u1)
exists(e1)
g1 = nand(e1, u1)
output(g1)
`
	_, err := ParseReader(strings.NewReader(src))
	assert.Error(t, err)
}
