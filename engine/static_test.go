package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dqbfsolver/engine"
)

func TestStaticSolvesBootstrapMatrix(t *testing.T) {
	e := engine.NewStatic([][]int{{1, 2}, {-1}}, 2, 0)
	require.Equal(t, engine.Sat, e.Solve())
	assert.Equal(t, 2, e.Val(2))
}

func TestStaticDetectsConflict(t *testing.T) {
	e := engine.NewStatic([][]int{{1}, {-1}}, 1, 0)
	assert.Equal(t, engine.Unsat, e.Solve())
}

func TestStaticReservesHeadroomForExtraAssumptionVariables(t *testing.T) {
	// nbVars=2 (the matrix), extraVars=1 reserves variable 3 for a caller
	// to allocate and assume against, exactly what
	// DetectEquivalentExistentials does for its per-pair assumption var.
	e := engine.NewStatic([][]int{{1, 2}}, 2, 1)
	e.AddClause([]int{-3, 1})
	e.Assume([]int{3})
	require.Equal(t, engine.Sat, e.Solve())
	assert.Equal(t, 1, e.Val(1))
}

func TestStaticAssumeDrivesConflictUnderAssumption(t *testing.T) {
	e := engine.NewStatic([][]int{{1, 2}}, 2, 0)
	e.Assume([]int{-1, -2})
	assert.Equal(t, engine.Unsat, e.Solve())
}
