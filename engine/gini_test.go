package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dqbfsolver/engine"
)

func TestGiniSolvesUnitClause(t *testing.T) {
	e := engine.NewGini()
	e.AddClause([]int{1})
	require.Equal(t, engine.Sat, e.Solve())
	assert.Equal(t, 1, e.Val(1))
}

func TestGiniDetectsConflict(t *testing.T) {
	e := engine.NewGini()
	e.AddClause([]int{1})
	e.AddClause([]int{-1})
	assert.Equal(t, engine.Unsat, e.Solve())
}

func TestGiniAssumeIsScopedToOneSolve(t *testing.T) {
	e := engine.NewGini()
	e.AddClause([]int{1, 2})

	e.Assume([]int{-1})
	require.Equal(t, engine.Sat, e.Solve())
	assert.Equal(t, 2, e.Val(2))

	e.Assume([]int{-2})
	require.Equal(t, engine.Sat, e.Solve())
	assert.Equal(t, 1, e.Val(1))
}

func TestGiniFailedReturnsSubsetOfAssumedInOrder(t *testing.T) {
	e := engine.NewGini()
	e.AddClause([]int{-1, -2})

	assumed := []int{1, 2}
	e.Assume(assumed)
	require.Equal(t, engine.Unsat, e.Solve())

	core := e.Failed(assumed)
	for _, lit := range core {
		assert.Contains(t, assumed, lit)
	}
}

func TestGiniGrowsVocabularyAcrossClauses(t *testing.T) {
	e := engine.NewGini()
	e.AddClause([]int{1})
	e.AddClause([]int{50})
	require.Equal(t, engine.Sat, e.Solve())
	assert.Equal(t, 50, e.Val(50))
}
