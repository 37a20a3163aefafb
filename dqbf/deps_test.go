package dqbf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDependenciesOfAndContains(t *testing.T) {
	d := NewDependencies(map[int][]int{10: {1, 2, 3}})
	assert.Equal(t, []int{1, 2, 3}, d.Of(10))
	assert.True(t, d.Contains(10, 2))
	assert.False(t, d.Contains(10, 99))
	assert.False(t, d.Contains(99, 1))
}

func TestDependenciesRestrictPreservesOrderAndFiltersOutsideDeps(t *testing.T) {
	d := NewDependencies(map[int][]int{10: {1, 2}})
	got := d.Restrict(10, []int{-2, 5, 1, -7})
	assert.Equal(t, []int{-2, 1}, got)
}

func TestDependenciesOfUnknownExistentialIsNil(t *testing.T) {
	d := NewDependencies(map[int][]int{})
	assert.Nil(t, d.Of(1))
}
