package unionfind

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnionFindBasic(t *testing.T) {
	u := New()
	assert.False(t, u.SameSet(1, 2))
	u.Union(1, 2)
	assert.True(t, u.SameSet(1, 2))
	assert.False(t, u.SameSet(1, 3))
}

func TestUnionFindTransitivity(t *testing.T) {
	u := New()
	u.Union(1, 2)
	u.Union(2, 3)
	assert.True(t, u.SameSet(1, 3))
}

func TestUnionFindClasses(t *testing.T) {
	u := New()
	u.Union(1, 2)
	u.Union(3, 4)
	u.Find(5)

	classes := u.Classes()
	assert.Len(t, classes, 3)

	sizes := map[int]bool{}
	for _, members := range classes {
		sizes[len(members)] = true
	}
	assert.True(t, sizes[2])
	assert.True(t, sizes[1])
}
