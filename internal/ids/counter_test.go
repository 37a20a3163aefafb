package ids

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllocatorNextIsMonotonic(t *testing.T) {
	a := NewAllocator()
	assert.Equal(t, 1, a.Next())
	assert.Equal(t, 2, a.Next())
	assert.Equal(t, 3, a.Next())
	assert.Equal(t, 3, a.Count())
}

func TestAllocatorPeekDoesNotConsume(t *testing.T) {
	a := NewAllocator()
	a.Next()
	assert.Equal(t, 2, a.Peek())
	assert.Equal(t, 2, a.Peek())
	assert.Equal(t, 2, a.Next())
}
