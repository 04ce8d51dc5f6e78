package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridBoundsAndNeighbors(t *testing.T) {
	g := NewGrid[uint8](4, 3)
	require.Len(t, g.Cells(), 12)

	assert.True(t, g.Set(3, 2, 7))
	assert.False(t, g.Set(4, 0, 1))
	assert.False(t, g.Set(-1, 0, 1))

	v, ok := g.At(3, 2)
	require.True(t, ok)
	assert.Equal(t, uint8(7), v)

	_, ok = g.At(0, 3)
	assert.False(t, ok)

	corner := g.Neighbors(nil, 0, 0)
	assert.ElementsMatch(t, []Point{{1, 0}, {1, 1}, {0, 1}}, corner)

	inner := g.Neighbors(nil, 1, 1)
	assert.Len(t, inner, 8)
}

func TestNewGridRejectsNonPositive(t *testing.T) {
	g := NewGrid[int](0, 5)
	assert.Empty(t, g.Cells())
	assert.False(t, g.InBounds(0, 0))
}

func TestGridFill(t *testing.T) {
	g := NewGrid[int](2, 2)
	g.Fill(3)
	assert.Equal(t, []int{3, 3, 3, 3}, g.Cells())
}
