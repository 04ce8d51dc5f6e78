package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRNGDeterministic(t *testing.T) {
	a := NewRNG(42)
	b := NewRNG(42)
	for i := 0; i < 64; i++ {
		assert.Equal(t, a.IntN(1000), b.IntN(1000))
		assert.Equal(t, a.Float64(), b.Float64())
	}
}

func TestRNGBounds(t *testing.T) {
	r := NewRNG(7)
	assert.Equal(t, 0, r.IntN(0))
	for i := 0; i < 200; i++ {
		f := r.Float64()
		assert.GreaterOrEqual(t, f, 0.0)
		assert.Less(t, f, 1.0)
	}
}

func TestChanceAndBetween(t *testing.T) {
	r := NewRNG(1)
	assert.False(t, Chance(r, 0))
	assert.True(t, Chance(r, 1))
	for i := 0; i < 100; i++ {
		v := Between(r, 9, 3)
		assert.GreaterOrEqual(t, v, 3)
		assert.LessOrEqual(t, v, 9)
	}
	assert.Equal(t, 5, Between(r, 5, 5))
}
