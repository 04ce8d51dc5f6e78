package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestFixedStepDue(t *testing.T) {
	clock := &fakeClock{t: time.Unix(100, 0)}
	fs := NewFixedStep(10)
	fs.now = clock.now
	fs.accumulator = 0

	assert.Equal(t, 0, fs.Due())

	clock.advance(250 * time.Millisecond)
	assert.Equal(t, 2, fs.Due())

	clock.advance(50 * time.Millisecond)
	assert.Equal(t, 1, fs.Due(), "leftover time carries over")

	clock.advance(10 * time.Second)
	assert.Equal(t, 4, fs.Due(), "catch-up is capped")
	assert.Equal(t, 0, fs.Due(), "excess after a stall is dropped")
}

func TestFixedStepShouldStep(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	fs := NewFixedStep(0)
	fs.now = clock.now

	assert.Equal(t, 60, fs.TPS())
	assert.True(t, fs.ShouldStep(), "first call consumes the primed step")
	assert.False(t, fs.ShouldStep())

	clock.advance(time.Second / 60)
	assert.True(t, fs.ShouldStep())
}

func TestFixedStepCatchUpLimit(t *testing.T) {
	clock := &fakeClock{t: time.Unix(5, 0)}
	fs := NewFixedStep(100)
	fs.now = clock.now
	fs.SetMaxCatchUp(0)
	fs.Due()

	clock.advance(time.Second)
	assert.Equal(t, 1, fs.Due(), "limit never drops below one tick")

	fs.SetMaxCatchUp(8)
	clock.advance(time.Second)
	assert.Equal(t, 8, fs.Due())
}
