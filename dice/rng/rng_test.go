package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Seeded_deterministic(t *testing.T) {
	a := Seeded(42)
	b := Seeded(42)

	for i := 0; i < 20; i++ {
		va := a.UniformInclusive(1, 100)
		vb := b.UniformInclusive(1, 100)
		assert.Equal(t, va, vb)
	}
}

func Test_Seeded_withinBounds(t *testing.T) {
	src := Seeded(7)
	for i := 0; i < 200; i++ {
		v := src.UniformInclusive(3, 9)
		assert.GreaterOrEqual(t, v, int64(3))
		assert.LessOrEqual(t, v, int64(9))
	}
}

func Test_Scripted_replaysInOrder(t *testing.T) {
	s := &Scripted{Draws: []int64{1, 2, 3}}
	assert.Equal(t, int64(1), s.UniformInclusive(1, 6))
	assert.Equal(t, int64(2), s.ChooseOne([]int64{9, 9}))
	assert.Equal(t, int64(3), s.UniformInclusive(1, 6))
}

func Test_Scripted_panicsWhenExhausted(t *testing.T) {
	s := &Scripted{Draws: []int64{1}}
	s.UniformInclusive(1, 6)
	assert.Panics(t, func() { s.UniformInclusive(1, 6) })
}

func Test_Counting_tallies(t *testing.T) {
	c := NewCounting(&Scripted{Draws: []int64{1, 2, 3, 4}})
	c.UniformInclusive(1, 6)
	c.ChooseOne([]int64{1, 2})
	require.Equal(t, int64(2), c.N)
	c.UniformInclusive(1, 6)
	c.UniformInclusive(1, 6)
	assert.Equal(t, int64(4), c.N)
}
