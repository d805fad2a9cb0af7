package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGridMap_OutOfBoundsIsBlocked(t *testing.T) {
	m := NewGridMap(3, 2)

	outside := []Position{
		{X: -1, Y: 0}, {X: 0, Y: -1}, {X: 3, Y: 0}, {X: 0, Y: 2},
		{X: -1 << 31, Y: 1 << 31}, {X: 1<<62 - 1, Y: 0},
	}
	for _, p := range outside {
		assert.False(t, m.Contains(p), "contains %s", p)
		assert.True(t, m.IsBodyBlocked(p), "body %s", p)
		assert.True(t, m.IsViewBlocked(p), "view %s", p)
		assert.True(t, m.IsOpaque(p), "opaque %s", p)
	}

	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			p := Position{X: x, Y: y}
			assert.True(t, m.Contains(p))
			assert.False(t, m.IsBodyBlocked(p))
			assert.False(t, m.IsViewBlocked(p))
		}
	}
}

func TestGridMapFromRows(t *testing.T) {
	m := GridMapFromRows([]string{
		"#+~.",
		"..",
	})

	assert.Equal(t, 4, m.Width)
	assert.Equal(t, 2, m.Height)
	assert.Len(t, m.bodyBlocks, 8)
	assert.Len(t, m.viewBlocks, 8)

	wall := Position{X: 0, Y: 0}
	curtain := Position{X: 1, Y: 0}
	water := Position{X: 2, Y: 0}
	floor := Position{X: 3, Y: 0}
	padded := Position{X: 3, Y: 1}

	assert.True(t, m.IsBodyBlocked(wall))
	assert.True(t, m.IsViewBlocked(wall))

	assert.False(t, m.IsBodyBlocked(curtain))
	assert.True(t, m.IsViewBlocked(curtain))

	assert.True(t, m.IsBodyBlocked(water))
	assert.False(t, m.IsViewBlocked(water))

	assert.False(t, m.IsBodyBlocked(floor))
	assert.False(t, m.IsViewBlocked(padded))
}

func TestGridMap_SetBlocks(t *testing.T) {
	m := NewGridMap(2, 2)
	p := Position{X: 1, Y: 1}

	m.SetBlocks(p, true, true)
	assert.True(t, m.IsBodyBlocked(p))
	assert.True(t, m.IsViewBlocked(p))

	// Разрушили стену
	m.SetBlocks(p, false, false)
	assert.False(t, m.IsBodyBlocked(p))

	// Запись за границу не паникует
	m.SetBlocks(Position{X: 5, Y: 5}, true, true)
}

func TestGridMap_LiteralWithoutStorage(t *testing.T) {
	m := &GridMap{Width: 3, Height: 3}
	center := Position{X: 1, Y: 1}

	assert.NotPanics(t, func() {
		assert.False(t, m.Contains(center))
		assert.True(t, m.IsBodyBlocked(center))
		assert.True(t, m.IsViewBlocked(center))
		m.SetBlocks(center, false, false)
	})
}
