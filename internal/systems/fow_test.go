package systems

import (
	"testing"

	"roguecore/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestFOW_Monotonic(t *testing.T) {
	fow := NewFowData(4, 4)
	a := domain.Position{X: 1, Y: 1}
	b := domain.Position{X: 3, Y: 0}

	assert.False(t, fow.IsVisible(a))

	fow.Uncover(a)
	for i := 0; i < 3; i++ {
		assert.True(t, fow.IsVisible(a), "read %d", i)
		fow.Uncover(b)
		fow.Uncover(a) // повторное открытие ничего не ломает
	}
	assert.Equal(t, 2, fow.Count())

	fow.Cover(a)
	assert.False(t, fow.IsVisible(a))
	assert.True(t, fow.IsVisible(b))
	assert.Equal(t, 1, fow.Count())

	fow.Uncover(a)
	fow.Clear()
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			assert.False(t, fow.IsVisible(domain.Position{X: x, Y: y}))
		}
	}
	assert.Zero(t, fow.Count())
}

func TestFOW_OutOfBounds(t *testing.T) {
	fow := NewFowData(2, 2)
	out := domain.Position{X: 2, Y: 0}

	// Запись за границу логируется и игнорируется
	fow.Uncover(out)
	fow.Cover(domain.Position{X: -1, Y: -1})

	assert.False(t, fow.IsVisible(out))
	assert.Zero(t, fow.Count())
}

func TestFOW_CopyFromIsDeep(t *testing.T) {
	src := NewFowData(3, 3)
	src.Uncover(domain.Position{X: 0, Y: 0})

	dst := NewFowData(3, 3)
	dst.CopyFrom(src)
	assert.True(t, dst.IsVisible(domain.Position{X: 0, Y: 0}))

	src.Uncover(domain.Position{X: 2, Y: 2})
	assert.False(t, dst.IsVisible(domain.Position{X: 2, Y: 2}), "copy must not alias the source")
	assert.Equal(t, 1, dst.Count())
}
