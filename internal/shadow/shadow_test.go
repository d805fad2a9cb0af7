package shadow

import (
	"io"
	"os"
	"testing"

	"roguecore/internal/domain"
	"roguecore/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanema/gween/ease"
)

func TestMain(m *testing.M) {
	logger.InitWithOutput(io.Discard)
	os.Exit(m.Run())
}

func pos(x, y int) domain.Position { return domain.Position{X: x, Y: y} }

func TestDouble_Swap(t *testing.T) {
	d := NewDouble(1, 2)
	assert.Equal(t, 1, *d.Front())
	assert.Equal(t, 2, *d.Back())

	*d.Back() = 20
	d.Swap()
	assert.Equal(t, 20, *d.Front())
	assert.Equal(t, 1, *d.Back())

	d.Swap()
	assert.Equal(t, 1, *d.Front())
}

func TestShadow_InitialState(t *testing.T) {
	s := New(10, 10, Config{Radius: 3, Transition: 0.5})

	assert.Equal(t, float32(1), s.Progress())
	assert.True(t, s.Finished())
	assert.False(t, s.IsDirty())
	assert.Equal(t, 0, s.Fov.Front().Len())
	assert.Equal(t, 0, s.Fow.Front().Count())
	assert.Equal(t, AlphaUnknown, s.CellAlpha(pos(5, 5)))
}

func TestShadow_CalculateSwapsBuffers(t *testing.T) {
	m := domain.NewGridMap(30, 10)
	s := New(30, 10, Config{Radius: 2})

	s.Calculate(pos(3, 5), m)
	firstLit := s.Fov.Front().LitCells()
	firstExplored := s.Fow.Front().Count()
	require.NotEmpty(t, firstLit)
	assert.Equal(t, len(firstLit), firstExplored)

	s.Calculate(pos(20, 5), m)

	// Front - новое вычисление, back - предыдущее.
	assert.True(t, s.Fov.Front().IsLit(pos(20, 5)))
	assert.False(t, s.Fov.Front().IsLit(pos(3, 5)))
	assert.Equal(t, firstLit, s.Fov.Back().LitCells())

	// Туман: back - снимок до второго расчета, front - объединение.
	assert.Equal(t, firstExplored, s.Fow.Back().Count())
	assert.Equal(t, 2*firstExplored, s.Fow.Front().Count())
	assert.True(t, s.Fow.Front().IsVisible(pos(3, 5)))
	assert.True(t, s.Fow.Front().IsVisible(pos(20, 5)))
	assert.False(t, s.Fow.Back().IsVisible(pos(20, 5)))
}

func TestShadow_FowBuffersDoNotAlias(t *testing.T) {
	m := domain.NewGridMap(10, 10)
	s := New(10, 10, Config{Radius: 1})

	s.Calculate(pos(2, 2), m)
	s.Calculate(pos(2, 2), m)

	s.Fow.Front().Uncover(pos(9, 9))
	assert.True(t, s.Fow.Front().IsVisible(pos(9, 9)))
	assert.False(t, s.Fow.Back().IsVisible(pos(9, 9)))

	s.Fow.Back().Cover(pos(2, 2))
	assert.True(t, s.Fow.Front().IsVisible(pos(2, 2)))
}

func TestShadow_FowIsMonotonic(t *testing.T) {
	m := domain.NewGridMap(20, 20)
	s := New(20, 20, Config{Radius: 3})

	origins := []domain.Position{pos(3, 3), pos(10, 10), pos(16, 4), pos(3, 3)}
	prev := 0
	for _, o := range origins {
		s.Calculate(o, m)
		count := s.Fow.Front().Count()
		assert.GreaterOrEqual(t, count, prev)
		for _, c := range s.Fov.Front().LitCells() {
			assert.True(t, s.Fow.Front().IsVisible(c), "lit cell %s must be explored", c)
		}
		prev = count
	}
}

func TestShadow_PostUpdateOnlyWhenDirty(t *testing.T) {
	m := domain.NewGridMap(10, 10)
	s := New(10, 10, Config{Radius: 2})

	s.PostUpdate(0.016, m, pos(5, 5))
	assert.Equal(t, 0, s.Fov.Front().Len(), "clean shadow must not recalculate")

	s.MarkDirty()
	assert.True(t, s.IsDirty())
	s.PostUpdate(0.016, m, pos(5, 5))
	assert.False(t, s.IsDirty())
	assert.True(t, s.Fov.Front().IsLit(pos(5, 5)))

	// Новых пересчетов без MarkDirty нет: origin не учитывается.
	s.PostUpdate(0.016, m, pos(1, 1))
	assert.True(t, s.Fov.Front().IsLit(pos(5, 5)))
	assert.False(t, s.Fov.Front().IsLit(pos(1, 1)))
}

func TestShadow_TransitionTimer(t *testing.T) {
	m := domain.NewGridMap(10, 10)
	s := New(10, 10, Config{Radius: 2, Transition: 1, Easing: ease.Linear})

	s.Calculate(pos(5, 5), m)
	assert.Equal(t, float32(0), s.Progress())
	assert.False(t, s.Finished())

	s.PostUpdate(0.25, m, pos(5, 5))
	assert.InDelta(t, 0.25, s.Progress(), 1e-4)

	s.PostUpdate(0.25, m, pos(5, 5))
	assert.InDelta(t, 0.5, s.Progress(), 1e-4)

	s.PostUpdate(1, m, pos(5, 5))
	assert.Equal(t, float32(1), s.Progress())
	assert.True(t, s.Finished())

	// Новый расчет перезапускает таймер.
	s.Calculate(pos(4, 4), m)
	assert.Equal(t, float32(0), s.Progress())
}

func TestShadow_DefaultEasingIsOutQuad(t *testing.T) {
	m := domain.NewGridMap(10, 10)
	s := New(10, 10, Config{Radius: 2, Transition: 1})

	s.Calculate(pos(5, 5), m)
	s.PostUpdate(0.5, m, pos(5, 5))
	assert.InDelta(t, 0.75, s.Progress(), 1e-4)
}

func TestShadow_ZeroTransitionIsInstant(t *testing.T) {
	m := domain.NewGridMap(10, 10)
	s := New(10, 10, Config{Radius: 2})

	s.Calculate(pos(5, 5), m)
	assert.Equal(t, float32(1), s.Progress())
	assert.True(t, s.Finished())
}

func TestShadow_CellAlphaBlends(t *testing.T) {
	m := domain.NewGridMap(30, 5)
	s := New(30, 5, Config{Radius: 1, Transition: 1, Easing: ease.Linear})

	s.Calculate(pos(2, 2), m)
	s.PostUpdate(1, m, pos(2, 2))
	assert.Equal(t, AlphaLit, s.CellAlpha(pos(2, 2)))
	assert.Equal(t, AlphaUnknown, s.CellAlpha(pos(20, 2)))

	s.Calculate(pos(20, 2), m)
	// В начале перехода видна старая картинка.
	assert.Equal(t, AlphaLit, s.CellAlpha(pos(2, 2)))
	assert.Equal(t, AlphaUnknown, s.CellAlpha(pos(20, 2)))

	s.PostUpdate(0.5, m, pos(20, 2))
	assert.InDelta(t, (AlphaLit+AlphaRemembered)/2, s.CellAlpha(pos(2, 2)), 1e-4)
	assert.InDelta(t, AlphaLit/2, s.CellAlpha(pos(20, 2)), 1e-4)

	s.PostUpdate(1, m, pos(20, 2))
	assert.InDelta(t, AlphaRemembered, s.CellAlpha(pos(2, 2)), 1e-6)
	assert.InDelta(t, AlphaLit, s.CellAlpha(pos(20, 2)), 1e-6)
}

func TestShadow_SetRadiusAndReset(t *testing.T) {
	m := domain.NewGridMap(20, 20)
	s := New(20, 20, Config{Radius: 1})

	s.SetRadius(1)
	assert.False(t, s.IsDirty(), "same radius is a no-op")

	s.SetRadius(4)
	assert.True(t, s.IsDirty())
	s.PostUpdate(0, m, pos(10, 10))
	assert.True(t, s.Fov.Front().IsLit(pos(14, 10)))
	assert.Equal(t, 4, s.Fov.Front().Radius)

	s.SetRadius(-3)
	assert.Equal(t, 0, s.Radius())

	s.Reset()
	assert.Equal(t, 0, s.Fow.Front().Count())
	assert.Equal(t, 0, s.Fov.Front().Len())
	assert.True(t, s.IsDirty())
}
