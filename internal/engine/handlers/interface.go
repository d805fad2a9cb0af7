package handlers

import (
	"math/rand"

	"roguecore/internal/domain"
	"roguecore/internal/event"
)

// Vision - то, что пересчитывает видимость. Хендлер только помечает
// её устаревшей, пересчет делает кадр рендерера.
type Vision interface {
	MarkDirty()
}

// Context передает хендлеру модель хода. Живет столько же, сколько игра,
// а мир хендлер получает заново в каждом вызове через ctx.World.
type Context struct {
	World  *domain.World
	Vision Vision     // может быть nil (симуляция без рендера)
	Rng    *rand.Rand // детерминированный рандом игры
}

// Hub - хаб событий над Context.
type Hub = event.Hub[*Context]

// NewHub создает хаб с пределом глубины каскада.
func NewHub(maxDepth int) *Hub {
	return event.NewHub[*Context](maxDepth)
}

// MarkVisionDirty - если есть кому пересчитывать видимость, просим.
func (c *Context) MarkVisionDirty() {
	if c.Vision != nil {
		c.Vision.MarkDirty()
	}
}

// IsViewer - смотрим ли мы глазами этого актора.
func (c *Context) IsViewer(id domain.ActorID) bool {
	return !c.World.Player.IsNil() && c.World.Player == id
}
