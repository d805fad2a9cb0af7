// Package dungeon генерирует уровни: карту проходимости/прозрачности
// и стартовый набор акторов.
package dungeon

import (
	"math/rand"
)

// Константы генерации
const (
	MapWidth  = 60
	MapHeight = 25
	MaxRooms  = 10
	MinSize   = 4
	MaxSize   = 10
)

// Generate создает подземелье глубины depth. Один rng - один уровень.
func Generate(depth int, rng *rand.Rand) Level {
	b := NewLevel(depth, rng).
		WithRooms(MaxRooms).
		WithCurtains(2 + depth).
		SpawnEnemy("goblin", 2+depth).
		SpawnEnemy("orc", depth)
	if depth > 2 {
		b.SpawnEnemy("troll", 1)
	}
	return b.SpawnNPC("merchant", 1).Build()
}
