package dungeon

import (
	"math/rand"

	"roguecore/internal/domain"
	"roguecore/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Rect - Вспомогательная структура для комнаты
type Rect struct {
	X, Y, W, H int
}

func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.W && r.X+r.W >= other.X &&
		r.Y <= other.Y+other.H && r.Y+r.H >= other.Y
}

// Level - готовый уровень: карта, старт игрока и акторы для спавна.
type Level struct {
	Depth  int
	Map    *domain.GridMap
	Start  domain.Position
	Actors []domain.Actor
	Rooms  []Rect
}

func fillWalls(m *domain.GridMap) {
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			m.SetBlocks(domain.Position{X: x, Y: y}, true, true)
		}
	}
}

func carve(m *domain.GridMap, x, y int) {
	m.SetBlocks(domain.Position{X: x, Y: y}, false, false)
}

func createRoom(m *domain.GridMap, room Rect) {
	for y := room.Y + 1; y < room.Y+room.H; y++ {
		for x := room.X + 1; x < room.X+room.W; x++ {
			carve(m, x, y)
		}
	}
}

func createHCorridor(m *domain.GridMap, x1, x2, y int) {
	for x := min(x1, x2); x <= max(x1, x2); x++ {
		carve(m, x, y)
	}
}

func createVCorridor(m *domain.GridMap, y1, y2, x int) {
	for y := min(y1, y2); y <= max(y1, y2); y++ {
		carve(m, x, y)
	}
}

// LevelBuilder предоставляет fluent API для создания уровней.
// Весь рандом идет через rng: один сид - один и тот же уровень.
type LevelBuilder struct {
	depth  int
	width  int
	height int
	rooms  []Rect
	grid   *domain.GridMap
	actors []domain.Actor
	rng    *rand.Rand
}

// NewLevel создает новый builder для уровня
func NewLevel(depth int, rng *rand.Rand) *LevelBuilder {
	return &LevelBuilder{
		depth:  depth,
		width:  MapWidth,
		height: MapHeight,
		actors: make([]domain.Actor, 0),
		rng:    rng,
	}
}

func (b *LevelBuilder) randRange(min, max int) int {
	return b.rng.Intn(max-min+1) + min
}

// WithSize устанавливает размер карты
func (b *LevelBuilder) WithSize(width, height int) *LevelBuilder {
	b.width = width
	b.height = height
	return b
}

// WithRooms генерирует комнаты и коридоры
func (b *LevelBuilder) WithRooms(maxRooms int) *LevelBuilder {
	b.grid = domain.NewGridMap(b.width, b.height)
	fillWalls(b.grid)

	b.rooms = make([]Rect, 0, maxRooms)
	for i := 0; i < maxRooms; i++ {
		w := b.randRange(MinSize, MaxSize)
		h := b.randRange(MinSize, MaxSize)
		if w >= b.width-2 || h >= b.height-2 {
			continue
		}
		x := b.randRange(1, b.width-w-1)
		y := b.randRange(1, b.height-h-1)

		newRoom := Rect{X: x, Y: y, W: w, H: h}

		failed := false
		for _, other := range b.rooms {
			if newRoom.Intersects(other) {
				failed = true
				break
			}
		}
		if failed {
			continue
		}

		createRoom(b.grid, newRoom)

		// Соединяем с предыдущей комнатой
		if len(b.rooms) > 0 {
			prevX, prevY := b.rooms[len(b.rooms)-1].Center()
			currX, currY := newRoom.Center()

			if b.rng.Intn(2) == 0 {
				createHCorridor(b.grid, prevX, currX, prevY)
				createVCorridor(b.grid, prevY, currY, currX)
			} else {
				createVCorridor(b.grid, prevY, currY, prevX)
				createHCorridor(b.grid, prevX, currX, currY)
			}
		}
		b.rooms = append(b.rooms, newRoom)
	}

	return b
}

// WithCurtains вешает занавеси (видимость закрыта, проход открыт)
// на count случайных клеток коридоров и комнат, кроме стартовой.
func (b *LevelBuilder) WithCurtains(count int) *LevelBuilder {
	if b.grid == nil || len(b.rooms) < 2 {
		return b
	}
	start := b.GetStartPos()
	for placed, attempt := 0, 0; placed < count && attempt < count*20; attempt++ {
		room := b.rooms[b.rng.Intn(len(b.rooms)-1)+1]
		pos := domain.Position{
			X: room.X + 1 + b.rng.Intn(max(room.W-1, 1)),
			Y: room.Y + 1 + b.rng.Intn(max(room.H-1, 1)),
		}
		if pos == start || b.grid.IsBodyBlocked(pos) || b.grid.IsViewBlocked(pos) {
			continue
		}
		b.grid.SetBlocks(pos, false, true)
		placed++
	}
	return b
}

// freeCellNear ищет проходимую незанятую клетку рядом с центром комнаты.
func (b *LevelBuilder) freeCellNear(room Rect) (domain.Position, bool) {
	cx, cy := room.Center()
	for attempt := 0; attempt < 20; attempt++ {
		pos := domain.Position{X: cx + b.randRange(-1, 1), Y: cy + b.randRange(-1, 1)}
		if b.grid.IsBodyBlocked(pos) || pos == b.GetStartPos() || b.occupied(pos) {
			continue
		}
		return pos, true
	}
	return domain.Position{}, false
}

func (b *LevelBuilder) occupied(pos domain.Position) bool {
	for i := range b.actors {
		if b.actors[i].Pos == pos {
			return true
		}
	}
	return false
}

func (b *LevelBuilder) spawn(template ActorTemplate, count int, scale bool) *LevelBuilder {
	spawnLogger := logger.Component("dungeon").WithFields(logrus.Fields{
		"template": template.Name,
		"depth":    b.depth,
	})

	// Спавним в случайных комнатах (кроме первой)
	for i := 0; i < count && len(b.rooms) > 1; i++ {
		room := b.rooms[b.rng.Intn(len(b.rooms)-1)+1]
		pos, ok := b.freeCellNear(room)
		if !ok {
			spawnLogger.Debug("No free cell for spawn, skipped.")
			continue
		}

		t := template
		if scale {
			// Масштабируем статы по глубине
			t.Stats.HP += b.depth * 2
			t.Stats.Strength += b.depth / 2
		}
		b.actors = append(b.actors, t.Spawn(pos))
	}
	return b
}

// SpawnEnemy спавнит врагов из шаблона
func (b *LevelBuilder) SpawnEnemy(templateName string, count int) *LevelBuilder {
	template, ok := EnemyTemplates[templateName]
	if !ok {
		logger.Component("dungeon").WithField("template", templateName).Warn("Unknown enemy template.")
		return b
	}
	return b.spawn(template, count, true)
}

// SpawnNPC спавнит мирных NPC из шаблона
func (b *LevelBuilder) SpawnNPC(templateName string, count int) *LevelBuilder {
	template, ok := NPCTemplates[templateName]
	if !ok {
		logger.Component("dungeon").WithField("template", templateName).Warn("Unknown NPC template.")
		return b
	}
	return b.spawn(template, count, false)
}

// GetStartPos возвращает стартовую позицию (центр первой комнаты)
func (b *LevelBuilder) GetStartPos() domain.Position {
	if len(b.rooms) > 0 {
		cx, cy := b.rooms[0].Center()
		return domain.Position{X: cx, Y: cy}
	}
	return domain.Position{X: b.width / 2, Y: b.height / 2}
}

// Build собирает и возвращает готовый уровень
func (b *LevelBuilder) Build() Level {
	if b.grid == nil {
		b.grid = domain.NewGridMap(b.width, b.height)
	}
	return Level{
		Depth:  b.depth,
		Map:    b.grid,
		Start:  b.GetStartPos(),
		Actors: b.actors,
		Rooms:  b.rooms,
	}
}
