package domain

// --- КОМПОНЕНТЫ ---

// RenderComponent - как актор выглядит в терминале
type RenderComponent struct {
	Glyph rune   `json:"glyph"` // '@' - игрок, 'g' - гоблин
	Color string `json:"color"` // имя цвета, интерпретирует рендерер
}

// StatsComponent - Характеристики и Ресурсы
type StatsComponent struct {
	HP       int  `json:"hp"`
	MaxHP    int  `json:"maxHp"`
	Strength int  `json:"strength"`
	Defense  int  `json:"defense"`
	Draughts int  `json:"draughts"` // зелья лечения
	IsCursed bool `json:"isCursed"` // лечение превращается в урон
	IsDead   bool `json:"isDead"`
}

// AIState - режим поведения
type AIState uint8

const (
	AIStateIdle AIState = iota
	AIStateCombat
)

// AIComponent - Мозги, Поведение и Время
// Примечание: У игрока тоже есть этот компонент, чтобы хранить NextActionTick
type AIComponent struct {
	IsHostile      bool    `json:"isHostile"`
	State          AIState `json:"state"`
	NextActionTick int     `json:"nextActionTick"` // <-- Очередь ходов
}

// VisionComponent - настройки зрения
type VisionComponent struct {
	Radius int `json:"radius"`
}
