package domain

import "fmt"

// События хода. Каждое событие - простая структура-значение:
// копирование = клонирование, %+v = отладочная печать.
// Концевые события (PosChange, DirChange, ...) одновременно являются
// изменениями модели (Change) и записями для анимации.

// --- ПЕРВИЧНЫЕ (их порождает решение актора) ---

// Walk - попытка шагнуть в направлении Dir.
type Walk struct {
	Actor ActorID
	Dir   Direction
}

func (Walk) EventName() string  { return "Walk" }
func (e Walk) Subject() ActorID { return e.Actor }

// MeleeAttack - удар по соседней клетке.
type MeleeAttack struct {
	Attacker ActorID
	Target   ActorID
}

func (MeleeAttack) EventName() string  { return "MeleeAttack" }
func (MeleeAttack) ConsumesTurn() bool { return true }
func (e MeleeAttack) Subject() ActorID { return e.Attacker }

// RestOneTurn - пропуск хода. Обработчик не обязателен.
type RestOneTurn struct {
	Actor ActorID
}

func (RestOneTurn) EventName() string  { return "RestOneTurn" }
func (RestOneTurn) ConsumesTurn() bool { return true }
func (e RestOneTurn) Subject() ActorID { return e.Actor }

// UseHealingDraught - выпить зелье лечения.
type UseHealingDraught struct {
	Actor ActorID
}

func (UseHealingDraught) EventName() string  { return "UseHealingDraught" }
func (e UseHealingDraught) Subject() ActorID { return e.Actor }

// --- ВТОРИЧНЫЕ (их порождают обработчики) ---

// DirChange - актор повернулся.
type DirChange struct {
	Actor ActorID
	Dir   Direction
}

func (DirChange) EventName() string { return "DirChange" }

func (e DirChange) Apply(w *World) error {
	a, err := w.Lookup(e.Actor)
	if err != nil {
		return err
	}
	a.Dir = e.Dir
	return nil
}

// PosChange - актор переместился.
type PosChange struct {
	Actor ActorID
	From  Position
	To    Position
}

func (PosChange) EventName() string  { return "PosChange" }
func (PosChange) ConsumesTurn() bool { return true }

func (e PosChange) Apply(w *World) error {
	a, err := w.Lookup(e.Actor)
	if err != nil {
		return err
	}
	if w.Map.IsBodyBlocked(e.To) {
		return fmt.Errorf("pos change of %s into blocked cell %s", e.Actor, e.To)
	}
	a.Pos = e.To
	return nil
}

// Hit - удар попал, урон уже посчитан системой боя.
type Hit struct {
	Attacker ActorID
	Target   ActorID
	Damage   int
}

func (Hit) EventName() string { return "Hit" }

// GiveDamage - снять HP с цели.
type GiveDamage struct {
	Source ActorID
	Target ActorID
	Amount int
}

func (GiveDamage) EventName() string { return "GiveDamage" }

func (e GiveDamage) Apply(w *World) error {
	a, err := w.Lookup(e.Target)
	if err != nil {
		return err
	}
	if a.Stats == nil {
		return nil
	}
	a.Stats.TakeDamage(e.Amount)
	return nil
}

// Heal - восстановить HP цели.
type Heal struct {
	Target ActorID
	Amount int
}

func (Heal) EventName() string  { return "Heal" }
func (Heal) ConsumesTurn() bool { return true }

func (e Heal) Apply(w *World) error {
	a, err := w.Lookup(e.Target)
	if err != nil {
		return err
	}
	if a.Stats != nil {
		a.Stats.Heal(e.Amount)
	}
	return nil
}

// Death - актор погиб. Тело остается на карте как труп.
type Death struct {
	Actor  ActorID
	Killer ActorID
}

func (Death) EventName() string { return "Death" }

func (e Death) Apply(w *World) error {
	a, err := w.Lookup(e.Actor)
	if err != nil {
		return err
	}
	if a.Stats != nil {
		a.Stats.HP = 0
		a.Stats.IsDead = true
	}
	if a.Render != nil {
		a.Render.Glyph = '%'
		a.Render.Color = "gray"
	}
	if a.AI != nil {
		a.AI.CalmDown()
	}
	return nil
}

// --- UI (останавливают Tick) ---

// AwaitPlayerInput - ход игрока, а команд в очереди нет.
type AwaitPlayerInput struct {
	Actor ActorID
}

func (AwaitPlayerInput) EventName() string { return "AwaitPlayerInput" }

// PlayerDied - игрок погиб, дальше ходить некому.
type PlayerDied struct {
	Actor ActorID
}

func (PlayerDied) EventName() string { return "PlayerDied" }
