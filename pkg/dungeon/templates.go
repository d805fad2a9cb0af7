package dungeon

import (
	"roguecore/internal/domain"
)

// ActorTemplate определяет шаблон для создания актора
type ActorTemplate struct {
	Name   string
	Type   string
	Render domain.RenderComponent
	Stats  domain.StatsComponent
	AI     domain.AIComponent
	Vision int // 0 - domain.VisionRadius
}

// Spawn создает актора из шаблона на заданной позиции.
// ID выдаст арена мира при World.Spawn.
func (t ActorTemplate) Spawn(pos domain.Position) domain.Actor {
	vision := t.Vision
	if vision == 0 {
		vision = domain.VisionRadius
	}
	return domain.Actor{
		Type: t.Type,
		Name: t.Name,
		Pos:  pos,
		Dir:  domain.DirS,
		Render: &domain.RenderComponent{
			Glyph: t.Render.Glyph,
			Color: t.Render.Color,
		},
		Stats: &domain.StatsComponent{
			HP:       t.Stats.HP,
			MaxHP:    t.Stats.HP,
			Strength: t.Stats.Strength,
			Defense:  t.Stats.Defense,
			Draughts: t.Stats.Draughts,
			IsCursed: t.Stats.IsCursed,
		},
		AI: &domain.AIComponent{
			IsHostile: t.AI.IsHostile,
			State:     domain.AIStateIdle,
		},
		Vision: &domain.VisionComponent{Radius: vision},
	}
}

// --- ВРАГИ ---

var Goblin = ActorTemplate{
	Name:   "Хитрый Гоблин",
	Type:   domain.ActorTypeEnemy,
	Render: domain.RenderComponent{Glyph: 'g', Color: "green"},
	Stats:  domain.StatsComponent{HP: 15, Strength: 2},
	AI:     domain.AIComponent{IsHostile: true},
}

var Orc = ActorTemplate{
	Name:   "Свирепый Орк",
	Type:   domain.ActorTypeEnemy,
	Render: domain.RenderComponent{Glyph: 'O', Color: "red"},
	Stats:  domain.StatsComponent{HP: 30, Strength: 5, Defense: 1},
	AI:     domain.AIComponent{IsHostile: true},
}

var Troll = ActorTemplate{
	Name:   "Каменный Тролль",
	Type:   domain.ActorTypeEnemy,
	Render: domain.RenderComponent{Glyph: 'T', Color: "gray"},
	Stats:  domain.StatsComponent{HP: 50, Strength: 8, Defense: 3},
	AI:     domain.AIComponent{IsHostile: true},
	Vision: 5,
}

// --- NPC (мирные) ---

var Merchant = ActorTemplate{
	Name:   "Торговец",
	Type:   domain.ActorTypeNPC,
	Render: domain.RenderComponent{Glyph: 'M', Color: "yellow"},
	Stats:  domain.StatsComponent{HP: 20, Strength: 1, Draughts: 5},
	AI:     domain.AIComponent{IsHostile: false},
}

// EnemyTemplates - карта всех доступных врагов
var EnemyTemplates = map[string]ActorTemplate{
	"goblin": Goblin,
	"orc":    Orc,
	"troll":  Troll,
}

// NPCTemplates - карта всех NPC
var NPCTemplates = map[string]ActorTemplate{
	"merchant": Merchant,
}
