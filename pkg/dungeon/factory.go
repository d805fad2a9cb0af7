package dungeon

import (
	"roguecore/internal/domain"
)

// Player - шаблон героя.
var Player = ActorTemplate{
	Name:   "Герой",
	Type:   domain.ActorTypePlayer,
	Render: domain.RenderComponent{Glyph: '@', Color: "aqua"},
	Stats:  domain.StatsComponent{HP: 100, Strength: 10, Defense: 1, Draughts: 3},
}

// CreatePlayer создает игрока на стартовой позиции уровня
func CreatePlayer(name string, pos domain.Position) domain.Actor {
	p := Player.Spawn(pos)
	if name != "" {
		p.Name = name
	}
	return p
}
