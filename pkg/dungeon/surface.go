package dungeon

import (
	"roguecore/internal/domain"
)

// surfaceRows - поверхность: колонны (#), живая изгородь (+) и пруд (~).
var surfaceRows = []string{
	"########################################",
	"#......................................#",
	"#...#......#......+++++.......~~~~.....#",
	"#..........#..................~~~~.....#",
	"#..........#.......#..........~~~~.....#",
	"#...#..............#...................#",
	"#..........#.......#.....+.............#",
	"#..........#.............+....#........#",
	"#..++++....#.............+....#........#",
	"#......................................#",
	"#...#......#..........#................#",
	"#......................................#",
	"########################################",
}

// GenerateSurface создает "домашний" уровень без монстров.
func GenerateSurface() Level {
	m := domain.GridMapFromRows(surfaceRows)
	return Level{
		Depth: 0,
		Map:   m,
		Start: domain.Position{X: m.Width / 2, Y: m.Height / 2},
	}
}
