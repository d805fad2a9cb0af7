package view

import (
	"roguecore/internal/domain"

	"github.com/gdamore/tcell/v2"
)

// Раскладка vi: hjkl + диагонали yubn. Заглавная буква - удар в сторону.
var runeDirs = map[rune]domain.Direction{
	'k': domain.DirN,
	'u': domain.DirNE,
	'l': domain.DirE,
	'n': domain.DirSE,
	'j': domain.DirS,
	'b': domain.DirSW,
	'h': domain.DirW,
	'y': domain.DirNW,
}

var arrowDirs = map[tcell.Key]domain.Direction{
	tcell.KeyUp:    domain.DirN,
	tcell.KeyRight: domain.DirE,
	tcell.KeyDown:  domain.DirS,
	tcell.KeyLeft:  domain.DirW,
}

// IsQuit - Esc, Ctrl+C или 'q'.
func IsQuit(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q'
	}
	return false
}

// CommandForKey переводит нажатие в команду игрока.
func CommandForKey(ev *tcell.EventKey) (domain.Command, bool) {
	if dir, ok := arrowDirs[ev.Key()]; ok {
		return domain.Command{Action: domain.ActionWalk, Dir: dir}, true
	}
	if ev.Key() != tcell.KeyRune {
		return domain.Command{}, false
	}

	r := ev.Rune()
	switch r {
	case '.', '5', ' ':
		return domain.Command{Action: domain.ActionWait}, true
	case 'd':
		return domain.Command{Action: domain.ActionDrink}, true
	}
	if dir, ok := runeDirs[r]; ok {
		return domain.Command{Action: domain.ActionWalk, Dir: dir}, true
	}
	if r >= 'A' && r <= 'Z' {
		if dir, ok := runeDirs[r-'A'+'a']; ok {
			return domain.Command{Action: domain.ActionAttack, Dir: dir}, true
		}
	}
	return domain.Command{}, false
}
