// Package view - терминальный рендерер поверх engine.Game.
//
// Рендерер только читает модель: карту, акторов и буферы тени.
// Яркость клетки берется из Shadow.CellAlpha, поэтому переход между
// старым и новым полем зрения виден как плавное затухание.
package view

import (
	"fmt"

	"roguecore/internal/domain"
	"roguecore/internal/engine"
	"roguecore/internal/version"
	"roguecore/pkg/logger"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
)

// JournalLines - сколько последних строк журнала видно под картой.
const JournalLines = 5

// Цвета местности.
var (
	colorFloor   = tcell.ColorGray
	colorWall    = tcell.ColorSilver
	colorCurtain = tcell.ColorOlive
	colorWater   = tcell.ColorBlue
	colorText    = tcell.ColorWhite
	colorCombat  = tcell.ColorRed
	colorError   = tcell.ColorYellow
)

// Viewer связывает экран tcell и игру: рисует кадр и превращает
// нажатия в команды.
type Viewer struct {
	screen  tcell.Screen
	game    *engine.Game
	journal []domain.LogEntry
	last    engine.TickResult
	log     *logrus.Entry
}

func New(screen tcell.Screen, g *engine.Game) *Viewer {
	return &Viewer{
		screen: screen,
		game:   g,
		log:    logger.Component("view"),
	}
}

// Advance крутит Tick до следующего UI-события.
func (v *Viewer) Advance() error {
	res, err := v.game.Tick()
	if err != nil {
		return err
	}
	v.last = res
	v.log.WithFields(logrus.Fields{
		"ui":     res.UI.EventName(),
		"steps":  res.Steps,
		"events": res.Tree.Len(),
	}).Debug("Tick stopped.")
	return nil
}

// HandleKey ставит команду в очередь и сразу крутит тик.
// Незнакомые клавиши игнорируются.
func (v *Viewer) HandleKey(ev *tcell.EventKey) error {
	cmd, ok := CommandForKey(ev)
	if !ok {
		return nil
	}
	if _, dead := v.last.UI.(domain.PlayerDied); dead {
		return nil
	}
	v.game.QueueCommand(cmd)
	return v.Advance()
}

// Frame - кадр: часы тени двигаются на dt секунд, затем отрисовка.
func (v *Viewer) Frame(dt float32) {
	v.game.Update(dt)
	v.Draw()
}

// Draw рисует карту, строку статуса и журнал.
func (v *Viewer) Draw() {
	v.journal = append(v.journal, v.game.World.DrainLogs()...)
	if len(v.journal) > JournalLines {
		v.journal = v.journal[len(v.journal)-JournalLines:]
	}

	v.screen.Clear()
	v.drawMap()
	v.drawActors()

	_, height := v.game.World.Map.Size()
	v.drawText(0, height, v.status(), tcell.StyleDefault.Foreground(colorText))
	for i, entry := range v.journal {
		v.drawText(0, height+1+i, entry.Text, tcell.StyleDefault.Foreground(messageColor(entry.Type)))
	}
	v.screen.Show()
}

func (v *Viewer) drawMap() {
	m := v.game.World.Map
	width, height := m.Size()
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			pos := domain.Position{X: x, Y: y}
			alpha := v.game.Shadow.CellAlpha(pos)
			if alpha <= 0 {
				continue
			}
			glyph, color := terrain(m, pos)
			v.screen.SetContent(x, y, glyph, nil, tcell.StyleDefault.Foreground(Shade(color, alpha)))
		}
	}
}

// Акторы видны только в текущем поле зрения. Трупы рисуются первыми,
// чтобы живой поверх них оставался сверху.
func (v *Viewer) drawActors() {
	fov := v.game.Shadow.Fov.Front()
	actors := v.game.World.Actors()
	for _, alive := range []bool{false, true} {
		for _, a := range actors {
			if a.Render == nil || a.IsAlive() != alive || !fov.IsLit(a.Pos) {
				continue
			}
			color := tcell.GetColor(a.Render.Color)
			if color == tcell.ColorDefault {
				color = colorText
			}
			alpha := v.game.Shadow.CellAlpha(a.Pos)
			v.screen.SetContent(a.Pos.X, a.Pos.Y, a.Render.Glyph, nil, tcell.StyleDefault.Foreground(Shade(color, alpha)))
		}
	}
}

func (v *Viewer) status() string {
	p := v.game.World.PlayerActor()
	if p == nil || p.Stats == nil {
		return fmt.Sprintf("Тик %d  [%s]", v.game.World.GlobalTick, version.Short())
	}
	line := fmt.Sprintf("HP %d/%d  Зелья %d  Тик %d  [%s]",
		p.Stats.HP, p.Stats.MaxHP, p.Stats.Draughts, v.game.World.GlobalTick, version.Short())
	if _, dead := v.last.UI.(domain.PlayerDied); dead {
		line += "  Вы погибли. q - выход"
	}
	return line
}

func (v *Viewer) drawText(x, y int, text string, style tcell.Style) {
	for _, r := range text {
		v.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func terrain(m *domain.GridMap, pos domain.Position) (rune, tcell.Color) {
	body, sight := m.IsBodyBlocked(pos), m.IsViewBlocked(pos)
	switch {
	case body && sight:
		return domain.GlyphWall, colorWall
	case sight:
		return domain.GlyphCurtain, colorCurtain
	case body:
		return domain.GlyphWater, colorWater
	default:
		return '.', colorFloor
	}
}

func messageColor(t string) tcell.Color {
	switch t {
	case domain.MsgCombat:
		return colorCombat
	case domain.MsgError:
		return colorError
	default:
		return colorText
	}
}

// Shade затемняет цвет пропорционально alpha (0..1).
// Цвета без RGB-значения возвращаются как есть.
func Shade(c tcell.Color, alpha float32) tcell.Color {
	r, g, b := c.RGB()
	if r < 0 {
		return c
	}
	if alpha < 0 {
		alpha = 0
	} else if alpha > 1 {
		alpha = 1
	}
	return tcell.NewRGBColor(
		int32(float32(r)*alpha),
		int32(float32(g)*alpha),
		int32(float32(b)*alpha),
	)
}
