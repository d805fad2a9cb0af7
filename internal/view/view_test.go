package view

import (
	"io"
	"os"
	"strings"
	"testing"

	"roguecore/internal/domain"
	"roguecore/internal/engine"
	"roguecore/internal/shadow"
	"roguecore/pkg/logger"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.InitWithOutput(io.Discard)
	os.Exit(m.Run())
}

var room = []string{
	"##########",
	"#........#",
	"#..#.....#",
	"#........#",
	"##########",
}

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(60, 12)
	t.Cleanup(screen.Fini)
	return screen
}

func newViewer(t *testing.T, screen tcell.Screen, actors ...domain.Actor) (*Viewer, *engine.Game) {
	t.Helper()
	w := domain.NewWorld(domain.GridMapFromRows(room))
	for _, a := range actors {
		w.Spawn(a)
	}
	cfg := engine.NewConfig()
	cfg.Seed = 7
	cfg.TransitionSeconds = 0
	g, err := engine.NewGame(cfg, w)
	require.NoError(t, err)
	return New(screen, g), g
}

func hero(x, y int) domain.Actor {
	return domain.Actor{
		Type:   domain.ActorTypePlayer,
		Name:   "Герой",
		Pos:    domain.Position{X: x, Y: y},
		Render: &domain.RenderComponent{Glyph: '@', Color: "aqua"},
		Stats:  &domain.StatsComponent{HP: 30, MaxHP: 30, Strength: 5, Draughts: 2},
		AI:     &domain.AIComponent{},
	}
}

func goblin(x, y int) domain.Actor {
	return domain.Actor{
		Type:   domain.ActorTypeEnemy,
		Name:   "Гоблин",
		Pos:    domain.Position{X: x, Y: y},
		Render: &domain.RenderComponent{Glyph: 'g', Color: "green"},
		Stats:  &domain.StatsComponent{HP: 10, MaxHP: 10, Strength: 3},
		AI:     &domain.AIComponent{IsHostile: true},
	}
}

func cell(screen tcell.Screen, x, y int) rune {
	r, _, _, _ := screen.GetContent(x, y)
	return r
}

func row(screen tcell.Screen, y int) string {
	width, _ := screen.Size()
	var sb strings.Builder
	for x := 0; x < width; x++ {
		sb.WriteRune(cell(screen, x, y))
	}
	return strings.TrimRight(sb.String(), " ")
}

func TestViewer_DrawsVisibleWorld(t *testing.T) {
	screen := newScreen(t)
	v, _ := newViewer(t, screen, hero(2, 2), goblin(1, 3), goblin(4, 2))

	v.Frame(0)

	assert.Equal(t, '@', cell(screen, 2, 2))
	assert.Equal(t, 'g', cell(screen, 1, 3))
	assert.Equal(t, '#', cell(screen, 3, 2))
	assert.Equal(t, '#', cell(screen, 0, 0))
	assert.Equal(t, '.', cell(screen, 2, 1))

	// Клетка за колонной ни разу не была видна: ни пола, ни гоблина.
	assert.Equal(t, ' ', cell(screen, 4, 2))

	assert.True(t, strings.HasPrefix(row(screen, 5), "HP 30/30  Зелья 2"), row(screen, 5))
}

func TestViewer_LitCellsAtFullBrightness(t *testing.T) {
	screen := newScreen(t)
	v, _ := newViewer(t, screen, hero(2, 2))

	v.Frame(0)

	_, _, style, _ := screen.GetContent(2, 1)
	fg, _, _ := style.Decompose()
	assert.Equal(t, Shade(colorFloor, shadow.AlphaLit), fg)
}

func TestViewer_HandleKeyMovesPlayer(t *testing.T) {
	screen := newScreen(t)
	v, g := newViewer(t, screen, hero(2, 2))
	require.NoError(t, v.Advance())

	require.NoError(t, v.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'j', tcell.ModNone)))
	v.Frame(0)

	assert.Equal(t, domain.Position{X: 2, Y: 3}, g.World.PlayerActor().Pos)
	assert.Equal(t, '@', cell(screen, 2, 3))
	assert.Equal(t, '.', cell(screen, 2, 2))
	assert.IsType(t, domain.AwaitPlayerInput{}, v.last.UI)
}

func TestViewer_IgnoresUnmappedKeys(t *testing.T) {
	screen := newScreen(t)
	v, g := newViewer(t, screen, hero(2, 2))
	require.NoError(t, v.Advance())

	require.NoError(t, v.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone)))
	assert.Equal(t, 0, g.PendingCommands())
	assert.Equal(t, domain.Position{X: 2, Y: 2}, g.World.PlayerActor().Pos)
}

func TestViewer_JournalKeepsLastLines(t *testing.T) {
	screen := newScreen(t)
	v, g := newViewer(t, screen, hero(2, 2))

	for i := 0; i < JournalLines+2; i++ {
		g.World.AddLog(strings.Repeat("x", i+1), domain.MsgInfo)
	}
	v.Frame(0)

	require.Len(t, v.journal, JournalLines)
	assert.Equal(t, "xxx", row(screen, 6))
	assert.Equal(t, strings.Repeat("x", JournalLines+2), row(screen, 5+JournalLines))
}

func TestViewer_PlayerDiedBlocksInput(t *testing.T) {
	screen := newScreen(t)
	p := hero(2, 2)
	p.Stats.HP = 0
	p.Stats.IsDead = true
	v, g := newViewer(t, screen, p)

	require.NoError(t, v.Advance())
	require.IsType(t, domain.PlayerDied{}, v.last.UI)

	require.NoError(t, v.HandleKey(tcell.NewEventKey(tcell.KeyRune, '.', tcell.ModNone)))
	assert.Equal(t, 0, g.PendingCommands())

	v.Frame(0)
	assert.Contains(t, row(screen, 5), "Вы погибли")
}

func TestCommandForKey(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want domain.Command
		ok   bool
	}{
		{"arrow up", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), domain.Command{Action: domain.ActionWalk, Dir: domain.DirN}, true},
		{"vi diagonal", tcell.NewEventKey(tcell.KeyRune, 'b', tcell.ModNone), domain.Command{Action: domain.ActionWalk, Dir: domain.DirSW}, true},
		{"attack east", tcell.NewEventKey(tcell.KeyRune, 'L', tcell.ModNone), domain.Command{Action: domain.ActionAttack, Dir: domain.DirE}, true},
		{"wait", tcell.NewEventKey(tcell.KeyRune, '.', tcell.ModNone), domain.Command{Action: domain.ActionWait}, true},
		{"drink", tcell.NewEventKey(tcell.KeyRune, 'd', tcell.ModNone), domain.Command{Action: domain.ActionDrink}, true},
		{"unmapped capital", tcell.NewEventKey(tcell.KeyRune, 'Z', tcell.ModNone), domain.Command{}, false},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), domain.Command{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CommandForKey(tt.ev)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsQuit(t *testing.T) {
	assert.True(t, IsQuit(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
	assert.True(t, IsQuit(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)))
	assert.True(t, IsQuit(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))
	assert.False(t, IsQuit(tcell.NewEventKey(tcell.KeyRune, 'Q', tcell.ModNone)))
}

func TestShade(t *testing.T) {
	assert.Equal(t, tcell.NewRGBColor(127, 127, 127), Shade(tcell.NewRGBColor(255, 255, 255), 0.5))
	assert.Equal(t, tcell.NewRGBColor(0, 0, 0), Shade(tcell.ColorWhite, -1))
	assert.Equal(t, tcell.ColorDefault, Shade(tcell.ColorDefault, 0.5))
}
