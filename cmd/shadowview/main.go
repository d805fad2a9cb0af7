package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"roguecore/internal/agent"
	"roguecore/internal/engine"
	"roguecore/internal/version"
	"roguecore/internal/view"
	"roguecore/pkg/dungeon"
	"roguecore/pkg/logger"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
)

const frameInterval = 16 * time.Millisecond // ~60 FPS

func main() {
	var (
		seed        int64
		radius      int
		depth       int
		surface     bool
		botTurns    int
		logPath     string
		showVersion bool
	)
	flag.Int64Var(&seed, "seed", 0, "Master seed (0 keeps RC_SEED or a random one)")
	flag.IntVar(&radius, "radius", -1, "Field of view radius (-1 keeps RC_FOV_RADIUS or the player's vision)")
	flag.IntVar(&depth, "depth", 1, "Dungeon depth to generate")
	flag.BoolVar(&surface, "surface", false, "Start on the hand-made surface map instead of a dungeon")
	flag.IntVar(&botTurns, "bot", 0, "Let the autopilot play N turns headless and print a report")
	flag.StringVar(&logPath, "log", "shadowview.log", "Log file (tcell owns the terminal)")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")
	flag.Parse()

	if showVersion {
		fmt.Println(version.String())
		return
	}

	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	logger.InitWithOutput(logFile)
	logger.Log.Info(version.String())

	cfg := engine.LoadConfigFromEnv()
	if seed != 0 {
		cfg.Seed = seed
	}
	if radius >= 0 {
		cfg.FovRadius = radius
	}

	g, err := newGame(cfg, depth, surface)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to create game.")
		fmt.Fprintf(os.Stderr, "Failed to create game: %v\n", err)
		os.Exit(1)
	}

	if botTurns > 0 {
		rep, err := agent.NewBot(g, cfg.Seed).Play(botTurns)
		if err != nil {
			logger.Log.WithError(err).Error("Bot run failed.")
			fmt.Fprintf(os.Stderr, "Bot run failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("turns=%d events=%d kills=%d died=%t tick=%d\n",
			rep.Turns, rep.Events, rep.Kills, rep.Died, rep.GlobalTick)
		return
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}

	runErr := run(screen, view.New(screen, g))
	screen.Fini()
	if runErr != nil {
		logger.Log.WithError(runErr).Error("Viewer stopped.")
		fmt.Fprintf(os.Stderr, "%v\n", runErr)
		os.Exit(1)
	}
}

func newGame(cfg engine.Config, depth int, surface bool) (*engine.Game, error) {
	logger.Log.WithFields(logrus.Fields{
		"seed":    cfg.Seed,
		"radius":  cfg.FovRadius,
		"depth":   depth,
		"surface": surface,
	}).Info("Starting shadowview...")

	if surface {
		return engine.NewGameFromLevel(cfg, dungeon.GenerateSurface())
	}
	return engine.NewDungeonGame(cfg, depth)
}

// run - главный цикл: ввод из горутины-насоса, кадры по тикеру.
// Модель трогает только этот цикл.
func run(screen tcell.Screen, v *view.Viewer) error {
	if err := v.Advance(); err != nil {
		return err
	}

	events := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go pump(screen, events, done)

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if view.IsQuit(ev) {
					return nil
				}
				if err := v.HandleKey(ev); err != nil {
					return err
				}
			case *tcell.EventResize:
				screen.Sync()
			}

		case now := <-ticker.C:
			v.Frame(float32(now.Sub(last).Seconds()))
			last = now
		}
	}
}

// pump перекладывает события экрана в канал. Выходит, когда экран
// закрыт (PollEvent вернул nil) или run закрыл done.
func pump(screen tcell.Screen, events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}
