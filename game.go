package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/entity"
	"github.com/milk9111/platformer/ecs/render"
	"github.com/milk9111/platformer/ecs/system"
	"github.com/milk9111/platformer/levels"
	"github.com/milk9111/platformer/prefabs"
	"github.com/milk9111/platformer/runs"
	"golang.org/x/image/colornames"
)

const (
	baseWidth  = 1280
	baseHeight = 720
	tps        = 60
)

type GameConfig struct {
	Level  string
	Debug  bool
	Watch  bool
	// RunsDB is the run history database. Empty disables recording.
	RunsDB string
	Logger *log.Logger
}

type Game struct {
	cfg    GameConfig
	logger *log.Logger
	level  *levels.Level

	world     *ecs.World
	scheduler *ecs.Scheduler
	physics   *system.PhysicsSystem
	spawner   *system.SpawnerSystem

	watcher *prefabs.Watcher
	runs    *runs.Store
	pauseUI *ebitenui.UI
	paused  bool
	quit    bool

	hud      hudStats
	runSaved bool
	bestRun  time.Duration
}

func NewGame(cfg GameConfig) (*Game, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	lvl, err := levels.LoadLevelFromFS(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("load level %q: %w", cfg.Level, err)
	}

	g := &Game{cfg: cfg, logger: logger, level: lvl}
	g.pauseUI = NewPauseUI(g)

	if cfg.Watch {
		if err := g.startWatcher(); err != nil {
			logger.Warn("prefab hot reload disabled", "err", err)
		}
	}

	if cfg.RunsDB != "" {
		store, err := runs.Open(cfg.RunsDB)
		if err != nil {
			logger.Warn("run history disabled", "err", err)
		} else {
			g.runs = store
		}
	}

	if err := g.reset(); err != nil {
		g.Close()
		return nil, err
	}
	return g, nil
}

// reset rebuilds the world from the level, dropping all runtime state. On
// error the running world and its systems are left untouched.
func (g *Game) reset() error {
	sim, err := system.NewSimulation(g.level, deviceInput{}, tps, g.logger)
	if err != nil {
		return err
	}
	g.finishRun(runs.OutcomeRestarted)
	g.world = sim.World
	g.physics = sim.Physics
	g.spawner = sim.Spawner
	g.scheduler = sim.Scheduler
	g.hud = hudStats{}
	g.runSaved = false
	g.bestRun = g.longestRun()
	g.logger.Info("level loaded", "level", g.level.Name, "entities", len(sim.Entities))
	return nil
}

// finishRun records the current attempt once.
func (g *Game) finishRun(outcome runs.Outcome) {
	if g.runs == nil || g.runSaved || g.world == nil {
		return
	}
	g.runSaved = true
	run, err := g.runs.Save(runs.Run{
		Level:    g.level.Name,
		Outcome:  outcome,
		Duration: ecs.Elapsed(g.world),
		Jumps:    g.hud.jumps,
		Spawns:   g.hud.spawns,
	})
	if err != nil {
		g.logger.Warn("save run", "err", err)
		return
	}
	g.logger.Debug("run saved", "id", run.ID, "outcome", outcome, "duration", run.Duration)
}

func (g *Game) longestRun() time.Duration {
	if g.runs == nil {
		return 0
	}
	best, err := g.runs.Longest(g.level.Name, 1)
	if err != nil {
		g.logger.Warn("load run history", "err", err)
		return 0
	}
	if len(best) == 0 {
		return 0
	}
	return best[0].Duration
}

func (g *Game) startWatcher() error {
	dirs := []string{prefabs.Dir}
	scripts := filepath.Join(prefabs.Dir, "scripts")
	if info, err := os.Stat(scripts); err == nil && info.IsDir() {
		dirs = append(dirs, scripts)
	}
	watcher, err := prefabs.NewWatcher(dirs...)
	if err != nil {
		return err
	}
	g.watcher = watcher
	g.logger.Info("watching prefabs", "dirs", dirs)
	return nil
}

func (g *Game) Close() {
	g.finishRun(runs.OutcomeQuit)
	if g.runs != nil {
		if err := g.runs.Close(); err != nil {
			g.logger.Warn("close run history", "err", err)
		}
		g.runs = nil
	}
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			g.logger.Warn("close prefab watcher", "err", err)
		}
		g.watcher = nil
	}
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}

	if pausePressed() {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	if restartPressed() {
		g.restart()
		return nil
	}

	g.applyReloads()
	g.scheduler.Update(g.world)
	g.hud.record(ecs.Events(g.world).Drain())
	if g.hud.dead {
		g.finishRun(runs.OutcomeDied)
	}
	return nil
}

func (g *Game) restart() {
	if err := g.reset(); err != nil {
		g.logger.Error("restart failed, keeping current run", "err", err)
		return
	}
	g.paused = false
}

func (g *Game) applyReloads() {
	if g.watcher == nil {
		return
	}
	for _, change := range g.watcher.Poll() {
		switch {
		case change.Kind == prefabs.ChangeScript:
			g.spawner.InvalidateScript(change.Name)
			g.logger.Info("spawn script reloaded", "script", change.Name)
		case change.Name == entity.PlayerPrefab:
			n, err := entity.ReloadPlayerTuning(g.world, change.Name)
			if err != nil {
				g.logger.Warn("player tuning reload failed", "err", err)
				continue
			}
			g.logger.Info("player tuning reloaded", "players", n)
		default:
			g.logger.Debug("prefab changed, applies to new instances", "prefab", change.Name)
		}
	}
	for _, err := range g.watcher.Errors() {
		g.logger.Warn("prefab watcher", "err", err)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Midnightblue)
	render.DrawSprites(g.world, screen)
	if g.cfg.Debug {
		render.DrawPhysicsDebug(g.physics.Space(), screen)
	}
	g.hud.draw(screen, g.world, g.bestRun, g.cfg.Debug)

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}
