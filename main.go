package main

import (
	"flag"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	levelName := flag.String("level", "", "level name in levels/ (basename, .json optional)")
	debug := flag.Bool("debug", false, "draw collider outlines and the debug HUD")
	watch := flag.Bool("watch", false, "reload player tuning and spawn scripts when prefabs/ changes on disk")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	runsDB := flag.String("runs", "", "SQLite file recording each attempt, e.g. ~/.platformer/runs.db (empty disables)")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "platformer",
	})
	level, err := log.ParseLevel(*logLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", *logLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	logger.SetStyles(logStyles())
	log.SetDefault(logger)

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("platformer")
	ebiten.SetTPS(tps)

	game, err := NewGame(GameConfig{
		Level:  *levelName,
		Debug:  *debug,
		Watch:  *watch,
		RunsDB: *runsDB,
		Logger: logger,
	})
	if err != nil {
		logger.Fatal("start game", "err", err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		logger.Fatal("run game", "err", err)
	}
}

// logStyles tints the level badges and dims the prefix.
func logStyles() *log.Styles {
	styles := log.DefaultStyles()
	styles.Prefix = lipgloss.NewStyle().Faint(true)
	styles.Levels[log.DebugLevel] = lipgloss.NewStyle().SetString("DEBU").Foreground(lipgloss.Color("63"))
	styles.Levels[log.WarnLevel] = lipgloss.NewStyle().SetString("WARN").Bold(true).Foreground(lipgloss.Color("214"))
	styles.Levels[log.ErrorLevel] = lipgloss.NewStyle().SetString("ERRO").Bold(true).Foreground(lipgloss.Color("204"))
	return styles
}
