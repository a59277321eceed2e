package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/topdown/config"
	"github.com/milk9111/topdown/logging"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "optional config file merged over the embedded defaults")
	sceneName := flag.String("scene", "", "scene name in levels/ (overrides world.scene)")
	debug := flag.Bool("debug", false, "start with the debug overlay enabled")
	watch := flag.Bool("watch", false, "reload the scene when files in prefabs/ or levels/ change")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	if *baseMonitor || cfg.Window.MonitorBase {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)

	game, err := NewGame(cfg, logger, GameOptions{
		Scene: *sceneName,
		Debug: *debug,
		Watch: *watch,
	})
	if err != nil {
		logger.Fatal("start game", zap.Error(err))
	}
	defer func() { _ = game.Close() }()

	if err := ebiten.RunGame(game); err != nil {
		logger.Error("run game", zap.Error(err))
	}
}
