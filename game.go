package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/topdown/config"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/entity"
	"github.com/milk9111/topdown/ecs/system"
	"github.com/milk9111/topdown/levels"
	"github.com/milk9111/topdown/prefabs"
	"go.uber.org/zap"
	"golang.org/x/image/colornames"
)

type Game struct {
	cfg    *config.Config
	logger *zap.Logger

	builder *entity.Builder
	sorter  *system.SpriteSorter
	scene   string

	world     *ecs.World
	scheduler *ecs.Scheduler
	render    *system.RenderSystem

	watcher *prefabs.Watcher

	paused  bool
	debug   bool
	pauseUI *ebitenui.UI
	hud     *HUD
}

type GameOptions struct {
	Scene string
	Debug bool
	Watch bool
}

func NewGame(cfg *config.Config, logger *zap.Logger, opts GameOptions) (*Game, error) {
	if cfg == nil {
		return nil, errors.New("game: config is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	scene := opts.Scene
	if scene == "" {
		scene = cfg.World.Scene
	}

	g := &Game{
		cfg:     cfg,
		logger:  logger,
		builder: entity.NewBuilder(nil),
		scene:   scene,
		debug:   opts.Debug,
	}
	g.pauseUI = NewPauseUI(g)
	g.hud = NewHUD()

	if err := g.loadScene(); err != nil {
		return nil, err
	}

	if opts.Watch {
		watcher, err := prefabs.NewWatcher(prefabs.DiskDir, levels.DiskDir)
		if err != nil {
			logger.Warn("hot reload disabled", zap.Error(err))
		} else {
			g.watcher = watcher
		}
	}
	return g, nil
}

// loadScene builds the scene into a fresh world with a fresh sorter and only
// swaps them in when the whole load succeeds.
func (g *Game) loadScene() error {
	scene, err := levels.LoadScene(g.scene)
	if err != nil {
		return fmt.Errorf("game: scene %q: %w", g.scene, err)
	}

	w := ecs.NewWorld()
	sorter := system.NewSpriteSorter(g.cfg.Sorter, g.logger)
	loaded, err := entity.LoadSceneToWorld(w, scene, g.builder, sorter, g.logger)
	if err != nil {
		return fmt.Errorf("game: %w", err)
	}
	if !ecs.IsAlive(w, loaded.Camera) {
		x, y, _ := ecs.WorldPosition(w, loaded.Player)
		if _, err := g.builder.NewCameraAt(w, x, y); err != nil {
			return fmt.Errorf("game: default camera: %w", err)
		}
	}

	step := 1.0 / float64(ebiten.TPS())
	spawner := system.NewSpawnerSystem(g.builder.Build, sorter, g.logger)

	scheduler := ecs.NewScheduler()
	scheduler.Add(ecs.StageInput, system.NewInputSystem())
	scheduler.Add(ecs.StageMovement, system.NewPlayerControllerSystem(step))
	scheduler.Add(ecs.StageMovement, system.NewChaseSystem(step))
	scheduler.Add(ecs.StageSpawn, spawner)
	scheduler.Add(ecs.StageLate, system.NewCameraSystem())
	scheduler.Add(ecs.StageLate, sorter)

	g.world = w
	g.sorter = sorter
	g.scheduler = scheduler
	g.render = system.NewRenderSystem(g.cfg.World.PixelsPerUnit, g.cfg.Sorter.AnchorTag)
	return nil
}

func (g *Game) reload(reason string) {
	if err := g.loadScene(); err != nil {
		g.logger.Error("reload failed, keeping current scene", zap.String("reason", reason), zap.Error(err))
		return
	}
	g.logger.Info("scene reloaded", zap.String("reason", reason))
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	changed := ""
drain:
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				break drain
			}
			changed = path
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				break drain
			}
			g.logger.Warn("watch error", zap.Error(err))
		default:
			break drain
		}
	}
	if changed != "" {
		g.reload(filepath.Base(changed))
	}
}

func (g *Game) Update() error {
	g.pollWatcher()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.debug = !g.debug
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		g.reload("manual")
	}
	g.render.Debug = g.debug

	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	g.scheduler.Update(g.world)

	if g.debug {
		g.hud.Refresh(g.world, g.sorter)
		g.hud.UI.Update()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Darkolivegreen)
	g.render.Draw(g.world, screen)

	if g.debug {
		g.hud.UI.Draw(screen)
	}
	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Window.Width, g.cfg.Window.Height
}

func (g *Game) Close() error {
	if g.watcher != nil {
		return g.watcher.Close()
	}
	return nil
}
