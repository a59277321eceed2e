package system

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
	"go.uber.org/zap"
)

// BuildFunc instantiates a prefab into w.
type BuildFunc func(w *ecs.World, prefab string) (ecs.Entity, error)

// SpawnerSystem instantiates a spawner's prefab at the spawner's position
// when its key is pressed and hands the new entity to the sprite sorter.
type SpawnerSystem struct {
	build   BuildFunc
	sorter  *SpriteSorter
	logger  *zap.Logger
	pressed func(key string) bool
}

func NewSpawnerSystem(build BuildFunc, sorter *SpriteSorter, logger *zap.Logger) *SpawnerSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SpawnerSystem{
		build:   build,
		sorter:  sorter,
		logger:  logger.Named("spawner"),
		pressed: keyJustPressed,
	}
}

// SetKeyPressed replaces the keyboard check, mostly for tests.
func (s *SpawnerSystem) SetKeyPressed(fn func(key string) bool) {
	if fn != nil {
		s.pressed = fn
	}
}

func (s *SpawnerSystem) Update(w *ecs.World) {
	if w == nil || s.build == nil {
		return
	}

	var requests []ecs.Entity
	ecs.ForEach(w, component.SpawnerComponent.Kind(), func(e ecs.Entity, sp *component.Spawner) {
		if sp.Limit > 0 && sp.Count >= sp.Limit {
			return
		}
		if s.pressed(sp.Key) {
			requests = append(requests, e)
		}
	})

	for _, spawnerEntity := range requests {
		sp, ok := ecs.Get(w, spawnerEntity, component.SpawnerComponent.Kind())
		if !ok {
			continue
		}
		x, y, _ := ecs.WorldPosition(w, spawnerEntity)
		if _, err := s.Spawn(w, sp.Prefab, x, y, sp.Mode); err != nil {
			s.logger.Error("spawn failed", zap.String("prefab", sp.Prefab), zap.Error(err))
			continue
		}
		sp.Count++
	}
}

// Spawn builds prefab at (x, y) and registers the result with the sorter.
// An empty mode falls back to the prefab's own DepthSort component.
func (s *SpawnerSystem) Spawn(w *ecs.World, prefab string, x, y float64, mode component.DepthSortMode) (ecs.Entity, error) {
	e, err := s.build(w, prefab)
	if err != nil {
		return 0, err
	}
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		t = &component.Transform{ScaleX: 1, ScaleY: 1}
		if err := ecs.Add(w, e, component.TransformComponent.Kind(), t); err != nil {
			return 0, err
		}
	}
	t.X, t.Y = x, y

	if mode == "" {
		mode = component.DepthSortNone
		if ds, ok := ecs.Get(w, e, component.DepthSortComponent.Kind()); ok {
			mode = ds.Mode
		}
	}
	if s.sorter != nil {
		s.sorter.Track(w, e, mode)
	}
	s.logger.Debug("spawned",
		zap.String("prefab", prefab),
		zap.Stringer("entity", e),
		zap.String("sort", string(mode)),
	)
	return e, nil
}

func keyJustPressed(name string) bool {
	var key ebiten.Key
	if err := key.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return false
	}
	return inpututil.IsKeyJustPressed(key)
}
