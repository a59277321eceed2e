package entity

import (
	"fmt"

	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
	"github.com/milk9111/topdown/ecs/system"
	"github.com/milk9111/topdown/levels"
	"go.uber.org/zap"
)

// Sorter is the part of the sprite sorter a scene load drives.
type Sorter interface {
	SetFallbackOffsets(entries []system.FallbackOffset)
	AddStatic(e ecs.Entity)
	Register(w *ecs.World, e ecs.Entity) bool
	Start(w *ecs.World)
}

// LoadedScene holds the notable entities a scene load created.
type LoadedScene struct {
	Player   ecs.Entity
	Camera   ecs.Entity
	Objects  []ecs.Entity
	Spawners []ecs.Entity
}

// LoadSceneToWorld instantiates scene into w and hands every sprite to the
// sorter according to its depth sort mode. The static pass runs before it
// returns.
func LoadSceneToWorld(w *ecs.World, scene *levels.Scene, b *Builder, sorter Sorter, logger *zap.Logger) (*LoadedScene, error) {
	if w == nil || scene == nil {
		return nil, fmt.Errorf("load scene: world and scene are required")
	}
	if b == nil {
		b = defaultBuilder
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	fallback := make([]system.FallbackOffset, 0, len(scene.FallbackOffsets))
	for _, fb := range scene.FallbackOffsets {
		fallback = append(fallback, system.FallbackOffset{Image: fb.Image, Offset: fb.Offset})
	}
	if sorter != nil {
		sorter.SetFallbackOffsets(fallback)
	}

	loaded := &LoadedScene{}

	if scene.Camera != "" {
		camera, err := b.Build(w, scene.Camera)
		if err != nil {
			return nil, fmt.Errorf("load scene %q: camera: %w", scene.Name, err)
		}
		loaded.Camera = camera
	}

	for i, obj := range scene.Objects {
		e, err := placePrefab(w, b, sorter, obj)
		if err != nil {
			return nil, fmt.Errorf("load scene %q: objects[%d]: %w", scene.Name, i, err)
		}
		loaded.Objects = append(loaded.Objects, e)
	}

	if scene.Player != nil {
		player, err := placePrefab(w, b, sorter, *scene.Player)
		if err != nil {
			return nil, fmt.Errorf("load scene %q: player: %w", scene.Name, err)
		}
		loaded.Player = player
	}

	for i, sp := range scene.Spawners {
		e, err := newSpawner(w, sp)
		if err != nil {
			return nil, fmt.Errorf("load scene %q: spawners[%d]: %w", scene.Name, i, err)
		}
		loaded.Spawners = append(loaded.Spawners, e)
	}

	if sorter != nil {
		sorter.Start(w)
	}

	logger.Info("scene loaded",
		zap.String("scene", scene.Name),
		zap.Int("objects", len(loaded.Objects)),
		zap.Int("spawners", len(loaded.Spawners)),
		zap.Int("fallback_offsets", len(fallback)),
	)
	return loaded, nil
}

func placePrefab(w *ecs.World, b *Builder, sorter Sorter, p levels.Placement) (ecs.Entity, error) {
	e, err := b.Build(w, p.Prefab)
	if err != nil {
		return 0, err
	}
	if err := SetEntityTransform(w, e, p.X, p.Y, 0); err != nil {
		return 0, err
	}
	t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	if p.ScaleX != 0 {
		t.ScaleX = p.ScaleX
	}
	if p.ScaleY != 0 {
		t.ScaleY = p.ScaleY
	}

	mode := component.DepthSortNone
	if ds, ok := ecs.Get(w, e, component.DepthSortComponent.Kind()); ok {
		mode = ds.Mode
	}
	if p.Sort != "" {
		if mode, err = component.ParseDepthSortMode(p.Sort); err != nil {
			return 0, err
		}
	}

	if sorter == nil {
		return e, nil
	}
	switch mode {
	case component.DepthSortStatic:
		sorter.AddStatic(e)
	case component.DepthSortDynamic:
		sorter.Register(w, e)
	}
	return e, nil
}

func newSpawner(w *ecs.World, sp levels.SpawnerSpec) (ecs.Entity, error) {
	mode := component.DepthSortMode("")
	if sp.Sort != "" {
		var err error
		if mode, err = component.ParseDepthSortMode(sp.Sort); err != nil {
			return 0, err
		}
	}

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: sp.X, Y: sp.Y, ScaleX: 1, ScaleY: 1}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.SpawnerComponent.Kind(), &component.Spawner{
		Prefab: sp.Prefab,
		Key:    sp.Key,
		Mode:   mode,
		Limit:  sp.Limit,
	}); err != nil {
		return 0, err
	}
	return e, nil
}
