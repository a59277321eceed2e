package entity

import (
	"testing"

	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
	"github.com/milk9111/topdown/ecs/system"
	"github.com/milk9111/topdown/levels"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func orderOf(t *testing.T, w *ecs.World, e ecs.Entity) int {
	t.Helper()
	so, ok := ecs.Get(w, e, component.SortingOrderComponent.Kind())
	require.True(t, ok, "entity %v has no sorting order", e)
	return so.Order
}

func TestLoadDemoScene(t *testing.T) {
	scene, err := levels.LoadScene("demo.yaml")
	require.NoError(t, err)

	core, logs := observer.New(zapcore.DebugLevel)
	logger := zap.New(core)
	w := ecs.NewWorld()
	sorter := system.NewSpriteSorter(system.DefaultSpriteSorterConfig(), logger)

	loaded, err := LoadSceneToWorld(w, scene, NewBuilder(noImages), sorter, logger)
	require.NoError(t, err)

	assert.True(t, ecs.IsAlive(w, loaded.Camera))
	assert.True(t, sorter.Registered(loaded.Player))
	assert.Equal(t, 1, sorter.DynamicCount())
	require.Len(t, loaded.Objects, len(scene.Objects))
	require.Len(t, loaded.Spawners, 2)

	ground := loaded.Objects[0]
	assert.False(t, ecs.Has(w, ground, component.SortingOrderComponent.Kind()), "ground is not depth sorted")

	// tree at y=3 with its anchor 1.4 below the center
	assert.Equal(t, -160, orderOf(t, w, loaded.Objects[1]))
	// same tree scaled 1.3 at y=4.5
	assert.Equal(t, -268, orderOf(t, w, loaded.Objects[2]))
	// bush at y=1.5 relies on the fallback table
	assert.Equal(t, -120, orderOf(t, w, loaded.Objects[6]))

	sp, ok := ecs.Get(w, loaded.Spawners[0], component.SpawnerComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, "enemy.yaml", sp.Prefab)
	assert.Equal(t, component.DepthSortDynamic, sp.Mode)

	assert.Zero(t, logs.FilterLevelExact(zapcore.ErrorLevel).Len())
	assert.Equal(t, 1, logs.FilterMessage("scene loaded").Len())

	sorter.Update(w)
	tr, _ := ecs.Get(w, loaded.Player, component.TransformComponent.Kind())
	assert.Equal(t, sorter.OrderKey(tr.Y-0.45), orderOf(t, w, loaded.Player))
}

func TestLoadSceneSortOverride(t *testing.T) {
	scene := &levels.Scene{
		Name: "override",
		Objects: []levels.Placement{
			{Prefab: "tree.yaml", Y: 2, Sort: "none"},
			{Prefab: "enemy.yaml", Y: 1, Sort: "static"},
			{Prefab: "rock.yaml", Sort: "diagonal"},
		},
	}
	w := ecs.NewWorld()
	sorter := system.NewSpriteSorter(system.DefaultSpriteSorterConfig(), nil)

	_, err := LoadSceneToWorld(w, scene, NewBuilder(noImages), sorter, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "objects[2]")

	scene.Objects = scene.Objects[:2]
	w = ecs.NewWorld()
	sorter = system.NewSpriteSorter(system.DefaultSpriteSorterConfig(), nil)
	loaded, err := LoadSceneToWorld(w, scene, NewBuilder(noImages), sorter, nil)
	require.NoError(t, err)

	assert.False(t, ecs.Has(w, loaded.Objects[0], component.SortingOrderComponent.Kind()))
	assert.Equal(t, -65, orderOf(t, w, loaded.Objects[1]))
	assert.Zero(t, sorter.DynamicCount())
	assert.Equal(t, 1, sorter.StaticCount())
}

func TestBuilderNewCameraAt(t *testing.T) {
	w := ecs.NewWorld()
	cam, err := NewBuilder(noImages).NewCameraAt(w, 3, -2)
	require.NoError(t, err)

	assert.True(t, ecs.Has(w, cam, component.CameraTagComponent.Kind()))
	c, ok := ecs.Get(w, cam, component.CameraComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, "player", c.TargetName)
	tr, _ := ecs.Get(w, cam, component.TransformComponent.Kind())
	assert.Equal(t, 3.0, tr.X)
	assert.Equal(t, -2.0, tr.Y)
}
