package system

import (
	"testing"

	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayerControllerMovesByInput(t *testing.T) {
	cases := []struct {
		name       string
		moveX      float64
		moveY      float64
		wantX      float64
		wantY      float64
		facingLeft bool
	}{
		{"idle", 0, 0, 0, 0, false},
		{"up", 0, 1, 0, 2, false},
		{"left", -1, 0, -2, 0, true},
		{"diagonal_normalized", 1, 1, 1.4142135623730951, 1.4142135623730951, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := ecs.NewWorld()
			e := ecs.CreateEntity(w)
			require.NoError(t, ecs.Add(w, e, component.PlayerComponent.Kind(), &component.Player{MoveSpeed: 4}))
			require.NoError(t, ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{MoveX: c.moveX, MoveY: c.moveY}))
			require.NoError(t, ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{}))
			require.NoError(t, ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{}))

			NewPlayerControllerSystem(0.5).Update(w)

			tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
			assert.InDelta(t, c.wantX, tr.X, 1e-9)
			assert.InDelta(t, c.wantY, tr.Y, 1e-9)
			sprite, _ := ecs.Get(w, e, component.SpriteComponent.Kind())
			assert.Equal(t, c.facingLeft, sprite.FacingLeft)
		})
	}
}

func TestChaseSystem(t *testing.T) {
	setup := func(t *testing.T, stopRange float64) (*ecs.World, ecs.Entity) {
		t.Helper()
		w := ecs.NewWorld()
		player := ecs.CreateEntity(w)
		require.NoError(t, ecs.Add(w, player, component.TagComponent.Kind(), &component.Tag{Name: "Player"}))
		require.NoError(t, ecs.Add(w, player, component.TransformComponent.Kind(), &component.Transform{X: 10}))

		enemy := ecs.CreateEntity(w)
		require.NoError(t, ecs.Add(w, enemy, component.ChaserComponent.Kind(), &component.Chaser{MoveSpeed: 3, Target: "Player", StopRange: stopRange}))
		require.NoError(t, ecs.Add(w, enemy, component.TransformComponent.Kind(), &component.Transform{}))
		return w, enemy
	}

	t.Run("steps_toward_target", func(t *testing.T) {
		w, enemy := setup(t, 0)
		NewChaseSystem(1).Update(w)
		tr, _ := ecs.Get(w, enemy, component.TransformComponent.Kind())
		assert.InDelta(t, 3, tr.X, 1e-9)
		assert.InDelta(t, 0, tr.Y, 1e-9)
	})

	t.Run("never_overshoots", func(t *testing.T) {
		w, enemy := setup(t, 0)
		sys := NewChaseSystem(2)
		for i := 0; i < 5; i++ {
			sys.Update(w)
		}
		tr, _ := ecs.Get(w, enemy, component.TransformComponent.Kind())
		assert.InDelta(t, 10, tr.X, 1e-9)
	})

	t.Run("stops_in_range", func(t *testing.T) {
		w, enemy := setup(t, 20)
		NewChaseSystem(1).Update(w)
		tr, _ := ecs.Get(w, enemy, component.TransformComponent.Kind())
		assert.Zero(t, tr.X)
	})

	t.Run("parented_chaser_moves_in_world_space", func(t *testing.T) {
		w, enemy := setup(t, 0)
		mount := ecs.CreateEntity(w)
		require.NoError(t, ecs.Add(w, mount, component.TransformComponent.Kind(), &component.Transform{X: 4, ScaleX: 2, ScaleY: 2}))
		tr, _ := ecs.Get(w, enemy, component.TransformComponent.Kind())
		tr.X = 1
		require.NoError(t, ecs.SetParent(w, enemy, mount))

		NewChaseSystem(1).Update(w)
		x, y, ok := ecs.WorldPosition(w, enemy)
		require.True(t, ok)
		assert.InDelta(t, 9, x, 1e-9)
		assert.InDelta(t, 0, y, 1e-9)
		assert.InDelta(t, 2.5, tr.X, 1e-9)
	})

	t.Run("missing_target", func(t *testing.T) {
		w, enemy := setup(t, 0)
		target, ok := FindTagged(w, "Player")
		require.True(t, ok)
		ecs.DestroyEntity(w, target)
		NewChaseSystem(1).Update(w)
		tr, _ := ecs.Get(w, enemy, component.TransformComponent.Kind())
		assert.Zero(t, tr.X)
	})
}

func TestCameraFollowsPlayer(t *testing.T) {
	w := ecs.NewWorld()
	player := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, player, component.PlayerTagComponent.Kind(), &component.PlayerTag{}))
	require.NoError(t, ecs.Add(w, player, component.TransformComponent.Kind(), &component.Transform{X: 8, Y: -4}))

	cam := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, cam, component.CameraComponent.Kind(), &component.Camera{Smoothness: 0.5}))
	require.NoError(t, ecs.Add(w, cam, component.TransformComponent.Kind(), &component.Transform{}))

	sys := NewCameraSystem()
	sys.Update(w)
	tr, _ := ecs.Get(w, cam, component.TransformComponent.Kind())
	assert.InDelta(t, 4, tr.X, 1e-9)
	assert.InDelta(t, -2, tr.Y, 1e-9)

	camComp, _ := ecs.Get(w, cam, component.CameraComponent.Kind())
	camComp.Smoothness = 0
	sys.Update(w)
	assert.InDelta(t, 8, tr.X, 1e-9)
	assert.InDelta(t, -4, tr.Y, 1e-9)
}

func TestDrawOrder(t *testing.T) {
	w := ecs.NewWorld()
	add := func(layer, order int, hidden bool) ecs.Entity {
		e := ecs.CreateEntity(w)
		require.NoError(t, ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{}))
		require.NoError(t, ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{Hidden: hidden}))
		require.NoError(t, ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: layer}))
		require.NoError(t, ecs.Add(w, e, component.SortingOrderComponent.Kind(), &component.SortingOrder{Order: order}))
		return e
	}

	front := add(0, -100, false)
	back := add(0, -500, false)
	tieA := add(0, -300, false)
	tieB := add(0, -300, false)
	overlay := add(1, -900, false)
	add(0, 0, true)

	assert.Equal(t, []ecs.Entity{back, tieA, tieB, front, overlay}, DrawOrder(w))
	assert.Nil(t, DrawOrder(nil))
}

func TestDrawOrderTieBreaksOnRecycledID(t *testing.T) {
	w := ecs.NewWorld()
	add := func() ecs.Entity {
		e := ecs.CreateEntity(w)
		require.NoError(t, ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{}))
		require.NoError(t, ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{}))
		require.NoError(t, ecs.Add(w, e, component.SortingOrderComponent.Kind(), &component.SortingOrder{Order: -300}))
		return e
	}

	first := add()
	second := add()
	third := add()
	require.True(t, ecs.DestroyEntity(w, first))
	recycled := add()
	require.Equal(t, first.ID(), recycled.ID())
	require.NotEqual(t, first, recycled)

	assert.Equal(t, []ecs.Entity{recycled, second, third}, DrawOrder(w))
}
