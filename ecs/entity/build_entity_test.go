package entity

import (
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
	"github.com/milk9111/topdown/prefabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noImages(string) (*ebiten.Image, error) { return nil, nil }

func TestBuildPlayerPrefab(t *testing.T) {
	w := ecs.NewWorld()
	b := NewBuilder(noImages)

	e, err := b.Build(w, "prefabs/player.yaml")
	require.NoError(t, err)

	assert.True(t, ecs.Has(w, e, component.PlayerTagComponent.Kind()))
	assert.True(t, ecs.Has(w, e, component.InputComponent.Kind()))
	tag, ok := ecs.Get(w, e, component.TagComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, "Player", tag.Name)
	player, ok := ecs.Get(w, e, component.PlayerComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, 4.0, player.MoveSpeed)
	sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, "player.png", sprite.ImageID)
	ds, ok := ecs.Get(w, e, component.DepthSortComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, component.DepthSortDynamic, ds.Mode)

	children := ecs.ChildrenOf(w, e)
	require.Len(t, children, 1)
	anchorTag, ok := ecs.Get(w, children[0], component.TagComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, "SortPoint", anchorTag.Name)
	anchor, ok := ecs.Get(w, children[0], component.TransformComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, -0.45, anchor.Y)
	assert.Equal(t, 1.0, anchor.ScaleY, "unset scale defaults to one")
}

func TestBuildEveryPrefab(t *testing.T) {
	entries, err := prefabs.PrefabsFS.ReadDir(".")
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	b := NewBuilder(noImages)
	for _, entry := range entries {
		t.Run(entry.Name(), func(t *testing.T) {
			w := ecs.NewWorld()
			_, err := b.Build(w, entry.Name())
			assert.NoError(t, err)
		})
	}
}

func TestBuildSpecFailuresLeaveNothingBehind(t *testing.T) {
	cases := []struct {
		name    string
		spec    prefabs.EntityBuildSpec
		images  ImageLoader
		wantErr string
	}{
		{
			name:    "no_components",
			spec:    prefabs.EntityBuildSpec{Name: "empty"},
			wantErr: "does not define components",
		},
		{
			name: "unknown_component",
			spec: prefabs.EntityBuildSpec{Components: map[string]any{
				"transform": map[string]any{"x": 1},
				"wings":     map[string]any{},
			}},
			wantErr: `no builder for component "wings"`,
		},
		{
			name: "bad_depth_sort",
			spec: prefabs.EntityBuildSpec{Components: map[string]any{
				"depth_sort": map[string]any{"mode": "sideways"},
			}},
			wantErr: "unknown depth sort mode",
		},
		{
			name: "image_error",
			spec: prefabs.EntityBuildSpec{Components: map[string]any{
				"sprite": map[string]any{"image": "missing.png"},
			}},
			images: func(string) (*ebiten.Image, error) {
				return nil, errors.New("not found")
			},
			wantErr: `load image "missing.png"`,
		},
		{
			name: "broken_child",
			spec: prefabs.EntityBuildSpec{
				Components: map[string]any{"transform": map[string]any{}},
				Children: []prefabs.EntityBuildSpec{
					{Components: map[string]any{"tag": map[string]any{"name": "SortPoint"}}},
					{Components: map[string]any{"tag": map[string]any{}}},
				},
			},
			wantErr: "tag name is empty",
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			images := c.images
			if images == nil {
				images = noImages
			}
			w := ecs.NewWorld()
			_, err := NewBuilder(images).BuildSpec(w, c.spec, c.name)
			require.Error(t, err)
			assert.Contains(t, err.Error(), c.wantErr)
			assert.Zero(t, w.Len())
		})
	}
}

func TestSetEntityTransform(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	require.NoError(t, SetEntityTransform(w, e, 2, 3, 0.5))

	tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, component.Transform{X: 2, Y: 3, ScaleX: 1, ScaleY: 1, Rotation: 0.5}, *tr)

	tr.ScaleY = 2
	require.NoError(t, SetEntityTransform(w, e, 0, 0, 0))
	assert.Equal(t, 2.0, tr.ScaleY, "existing scale is kept")
}
