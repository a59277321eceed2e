package entity

import (
	"fmt"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/topdown/assets"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
	"github.com/milk9111/topdown/prefabs"
)

type entityPrefabSpec = prefabs.EntityBuildSpec

// ImageLoader resolves a sprite's image path to a texture.
type ImageLoader func(path string) (*ebiten.Image, error)

type buildContext struct {
	PrefabPath string
	Images     ImageLoader
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"player_tag":    addPlayerTag,
	"camera_tag":    addCameraTag,
	"tag":           addTag,
	"player":        addPlayer,
	"input":         addInput,
	"transform":     addTransform,
	"sprite":        addSprite,
	"render_layer":  addRenderLayer,
	"sorting_order": addSortingOrder,
	"camera":        addCamera,
	"chaser":        addChaser,
	"spawner":       addSpawner,
	"depth_sort":    addDepthSort,
}

var componentBuildOrder = []string{
	"player_tag",
	"camera_tag",
	"tag",
	"player",
	"input",
	"transform",
	"sprite",
	"render_layer",
	"sorting_order",
	"camera",
	"chaser",
	"spawner",
	"depth_sort",
}

// Builder instantiates prefabs into a world.
type Builder struct {
	images ImageLoader
	load   func(path string) (entityPrefabSpec, error)
}

// NewBuilder returns a Builder that reads prefabs from the prefabs package.
// A nil images loader uses the embedded assets.
func NewBuilder(images ImageLoader) *Builder {
	if images == nil {
		images = assets.LoadImage
	}
	return &Builder{images: images, load: prefabs.LoadEntityBuildSpec}
}

var defaultBuilder = NewBuilder(nil)

// BuildEntity builds prefabPath with the embedded assets.
func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	return defaultBuilder.Build(w, prefabPath)
}

func (b *Builder) Build(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := b.load(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	return b.BuildSpec(w, spec, prefabPath)
}

// BuildSpec builds spec and its children. On error nothing it created is
// left in w.
func (b *Builder) BuildSpec(w *ecs.World, spec entityPrefabSpec, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath, Images: b.images}

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	for _, name := range componentBuildOrder {
		raw, ok := remaining[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw, ctx); err != nil {
			ecs.DestroyTree(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
		delete(remaining, name)
	}

	if len(remaining) > 0 {
		names := make([]string, 0, len(remaining))
		for name := range remaining {
			names = append(names, name)
		}
		sort.Strings(names)
		ecs.DestroyTree(w, e)
		return 0, fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, names[0])
	}

	for i, childSpec := range spec.Children {
		childPath := fmt.Sprintf("%s#children[%d]", prefabPath, i)
		child, err := b.BuildSpec(w, childSpec, childPath)
		if err != nil {
			ecs.DestroyTree(w, e)
			return 0, err
		}
		if err := ecs.SetParent(w, child, e); err != nil {
			ecs.DestroyTree(w, child)
			ecs.DestroyTree(w, e)
			return 0, fmt.Errorf("build entity: %q: attach child: %w", childPath, err)
		}
	}

	return e, nil
}

func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y, rotation float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		t = &component.Transform{ScaleX: 1, ScaleY: 1}
	}
	t.X = x
	t.Y = y
	t.Rotation = rotation
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addCameraTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.CameraTagComponent.Kind(), &component.CameraTag{})
}

type tagSpec = prefabs.TagComponentSpec

func addTag(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[tagSpec](raw)
	if err != nil {
		return fmt.Errorf("decode tag spec: %w", err)
	}
	if spec.Name == "" {
		return fmt.Errorf("tag name is empty")
	}
	return ecs.Add(w, e, component.TagComponent.Kind(), &component.Tag{Name: spec.Name})
}

type playerSpec = prefabs.PlayerComponentSpec

func addPlayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[playerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode player spec: %w", err)
	}
	return ecs.Add(w, e, component.PlayerComponent.Kind(), &component.Player{MoveSpeed: spec.MoveSpeed})
}

func addInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
}

type transformSpec = prefabs.TransformComponentSpec

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[transformSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	if spec.ScaleX == 0 {
		spec.ScaleX = 1
	}
	if spec.ScaleY == 0 {
		spec.ScaleY = 1
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:        spec.X,
		Y:        spec.Y,
		ScaleX:   spec.ScaleX,
		ScaleY:   spec.ScaleY,
		Rotation: spec.Rotation,
	})
}

type spriteSpec = prefabs.SpriteComponentSpec

func addSprite(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[spriteSpec](raw)
	if err != nil {
		return fmt.Errorf("decode sprite spec: %w", err)
	}

	sprite := component.Sprite{ImageID: spec.Image}
	if spec.Image != "" && ctx.Images != nil {
		img, err := ctx.Images(spec.Image)
		if err != nil {
			return fmt.Errorf("load image %q: %w", spec.Image, err)
		}
		sprite.Image = img
	}

	sprite.OriginX = spec.OriginX
	sprite.OriginY = spec.OriginY
	if sprite.OriginX == 0 && sprite.OriginY == 0 && spec.CenterOriginIfZero && sprite.Image != nil {
		w, h := sprite.Image.Bounds().Dx(), sprite.Image.Bounds().Dy()
		sprite.OriginX = float64(w) / 2
		sprite.OriginY = float64(h) / 2
	}
	sprite.FacingLeft = spec.FacingLeft
	sprite.Hidden = spec.Hidden

	return ecs.Add(w, e, component.SpriteComponent.Kind(), &sprite)
}

type renderLayerSpec = prefabs.RenderLayerComponentSpec

func addRenderLayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[renderLayerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode render_layer spec: %w", err)
	}
	return ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: spec.Index})
}

type sortingOrderSpec = prefabs.SortingOrderComponentSpec

func addSortingOrder(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[sortingOrderSpec](raw)
	if err != nil {
		return fmt.Errorf("decode sorting_order spec: %w", err)
	}
	return ecs.Add(w, e, component.SortingOrderComponent.Kind(), &component.SortingOrder{Order: spec.Order})
}

type cameraSpec = prefabs.CameraComponentSpec

func addCamera(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[cameraSpec](raw)
	if err != nil {
		return fmt.Errorf("decode camera spec: %w", err)
	}
	zoom := spec.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	return ecs.Add(w, e, component.CameraComponent.Kind(), &component.Camera{
		TargetName: spec.TargetName,
		Zoom:       zoom,
		Smoothness: spec.Smoothness,
	})
}

type chaserSpec = prefabs.ChaserComponentSpec

func addChaser(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[chaserSpec](raw)
	if err != nil {
		return fmt.Errorf("decode chaser spec: %w", err)
	}
	if spec.Target == "" {
		return fmt.Errorf("chaser target is empty")
	}
	return ecs.Add(w, e, component.ChaserComponent.Kind(), &component.Chaser{
		MoveSpeed: spec.MoveSpeed,
		Target:    spec.Target,
		StopRange: spec.StopRange,
	})
}

type spawnerSpec = prefabs.SpawnerComponentSpec

func addSpawner(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[spawnerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode spawner spec: %w", err)
	}
	if spec.Prefab == "" {
		return fmt.Errorf("spawner prefab is empty")
	}
	mode := component.DepthSortMode("")
	if spec.Mode != "" {
		if mode, err = component.ParseDepthSortMode(spec.Mode); err != nil {
			return err
		}
	}
	return ecs.Add(w, e, component.SpawnerComponent.Kind(), &component.Spawner{
		Prefab: spec.Prefab,
		Key:    spec.Key,
		Mode:   mode,
		Limit:  spec.Limit,
	})
}

type depthSortSpec = prefabs.DepthSortComponentSpec

func addDepthSort(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[depthSortSpec](raw)
	if err != nil {
		return fmt.Errorf("decode depth_sort spec: %w", err)
	}
	mode, err := component.ParseDepthSortMode(spec.Mode)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.DepthSortComponent.Kind(), &component.DepthSort{Mode: mode})
}
