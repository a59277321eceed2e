package system

import (
	"sort"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
	"golang.org/x/image/colornames"
)

// RenderSystem draws sprites back to front: by render layer, then by
// SortingOrder, then by entity id so ties are stable between frames.
type RenderSystem struct {
	camEntity     ecs.Entity
	pixelsPerUnit float64
	anchorTag     string

	// Debug draws each sprite's anchor point and order key.
	Debug bool
}

func NewRenderSystem(pixelsPerUnit float64, anchorTag string) *RenderSystem {
	if pixelsPerUnit <= 0 {
		pixelsPerUnit = 1
	}
	return &RenderSystem{pixelsPerUnit: pixelsPerUnit, anchorTag: anchorTag}
}

// DrawOrder returns the visible sprites of w in paint order.
func DrawOrder(w *ecs.World) []ecs.Entity {
	if w == nil {
		return nil
	}
	type keyed struct {
		e     ecs.Entity
		layer int
		order int
	}

	entities := w.Query(component.TransformComponent.Kind(), component.SpriteComponent.Kind())
	keys := make([]keyed, 0, len(entities))
	for _, e := range entities {
		if s, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok && s.Hidden {
			continue
		}
		k := keyed{e: e}
		if layer, ok := ecs.Get(w, e, component.RenderLayerComponent.Kind()); ok {
			k.layer = layer.Index
		}
		if so, ok := ecs.Get(w, e, component.SortingOrderComponent.Kind()); ok {
			k.order = so.Order
		}
		keys = append(keys, k)
	}

	sort.SliceStable(keys, func(i, j int) bool {
		if keys[i].layer != keys[j].layer {
			return keys[i].layer < keys[j].layer
		}
		if keys[i].order != keys[j].order {
			return keys[i].order < keys[j].order
		}
		return keys[i].e.ID() < keys[j].e.ID()
	})

	out := make([]ecs.Entity, len(keys))
	for i, k := range keys {
		out[i] = k.e
	}
	return out
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}

	if !ecs.IsAlive(w, r.camEntity) {
		if camEntity, ok := w.First(component.CameraComponent.Kind()); ok {
			r.camEntity = camEntity
		}
	}

	camX, camY := 0.0, 0.0
	zoom := 1.0
	if camTransform, ok := ecs.Get(w, r.camEntity, component.TransformComponent.Kind()); ok {
		camX = camTransform.X
		camY = camTransform.Y
	}
	if camComp, ok := ecs.Get(w, r.camEntity, component.CameraComponent.Kind()); ok && camComp.Zoom > 0 {
		zoom = camComp.Zoom
	}

	bounds := screen.Bounds()
	halfW := float64(bounds.Dx()) / 2
	halfH := float64(bounds.Dy()) / 2
	scale := r.pixelsPerUnit * zoom
	toScreen := func(x, y float64) (float64, float64) {
		return (x-camX)*scale + halfW, (camY-y)*scale + halfH
	}

	for _, e := range DrawOrder(w) {
		if e == r.camEntity {
			continue
		}
		s, ok := ecs.Get(w, e, component.SpriteComponent.Kind())
		if !ok || s.Image == nil {
			continue
		}
		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		x, y, _ := ecs.WorldPosition(w, e)
		sx, sy := toScreen(x, y)

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-s.OriginX, -s.OriginY)
		scaleX := t.EffectiveScaleX()
		if s.FacingLeft {
			scaleX = -scaleX
		}
		op.GeoM.Scale(scaleX, t.EffectiveScaleY())
		op.GeoM.Rotate(t.Rotation)
		op.GeoM.Scale(zoom, zoom)
		op.GeoM.Translate(sx, sy)
		screen.DrawImage(s.Image, op)

		if r.Debug {
			r.drawDebug(w, screen, e, sx, sy, toScreen)
		}
	}
}

func (r *RenderSystem) drawDebug(w *ecs.World, screen *ebiten.Image, e ecs.Entity, sx, sy float64, toScreen func(x, y float64) (float64, float64)) {
	vector.FillCircle(screen, float32(sx), float32(sy), 2, colornames.Cyan, false)
	for _, child := range ecs.ChildrenOf(w, e) {
		tag, ok := ecs.Get(w, child, component.TagComponent.Kind())
		if !ok || tag.Name != r.anchorTag {
			continue
		}
		ax, ay, ok := ecs.WorldPosition(w, child)
		if !ok {
			continue
		}
		px, py := toScreen(ax, ay)
		vector.StrokeLine(screen, float32(sx), float32(sy), float32(px), float32(py), 1, colornames.Yellow, false)
		vector.FillCircle(screen, float32(px), float32(py), 3, colornames.Orangered, false)
	}
	if so, ok := ecs.Get(w, e, component.SortingOrderComponent.Kind()); ok {
		ebitenutil.DebugPrintAt(screen, strconv.Itoa(so.Order), int(sx)+4, int(sy)+2)
	}
}
