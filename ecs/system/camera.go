package system

import (
	"github.com/milk9111/topdown/common"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
)

// CameraSystem eases the camera's transform toward its target. The camera
// transform is the world point at the center of the screen.
type CameraSystem struct {
	camEntity    ecs.Entity
	targetEntity ecs.Entity
}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

func (cs *CameraSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	if !ecs.IsAlive(w, cs.camEntity) {
		camEntity, ok := w.First(component.CameraComponent.Kind())
		if !ok {
			return
		}
		cs.camEntity = camEntity
	}
	camComp, ok := ecs.Get(w, cs.camEntity, component.CameraComponent.Kind())
	if !ok {
		return
	}
	camTransform, ok := ecs.Get(w, cs.camEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}

	if !ecs.IsAlive(w, cs.targetEntity) {
		target, ok := findCameraTarget(w, camComp.TargetName)
		if !ok {
			return
		}
		cs.targetEntity = target
	}

	tx, ty, ok := ecs.WorldPosition(w, cs.targetEntity)
	if !ok {
		return
	}

	t := 1.0
	if camComp.Smoothness > 0 && camComp.Smoothness < 1 {
		t = 1 - camComp.Smoothness
	}
	camTransform.X = common.Lerp(camTransform.X, tx, t)
	camTransform.Y = common.Lerp(camTransform.Y, ty, t)
}

func findCameraTarget(w *ecs.World, name string) (ecs.Entity, bool) {
	if name == "" || name == "player" {
		return w.First(component.PlayerTagComponent.Kind())
	}
	return FindTagged(w, name)
}
