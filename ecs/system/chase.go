package system

import (
	"math"

	"github.com/milk9111/topdown/common"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
)

// ChaseSystem moves every Chaser straight toward its target's position.
type ChaseSystem struct {
	step float64
}

// NewChaseSystem takes the tick length in seconds.
func NewChaseSystem(step float64) *ChaseSystem {
	return &ChaseSystem{step: step}
}

func (c *ChaseSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	targets := make(map[string]ecs.Entity)
	ecs.ForEach2(w, component.ChaserComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, chaser *component.Chaser, _ *component.Transform) {
		target, ok := targets[chaser.Target]
		if !ok {
			target, ok = FindTagged(w, chaser.Target)
			if !ok {
				return
			}
			targets[chaser.Target] = target
		}
		if target == e {
			return
		}

		tx, ty, ok := ecs.WorldPosition(w, target)
		if !ok {
			return
		}
		cx, cy, ok := ecs.WorldPosition(w, e)
		if !ok {
			return
		}
		if chaser.StopRange > 0 && math.Hypot(tx-cx, ty-cy) <= chaser.StopRange {
			return
		}
		x, y := common.MoveTowards(cx, cy, tx, ty, chaser.MoveSpeed*c.step)

		if sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok && x != cx {
			sprite.FacingLeft = x < cx
		}
		ecs.SetWorldPosition(w, e, x, y)
	})
}

// FindTagged returns the lowest-id live entity whose Tag is name.
func FindTagged(w *ecs.World, name string) (ecs.Entity, bool) {
	if name == "" {
		return 0, false
	}
	for _, e := range w.Query(component.TagComponent.Kind()) {
		if tag, ok := ecs.Get(w, e, component.TagComponent.Kind()); ok && tag.Name == name {
			return e, true
		}
	}
	return 0, false
}
