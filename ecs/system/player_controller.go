package system

import (
	"github.com/milk9111/topdown/common"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
)

// PlayerControllerSystem moves players at a constant speed in the direction
// of their input. Diagonal input is normalized.
type PlayerControllerSystem struct {
	step float64
}

// NewPlayerControllerSystem takes the tick length in seconds.
func NewPlayerControllerSystem(step float64) *PlayerControllerSystem {
	return &PlayerControllerSystem{step: step}
}

func (p *PlayerControllerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach3(w,
		component.PlayerComponent.Kind(),
		component.InputComponent.Kind(),
		component.TransformComponent.Kind(),
		func(e ecs.Entity, player *component.Player, input *component.Input, t *component.Transform) {
			dx, dy := common.Normalize(input.MoveX, input.MoveY)
			if dx == 0 && dy == 0 {
				return
			}
			dist := player.MoveSpeed * p.step
			t.X += dx * dist
			t.Y += dy * dist

			if sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok && dx != 0 {
				sprite.FacingLeft = dx < 0
			}
		},
	)
}
