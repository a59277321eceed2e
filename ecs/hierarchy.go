package ecs

import (
	"fmt"

	"github.com/milk9111/topdown/ecs/component"
)

// SetParent attaches child under parent, detaching it from any previous
// parent first.
func SetParent(w *World, child, parent Entity) error {
	if !IsAlive(w, child) || !IsAlive(w, parent) {
		return component.ErrEntityNotAlive
	}
	if child == parent {
		return fmt.Errorf("ecs: set parent %s: entity cannot parent itself", child)
	}
	Detach(w, child)

	if err := Add(w, child, component.ParentComponent.Kind(), &component.Parent{Entity: uint64(parent)}); err != nil {
		return err
	}
	children, ok := Get(w, parent, component.ChildrenComponent.Kind())
	if !ok {
		children = &component.Children{}
		if err := Add(w, parent, component.ChildrenComponent.Kind(), children); err != nil {
			return err
		}
	}
	children.Entities = append(children.Entities, uint64(child))
	return nil
}

// ParentOf returns the live parent of e.
func ParentOf(w *World, e Entity) (Entity, bool) {
	p, ok := Get(w, e, component.ParentComponent.Kind())
	if !ok {
		return 0, false
	}
	parent := Entity(p.Entity)
	if !IsAlive(w, parent) {
		return 0, false
	}
	return parent, true
}

// ChildrenOf returns the live immediate children of e in attach order.
func ChildrenOf(w *World, e Entity) []Entity {
	c, ok := Get(w, e, component.ChildrenComponent.Kind())
	if !ok {
		return nil
	}
	out := make([]Entity, 0, len(c.Entities))
	for _, raw := range c.Entities {
		if child := Entity(raw); IsAlive(w, child) {
			out = append(out, child)
		}
	}
	return out
}

// Detach unlinks child from its parent. The child stays alive.
func Detach(w *World, child Entity) {
	p, ok := Get(w, child, component.ParentComponent.Kind())
	if !ok {
		return
	}
	Remove(w, child, component.ParentComponent.Kind())

	parent := Entity(p.Entity)
	c, ok := Get(w, parent, component.ChildrenComponent.Kind())
	if !ok {
		return
	}
	kept := c.Entities[:0]
	for _, raw := range c.Entities {
		if Entity(raw) != child {
			kept = append(kept, raw)
		}
	}
	c.Entities = kept
}

// DestroyTree destroys e and all of its descendants.
func DestroyTree(w *World, e Entity) bool {
	if !IsAlive(w, e) {
		return false
	}
	for _, child := range ChildrenOf(w, e) {
		DestroyTree(w, child)
	}
	Detach(w, e)
	return DestroyEntity(w, e)
}

// WorldPosition resolves e's position through its parent chain. A child's
// local offset is scaled by its parent's scale.
func WorldPosition(w *World, e Entity) (float64, float64, bool) {
	t, ok := Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return 0, 0, false
	}
	parent, ok := ParentOf(w, e)
	if !ok {
		return t.X, t.Y, true
	}
	px, py, ok := WorldPosition(w, parent)
	if !ok {
		return t.X, t.Y, true
	}
	pt, _ := Get(w, parent, component.TransformComponent.Kind())
	return px + t.X*pt.EffectiveScaleX(), py + t.Y*pt.EffectiveScaleY(), true
}

// SetWorldPosition moves e so that WorldPosition reports (x, y), converting
// through its parent's position and scale.
func SetWorldPosition(w *World, e Entity, x, y float64) bool {
	t, ok := Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return false
	}
	parent, ok := ParentOf(w, e)
	if !ok {
		t.X, t.Y = x, y
		return true
	}
	px, py, ok := WorldPosition(w, parent)
	if !ok {
		t.X, t.Y = x, y
		return true
	}
	pt, _ := Get(w, parent, component.TransformComponent.Kind())
	t.X = (x - px) / pt.EffectiveScaleX()
	t.Y = (y - py) / pt.EffectiveScaleY()
	return true
}
