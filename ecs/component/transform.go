package component

// Transform is in world units with y pointing up. For an entity with a
// Parent, X and Y are local to the parent's origin.
type Transform struct {
	X        float64
	Y        float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
}

var TransformComponent = NewComponent[Transform]()

// EffectiveScaleY treats an unset scale as 1, matching the renderer.
func (t *Transform) EffectiveScaleY() float64 {
	if t == nil || t.ScaleY == 0 {
		return 1
	}
	return t.ScaleY
}

// EffectiveScaleX treats an unset scale as 1, matching the renderer.
func (t *Transform) EffectiveScaleX() float64 {
	if t == nil || t.ScaleX == 0 {
		return 1
	}
	return t.ScaleX
}
