package common

import "math"

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Normalize returns (x, y) scaled to unit length; the zero vector stays zero.
func Normalize(x, y float64) (float64, float64) {
	l := math.Hypot(x, y)
	if l == 0 {
		return 0, 0
	}
	return x / l, y / l
}

// MoveTowards steps from (x, y) toward (tx, ty) by at most maxDelta and never
// overshoots the target.
func MoveTowards(x, y, tx, ty, maxDelta float64) (float64, float64) {
	dx, dy := tx-x, ty-y
	dist := math.Hypot(dx, dy)
	if dist == 0 || (maxDelta >= 0 && dist <= maxDelta) {
		return tx, ty
	}
	return x + dx/dist*maxDelta, y + dy/dist*maxDelta
}
