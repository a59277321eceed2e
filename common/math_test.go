package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	x, y := Normalize(3, 4)
	assert.InDelta(t, 0.6, x, 1e-9)
	assert.InDelta(t, 0.8, y, 1e-9)

	x, y = Normalize(0, 0)
	assert.Zero(t, x)
	assert.Zero(t, y)
}

func TestMoveTowards(t *testing.T) {
	cases := []struct {
		name         string
		x, y, tx, ty float64
		delta        float64
		wantX, wantY float64
	}{
		{"partial_step", 0, 0, 10, 0, 2, 2, 0},
		{"snaps_when_close", 0, 0, 1, 1, 5, 1, 1},
		{"already_there", 3, 3, 3, 3, 1, 3, 3},
		{"diagonal", 0, 0, 3, 4, 2.5, 1.5, 2},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			x, y := MoveTowards(c.x, c.y, c.tx, c.ty, c.delta)
			assert.InDelta(t, c.wantX, x, 1e-9)
			assert.InDelta(t, c.wantY, y, 1e-9)
		})
	}
}
