package main

import (
	"image"
	"image/color"
	"testing"

	"github.com/milk9111/topdown/assets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroundRow(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 10))
	_, ok := groundRow(img, 0)
	assert.False(t, ok, "transparent image has no ground")

	img.Set(3, 6, color.NRGBA{A: 40})
	img.Set(2, 4, color.NRGBA{A: 255})

	row, ok := groundRow(img, 0)
	require.True(t, ok)
	assert.Equal(t, 6, row)

	row, ok = groundRow(img, 100)
	require.True(t, ok)
	assert.Equal(t, 4, row, "faint pixels below the threshold are ignored")
}

func TestGroundOffset(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 32))
	img.Set(0, 29, color.NRGBA{A: 255})

	offset, ok := groundOffset(img, 16, 32, 0)
	require.True(t, ok)
	assert.InDelta(t, -0.4375, offset, 1e-9)

	offset, ok = groundOffset(img, 32, 32, 0)
	require.True(t, ok)
	assert.InDelta(t, 0.0625, offset, 1e-9)

	_, ok = groundOffset(img, 16, 0, 0)
	assert.False(t, ok)
}

func TestGroundOffsetEmbeddedBush(t *testing.T) {
	img, err := assets.DecodeImage("bush.png")
	require.NoError(t, err)

	offset, ok := groundOffset(img, float64(img.Bounds().Dy())/2, 32, 0)
	require.True(t, ok)
	assert.Less(t, offset, 0.0)
	assert.Greater(t, offset, -0.5)
}
