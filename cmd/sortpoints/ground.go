package main

import "image"

// groundRow returns the lowest row of img holding a pixel whose alpha is
// above threshold (0-255). It reports false for a fully transparent image.
func groundRow(img image.Image, threshold uint8) (int, bool) {
	b := img.Bounds()
	limit := uint32(threshold) * 0x101
	for y := b.Max.Y - 1; y >= b.Min.Y; y-- {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a > limit {
				return y - b.Min.Y, true
			}
		}
	}
	return 0, false
}

// groundOffset converts the bottom edge of img's lowest opaque row into a
// y-up offset in world units from a sprite origin placed originY pixels
// below the image's top edge.
func groundOffset(img image.Image, originY, pixelsPerUnit float64, threshold uint8) (float64, bool) {
	row, ok := groundRow(img, threshold)
	if !ok || pixelsPerUnit <= 0 {
		return 0, false
	}
	return (originY - float64(row+1)) / pixelsPerUnit, true
}
