package component

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Sprite is a drawable image. ImageID is the asset key the image was loaded
// from and is the identity the depth sorter's fallback table matches on.
type Sprite struct {
	Image      *ebiten.Image
	ImageID    string
	OriginX    float64
	OriginY    float64
	FacingLeft bool
	Hidden     bool
}

var SpriteComponent = NewComponent[Sprite]()
