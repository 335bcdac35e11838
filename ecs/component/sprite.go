package component

import "image/color"

// Sprite is a filled rectangle centred on the transform.
type Sprite struct {
	Width  float64
	Height float64
	Color  color.Color
	Layer  int
}

var SpriteComponent = NewComponent[Sprite]()
