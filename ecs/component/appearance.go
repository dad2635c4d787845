package component

import "image/color"

// Appearance is the procedural figure drawn in place of a mesh.
type Appearance struct {
	Color  color.RGBA
	Radius float64
	Height float64
	Legs   int
}

var AppearanceComponent = NewComponent[Appearance]()
