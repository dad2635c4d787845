package component

import "github.com/go-gl/mathgl/mgl64"

// Spawn is where a character was placed, used to put it back on reset.
type Spawn struct {
	Position mgl64.Vec3
	Yaw      float64
}

var SpawnComponent = NewComponent[Spawn]()
