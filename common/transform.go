package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Transform is an entity's placement: a position and a yaw about +Y.
type Transform struct {
	Position mgl64.Vec3
	Yaw      float64
	Scale    float64
}

// Facing returns the unit vector the entity looks along at its current yaw.
// Yaw 0 faces +Z, yaw pi/2 faces +X.
func (t *Transform) Facing() mgl64.Vec3 {
	return mgl64.Vec3{math.Sin(t.Yaw), 0, math.Cos(t.Yaw)}
}
