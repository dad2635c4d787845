package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Camera is a perspective camera looking at Target.
type Camera struct {
	Fov    float64 // vertical, degrees
	Aspect float64
	Near   float64
	Far    float64

	Position mgl64.Vec3
	Target   mgl64.Vec3
	Up       mgl64.Vec3

	Width  float64
	Height float64
}

// NewCamera returns a 45 degree camera sized to w x h.
func NewCamera(w, h float64) *Camera {
	c := &Camera{
		Fov:      45,
		Near:     0.1,
		Far:      1000,
		Position: mgl64.Vec3{-5, 5, 10},
		Up:       mgl64.Vec3{0, 1, 0},
	}
	c.Resize(w, h)
	return c
}

// Resize updates the viewport and aspect. A zero height keeps the old aspect.
func (c *Camera) Resize(w, h float64) {
	if c == nil || w <= 0 || h <= 0 {
		return
	}
	c.Width, c.Height = w, h
	c.Aspect = w / h
}

func (c *Camera) View() mgl64.Mat4 {
	return mgl64.LookAtV(c.Position, c.Target, c.Up)
}

func (c *Camera) Projection() mgl64.Mat4 {
	return mgl64.Perspective(mgl64.DegToRad(c.Fov), c.Aspect, c.Near, c.Far)
}

// Project maps a world point to screen pixels. ok is false for points behind
// the camera or outside the depth range.
func (c *Camera) Project(world mgl64.Vec3) (x, y float64, ok bool) {
	if c == nil || c.Width <= 0 || c.Height <= 0 {
		return 0, 0, false
	}
	clip := c.Projection().Mul4(c.View()).Mul4x1(world.Vec4(1))
	if clip.W() <= 0 {
		return 0, 0, false
	}
	ndc := clip.Vec3().Mul(1 / clip.W())
	if ndc.Z() < -1 || ndc.Z() > 1 {
		return 0, 0, false
	}
	x = (ndc.X() + 1) / 2 * c.Width
	y = (1 - ndc.Y()) / 2 * c.Height
	return x, y, true
}

// Ray returns the world-space ray through screen pixel (x, y).
func (c *Camera) Ray(x, y float64) (origin, dir mgl64.Vec3) {
	if c == nil || c.Width <= 0 || c.Height <= 0 {
		return mgl64.Vec3{}, mgl64.Vec3{0, 0, -1}
	}
	inv := c.Projection().Mul4(c.View()).Inv()
	nx := 2*x/c.Width - 1
	ny := 1 - 2*y/c.Height

	near := unproject(inv, mgl64.Vec4{nx, ny, -1, 1})
	far := unproject(inv, mgl64.Vec4{nx, ny, 1, 1})
	return near, far.Sub(near).Normalize()
}

func unproject(inv mgl64.Mat4, ndc mgl64.Vec4) mgl64.Vec3 {
	p := inv.Mul4x1(ndc)
	return p.Vec3().Mul(1 / p.W())
}

// IntersectPlaneY returns where the ray crosses the horizontal plane at height y.
func IntersectPlaneY(origin, dir mgl64.Vec3, y float64) (mgl64.Vec3, bool) {
	if math.Abs(dir.Y()) < 1e-9 {
		return mgl64.Vec3{}, false
	}
	t := (y - origin.Y()) / dir.Y()
	if t < 0 {
		return mgl64.Vec3{}, false
	}
	return origin.Add(dir.Mul(t)), true
}
