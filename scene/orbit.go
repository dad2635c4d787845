package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/menagerie/common"
)

// OrbitControls keeps a camera on a sphere around Target. Drag rotates, the
// wheel zooms. There is no pan.
type OrbitControls struct {
	Target mgl64.Vec3

	MinDistance float64
	MaxDistance float64
	MinPolar    float64
	MaxPolar    float64

	// Damping is the fraction of the pending rotation applied per Update.
	// Zero applies rotation immediately.
	Damping     float64
	RotateSpeed float64
	ZoomSpeed   float64

	distance float64
	azimuth  float64
	polar    float64

	dAzimuth float64
	dPolar   float64
	scale    float64
}

// NewOrbitControls starts the orbit at the camera's current position.
func NewOrbitControls(cam *Camera) *OrbitControls {
	o := &OrbitControls{
		MinDistance: 5,
		MaxDistance: 15,
		MinPolar:    0,
		MaxPolar:    math.Pi/2 - 0.05,
		Damping:     0.05,
		RotateSpeed: 1,
		ZoomSpeed:   1,
		scale:       1,
	}
	if cam != nil {
		o.Target = cam.Target
		o.SetPosition(cam.Position)
	}
	return o
}

// SetPosition moves the orbit to pass through p, clamping to the limits.
func (o *OrbitControls) SetPosition(p mgl64.Vec3) {
	off := p.Sub(o.Target)
	o.distance = off.Len()
	if o.distance > 0 {
		o.polar = math.Acos(common.Clamp(off.Y()/o.distance, -1, 1))
	}
	o.azimuth = math.Atan2(off.X(), off.Z())
	o.dAzimuth, o.dPolar, o.scale = 0, 0, 1
	o.clamp()
}

func (o *OrbitControls) Distance() float64 { return o.distance }
func (o *OrbitControls) Azimuth() float64  { return o.azimuth }
func (o *OrbitControls) Polar() float64    { return o.polar }

// Rotate queues a drag of dx, dy pixels on a viewport h pixels tall.
func (o *OrbitControls) Rotate(dx, dy, h float64) {
	if o == nil || h <= 0 {
		return
	}
	o.dAzimuth -= 2 * math.Pi * dx / h * o.RotateSpeed
	o.dPolar -= 2 * math.Pi * dy / h * o.RotateSpeed
}

// Zoom queues a wheel step. Positive values move the camera closer.
func (o *OrbitControls) Zoom(wheel float64) {
	if o == nil || wheel == 0 {
		return
	}
	o.scale *= math.Pow(0.95, wheel*o.ZoomSpeed)
}

// Update applies pending input and returns the camera position.
func (o *OrbitControls) Update() mgl64.Vec3 {
	if o.Damping > 0 {
		o.azimuth += o.dAzimuth * o.Damping
		o.polar += o.dPolar * o.Damping
		o.dAzimuth *= 1 - o.Damping
		o.dPolar *= 1 - o.Damping
	} else {
		o.azimuth += o.dAzimuth
		o.polar += o.dPolar
		o.dAzimuth, o.dPolar = 0, 0
	}
	o.distance *= o.scale
	o.scale = 1
	o.clamp()
	return o.Position()
}

// Position is the camera position for the current orbit state.
func (o *OrbitControls) Position() mgl64.Vec3 {
	sin := math.Sin(o.polar)
	off := mgl64.Vec3{
		o.distance * sin * math.Sin(o.azimuth),
		o.distance * math.Cos(o.polar),
		o.distance * sin * math.Cos(o.azimuth),
	}
	return o.Target.Add(off)
}

// Apply writes the orbit into cam.
func (o *OrbitControls) Apply(cam *Camera) {
	if o == nil || cam == nil {
		return
	}
	cam.Target = o.Target
	cam.Position = o.Update()
}

func (o *OrbitControls) clamp() {
	o.azimuth = common.WrapAngle(o.azimuth)
	o.polar = common.Clamp(o.polar, math.Max(o.MinPolar, 1e-6), o.MaxPolar)
	o.distance = common.Clamp(o.distance, o.MinDistance, o.MaxDistance)
}
