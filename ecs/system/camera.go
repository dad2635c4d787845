package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/menagerie/ecs"
	"github.com/milk9111/menagerie/ecs/component"
	"github.com/milk9111/menagerie/ecs/entity"
	"github.com/milk9111/menagerie/input"
)

// followSmoothing is the fraction of the gap to the player closed each tick.
const followSmoothing = 0.1

// CameraSystem orbits on drag, zooms on the wheel and, when the camera
// follows, keeps the orbit centred on the player.
type CameraSystem struct {
	mouse *input.Mouse
}

func NewCameraSystem(mouse *input.Mouse) *CameraSystem {
	return &CameraSystem{mouse: mouse}
}

func (cs *CameraSystem) Update(w *ecs.World) {
	cam, ok := entity.Camera(w)
	if !ok || cam.View == nil || cam.Orbit == nil {
		return
	}

	if m := cs.mouse; m != nil {
		if m.Dragging {
			cam.Orbit.Rotate(m.DX, m.DY, cam.View.Height)
		}
		cam.Orbit.Zoom(m.Wheel)
	}

	if cam.Follow {
		if p, ok := entity.Player(w); ok {
			if tr, ok := ecs.Get(w, p, component.TransformComponent.Kind()); ok {
				goal := tr.Position.Add(mgl64.Vec3{0, cam.Height, 0})
				gap := goal.Sub(cam.Orbit.Target)
				cam.Orbit.Target = cam.Orbit.Target.Add(gap.Mul(followSmoothing))
			}
		}
	}

	cam.Orbit.Apply(cam.View)
}

// Resize updates the camera viewport after a window resize.
func Resize(w *ecs.World, width, height int) {
	if cam, ok := entity.Camera(w); ok {
		cam.View.Resize(float64(width), float64(height))
	}
}
