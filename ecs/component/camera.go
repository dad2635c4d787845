package component

import "github.com/milk9111/menagerie/scene"

type Camera struct {
	View  *scene.Camera
	Orbit *scene.OrbitControls
	// Follow keeps the orbit target on the player character.
	Follow bool
	// Height is added to the followed position so the camera looks at the body.
	Height float64
}

var CameraComponent = NewComponent[Camera]()
