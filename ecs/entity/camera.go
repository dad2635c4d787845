package entity

import (
	"fmt"

	"github.com/milk9111/menagerie/common"
	"github.com/milk9111/menagerie/ecs"
	"github.com/milk9111/menagerie/ecs/component"
	"github.com/milk9111/menagerie/prefabs"
	"github.com/milk9111/menagerie/scene"
)

// NewCamera builds the camera entity from the scene spec.
func NewCamera(w *ecs.World, spec prefabs.SceneSpec) (ecs.Entity, error) {
	cam := scene.NewCamera(common.BaseWidth, common.BaseHeight)
	if spec.Camera.Fov > 0 {
		cam.Fov = spec.Camera.Fov
	}
	if spec.Camera.Near > 0 {
		cam.Near = spec.Camera.Near
	}
	if spec.Camera.Far > cam.Near {
		cam.Far = spec.Camera.Far
	}
	if p := spec.Camera.Position.Vec3(); p.Len() > 0 {
		cam.Position = p
	}
	cam.Target = spec.Camera.Target.Vec3()

	orbit := scene.NewOrbitControls(nil)
	if spec.Orbit.MinDistance > 0 {
		orbit.MinDistance = spec.Orbit.MinDistance
	}
	if spec.Orbit.MaxDistance >= orbit.MinDistance {
		orbit.MaxDistance = spec.Orbit.MaxDistance
	}
	if spec.Orbit.MaxPolar > 0 {
		orbit.MaxPolar = spec.Orbit.MaxPolar
	}
	if spec.Orbit.Damping > 0 {
		orbit.Damping = spec.Orbit.Damping
	}
	orbit.Target = cam.Target
	orbit.SetPosition(cam.Position)
	orbit.Apply(cam)

	camera := ecs.CreateEntity(w)
	if err := ecs.Add(w, camera, component.CameraTagComponent.Kind(), &component.CameraTag{}); err != nil {
		return 0, fmt.Errorf("camera: add camera tag: %w", err)
	}
	if err := ecs.Add(w, camera, component.CameraComponent.Kind(), &component.Camera{
		View:   cam,
		Orbit:  orbit,
		Follow: spec.Camera.Follow,
		Height: cam.Target.Y(),
	}); err != nil {
		return 0, fmt.Errorf("camera: add camera component: %w", err)
	}
	return camera, nil
}

// Camera returns the scene's camera component, if one has been built.
func Camera(w *ecs.World) (*component.Camera, bool) {
	e, ok := w.First(component.CameraComponent.Kind())
	if !ok {
		return nil, false
	}
	return ecs.Get(w, e, component.CameraComponent.Kind())
}
