package system

import (
	"github.com/milk9111/menagerie/ecs"
	"github.com/milk9111/menagerie/ecs/component"
)

// Respawn puts every character back where the scene placed it.
func Respawn(w *ecs.World) int {
	n := 0
	ecs.ForEach2(w, component.SpawnComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, sp *component.Spawn, tr *component.Transform) {
		tr.Position = sp.Position
		tr.Yaw = sp.Yaw
		n++
	})
	return n
}
