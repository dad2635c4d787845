package system

import (
	"log"

	"github.com/milk9111/menagerie/ecs"
	"github.com/milk9111/menagerie/ecs/component"
	"github.com/milk9111/menagerie/ecs/entity"
	"github.com/milk9111/menagerie/input"
	"github.com/milk9111/menagerie/scene"
)

// PickingSystem keeps character footprints in the picker, marks the character
// under the cursor as hovered, and hands the player tag to a clicked character.
type PickingSystem struct {
	picker *scene.Picker
	mouse  *input.Mouse
	synced map[ecs.Entity]bool
}

func NewPickingSystem(picker *scene.Picker, mouse *input.Mouse) *PickingSystem {
	return &PickingSystem{picker: picker, mouse: mouse, synced: make(map[ecs.Entity]bool)}
}

func (ps *PickingSystem) Update(w *ecs.World) {
	if ps == nil || ps.picker == nil {
		return
	}
	ps.sync(w)

	for _, e := range w.Query(component.HoveredComponent.Kind()) {
		ecs.Remove(w, e, component.HoveredComponent.Kind())
	}

	cam, ok := entity.Camera(w)
	if !ok || ps.mouse == nil {
		return
	}
	hits := ps.picker.Pick(ps.mouse.X, ps.mouse.Y, cam.View)
	if len(hits) == 0 {
		return
	}
	target := ecs.Entity(hits[0].ID)
	if !ecs.IsAlive(w, target) {
		return
	}
	if err := ecs.Add(w, target, component.HoveredComponent.Kind(), &component.Hovered{}); err != nil {
		log.Printf("picking: hover %s: %v", target, err)
	}

	if !ps.mouse.Clicked || ecs.Has(w, target, component.PlayerTagComponent.Kind()) {
		return
	}
	if err := entity.SetPlayer(w, target); err == nil {
		w.Events().Push(ecs.Event{Kind: ecs.EventSelected, Entity: target})
	}
}

func (ps *PickingSystem) sync(w *ecs.World) {
	seen := make(map[ecs.Entity]bool, len(ps.synced))
	ecs.ForEach3(w, component.CharacterComponent.Kind(), component.TransformComponent.Kind(), component.AppearanceComponent.Kind(), func(e ecs.Entity, _ *component.Character, tr *component.Transform, ap *component.Appearance) {
		ps.picker.Sync(uint64(e), tr.Position, ap.Radius, ap.Height)
		seen[e] = true
	})
	for e := range ps.synced {
		if !seen[e] {
			ps.picker.Remove(uint64(e))
		}
	}
	ps.synced = seen
}
