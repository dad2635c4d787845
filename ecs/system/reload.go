package system

import (
	"log"

	"github.com/milk9111/menagerie/ecs"
	"github.com/milk9111/menagerie/ecs/component"
	"github.com/milk9111/menagerie/ecs/entity"
	"github.com/milk9111/menagerie/prefabs"
)

// RequestReloads marks the characters affected by change and returns how many.
func RequestReloads(w *ecs.World, change prefabs.Change) int {
	n := 0
	ecs.ForEach2(w, component.CharacterComponent.Kind(), component.ModelRefComponent.Kind(), func(e ecs.Entity, ch *component.Character, ref *component.ModelRef) {
		var req *component.ReloadRequest
		switch change.Kind {
		case prefabs.ChangeSpec:
			if ch.Prefab == change.Path {
				req = &component.ReloadRequest{Spec: true}
			}
		case prefabs.ChangeScript:
			if ch.Spec.SelectorScript != "" && prefabs.ScriptPath(ch.Spec.SelectorScript) == change.Path {
				req = &component.ReloadRequest{Spec: true}
			}
		case prefabs.ChangeModel:
			if prefabs.Clean(ref.Path) == change.Path {
				req = &component.ReloadRequest{}
			}
		}
		if req == nil {
			return
		}
		if prev, ok := ecs.Get(w, e, component.ReloadRequestComponent.Kind()); ok {
			req.Spec = req.Spec || prev.Spec
		}
		if err := ecs.Add(w, e, component.ReloadRequestComponent.Kind(), req); err != nil {
			log.Printf("reload: %s: %v", ch.Name, err)
			return
		}
		n++
	})
	return n
}

// ReloadSystem rebuilds characters carrying a ReloadRequest. The controller is
// unloaded and the model ref reset, so the model system loads it again and the
// animation library is rebuilt from scratch.
type ReloadSystem struct{}

func NewReloadSystem() *ReloadSystem {
	return &ReloadSystem{}
}

func (rs *ReloadSystem) Update(w *ecs.World) {
	ecs.ForEach3(w, component.ReloadRequestComponent.Kind(), component.CharacterComponent.Kind(), component.ModelRefComponent.Kind(), func(e ecs.Entity, req *component.ReloadRequest, ch *component.Character, ref *component.ModelRef) {
		ecs.Remove(w, e, component.ReloadRequestComponent.Kind())

		if req.Spec {
			if err := reconfigure(w, e, ch, ref); err != nil {
				log.Printf("reload: %s: %v; keeping previous prefab", ch.Name, err)
				return
			}
		} else {
			ch.Controller.Unload()
		}
		ref.Requested = false
		ref.Done = false
		w.Events().Push(ecs.Event{Kind: ecs.EventReloaded, Entity: e, Data: ch.Prefab})
	})
}

func reconfigure(w *ecs.World, e ecs.Entity, ch *component.Character, ref *component.ModelRef) error {
	spec, err := prefabs.LoadCharacterSpec(ch.Prefab)
	if err != nil {
		return err
	}
	sel, err := entity.Selector(spec)
	if err != nil {
		return err
	}
	appearance, err := entity.Appearance(spec.Appearance)
	if err != nil {
		return err
	}
	if err := ch.Controller.Reconfigure(spec.Config, sel); err != nil {
		return err
	}
	ch.Name = spec.Name
	ch.Spec = spec
	ref.Path = spec.Model
	ref.Styles = spec.ClipStyles
	return ecs.Add(w, e, component.AppearanceComponent.Kind(), appearance)
}
