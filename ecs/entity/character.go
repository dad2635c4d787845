package entity

import (
	"fmt"

	"github.com/milk9111/menagerie/ecs"
	"github.com/milk9111/menagerie/ecs/component"
	"github.com/milk9111/menagerie/locomotion"
	"github.com/milk9111/menagerie/prefabs"
)

// NewCharacter loads the prefab named by placement and builds an unloaded
// character at the placement's position. The model system loads it later.
func NewCharacter(w *ecs.World, placement prefabs.PlacementSpec) (ecs.Entity, error) {
	spec, err := prefabs.LoadCharacterSpec(placement.Prefab)
	if err != nil {
		return 0, fmt.Errorf("character: load spec: %w", err)
	}
	sel, err := Selector(spec)
	if err != nil {
		return 0, fmt.Errorf("character %s: %w", spec.Name, err)
	}
	ctrl, err := locomotion.New(spec.Config, sel)
	if err != nil {
		return 0, fmt.Errorf("character %s: %w", spec.Name, err)
	}
	appearance, err := Appearance(spec.Appearance)
	if err != nil {
		return 0, fmt.Errorf("character %s: %w", spec.Name, err)
	}

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.CharacterComponent.Kind(), &component.Character{
		Name:       spec.Name,
		Prefab:     prefabs.Clean(placement.Prefab),
		Spec:       spec,
		Controller: ctrl,
	}); err != nil {
		return 0, fmt.Errorf("character: add character: %w", err)
	}

	pos := placement.Position.Vec3()
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		Position: pos,
		Yaw:      placement.Yaw,
		Scale:    1,
	}); err != nil {
		return 0, fmt.Errorf("character: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.SpawnComponent.Kind(), &component.Spawn{
		Position: pos,
		Yaw:      placement.Yaw,
	}); err != nil {
		return 0, fmt.Errorf("character: add spawn: %w", err)
	}
	if err := ecs.Add(w, e, component.ModelRefComponent.Kind(), &component.ModelRef{
		Path:   spec.Model,
		Styles: spec.ClipStyles,
	}); err != nil {
		return 0, fmt.Errorf("character: add model ref: %w", err)
	}
	if err := ecs.Add(w, e, component.AppearanceComponent.Kind(), appearance); err != nil {
		return 0, fmt.Errorf("character: add appearance: %w", err)
	}

	return e, nil
}

// Selector builds the clip selector a character spec asks for. A spec with no
// script gets the priority chain.
func Selector(spec prefabs.CharacterSpec) (locomotion.Selector, error) {
	if spec.SelectorScript == "" {
		return locomotion.PriorityChain{}, nil
	}
	src, err := prefabs.LoadScript(spec.SelectorScript)
	if err != nil {
		return nil, fmt.Errorf("load selector %s: %w", spec.SelectorScript, err)
	}
	return locomotion.NewScriptSelector(spec.SelectorScript, src)
}

// Appearance converts the prefab appearance block.
func Appearance(spec prefabs.AppearanceSpec) (*component.Appearance, error) {
	c, err := parseHexColor(spec.Color)
	if err != nil {
		return nil, fmt.Errorf("appearance: %w", err)
	}
	return &component.Appearance{
		Color:  c,
		Radius: spec.Radius,
		Height: spec.Height,
		Legs:   spec.Legs,
	}, nil
}

// FindByName returns the character called name.
func FindByName(w *ecs.World, name string) (ecs.Entity, bool) {
	for _, e := range w.Query(component.CharacterComponent.Kind()) {
		c, ok := ecs.Get(w, e, component.CharacterComponent.Kind())
		if ok && c.Name == name {
			return e, true
		}
	}
	return 0, false
}

// SetPlayer moves the player tag to e.
func SetPlayer(w *ecs.World, e ecs.Entity) error {
	if !ecs.Has(w, e, component.CharacterComponent.Kind()) {
		return fmt.Errorf("set player %s: not a character", e)
	}
	for _, other := range w.Query(component.PlayerTagComponent.Kind()) {
		ecs.Remove(w, other, component.PlayerTagComponent.Kind())
	}
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}
