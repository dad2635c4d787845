package entity

import (
	"fmt"

	"github.com/milk9111/menagerie/ecs"
	"github.com/milk9111/menagerie/ecs/component"
	"github.com/milk9111/menagerie/prefabs"
)

// BuildScene creates the camera and every character in spec. player names the
// character to tag as player; empty falls back to the scene's player, then to
// the first character.
func BuildScene(w *ecs.World, spec prefabs.SceneSpec, player string) ([]ecs.Entity, error) {
	if _, err := NewCamera(w, spec); err != nil {
		return nil, err
	}

	chars := make([]ecs.Entity, 0, len(spec.Characters))
	for _, placement := range spec.Characters {
		e, err := NewCharacter(w, placement)
		if err != nil {
			return nil, fmt.Errorf("scene %s: %w", spec.Name, err)
		}
		chars = append(chars, e)
	}

	if player == "" {
		player = spec.Player
	}
	target, ok := FindByName(w, player)
	if !ok {
		if player != "" {
			return nil, fmt.Errorf("scene %s: no character named %q", spec.Name, player)
		}
		target = chars[0]
	}
	if err := SetPlayer(w, target); err != nil {
		return nil, fmt.Errorf("scene %s: %w", spec.Name, err)
	}
	return chars, nil
}

// Player returns the entity currently tagged as player.
func Player(w *ecs.World) (ecs.Entity, bool) {
	return w.First(component.PlayerTagComponent.Kind())
}
