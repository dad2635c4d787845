package system

import (
	"github.com/milk9111/menagerie/common"
	"github.com/milk9111/menagerie/ecs"
	"github.com/milk9111/menagerie/ecs/component"
	"github.com/milk9111/menagerie/input"
)

// LocomotionSystem steps every character's controller by one fixed tick.
// Only the player reads the keys unless Multi is set.
type LocomotionSystem struct {
	keys  input.KeyReader
	Multi bool
	DT    float64
}

func NewLocomotionSystem(keys input.KeyReader, multi bool) *LocomotionSystem {
	return &LocomotionSystem{keys: keys, Multi: multi, DT: 1.0 / common.TPS}
}

func (ls *LocomotionSystem) Update(w *ecs.World) {
	if ls == nil {
		return
	}
	ecs.ForEach2(w, component.CharacterComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, ch *component.Character, tr *component.Transform) {
		var keys input.KeyReader = input.Idle{}
		if ls.keys != nil && (ls.Multi || ecs.Has(w, e, component.PlayerTagComponent.Kind())) {
			keys = ls.keys
		}
		ch.Controller.Update(ls.DT, keys, tr)
	})
}
