package system

import (
	"github.com/milk9111/menagerie/ecs"
	"github.com/milk9111/menagerie/ecs/component"
	"github.com/milk9111/menagerie/model"
)

// ModelSystem requests a load for every character whose model has not been
// asked for, and hands finished loads to the character's controller.
type ModelSystem struct {
	async   *model.Async
	pending map[model.Ticket]ecs.Entity
}

func NewModelSystem(async *model.Async) *ModelSystem {
	return &ModelSystem{
		async:   async,
		pending: make(map[model.Ticket]ecs.Entity),
	}
}

// Pending is the number of loads still in flight.
func (ms *ModelSystem) Pending() int {
	if ms == nil {
		return 0
	}
	return len(ms.pending)
}

func (ms *ModelSystem) Update(w *ecs.World) {
	if ms == nil || ms.async == nil {
		return
	}

	ecs.ForEach(w, component.ModelRefComponent.Kind(), func(e ecs.Entity, ref *component.ModelRef) {
		if ref.Requested {
			return
		}
		ref.Ticket = ms.async.Request(ref.Path)
		ref.Requested = true
		ref.Done = false
		ms.pending[ref.Ticket] = e
	})

	for _, res := range ms.async.Drain() {
		e, ok := ms.pending[res.Ticket]
		delete(ms.pending, res.Ticket)
		if !ok {
			continue
		}
		ref, ok := ecs.Get(w, e, component.ModelRefComponent.Kind())
		if !ok || ref.Ticket != res.Ticket {
			// Entity gone or reloaded since this request went out.
			continue
		}
		ch, ok := ecs.Get(w, e, component.CharacterComponent.Kind())
		if !ok {
			continue
		}
		ref.Done = true

		if res.Err != nil {
			ch.Controller.Fail(res.Err)
			w.Events().Push(ecs.Event{Kind: ecs.EventLoadFailed, Entity: e, Data: res.Err})
			continue
		}
		res.Model.ApplyStyles(ref.Styles)
		ch.Controller.Load(res.Model.Clips)
		w.Events().Push(ecs.Event{Kind: ecs.EventLoaded, Entity: e, Data: res.Model.ClipNames()})
	}
}
