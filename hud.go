package main

import (
	"fmt"
	"strings"

	"github.com/milk9111/menagerie/ecs"
	"github.com/milk9111/menagerie/ecs/component"
)

// hudRow is one character line of the overlay.
type hudRow struct {
	Name   string
	Player bool
	State  string
	Clip   string
}

func (r hudRow) String() string {
	marker := "  "
	if r.Player {
		marker = "> "
	}
	if r.Clip == "" {
		return fmt.Sprintf("%s%-10s %s", marker, r.Name, r.State)
	}
	return fmt.Sprintf("%s%-10s %-8s %s", marker, r.Name, r.State, r.Clip)
}

// hudRows reports every character in entity order.
func hudRows(w *ecs.World) []hudRow {
	ents := w.Query(component.CharacterComponent.Kind())
	rows := make([]hudRow, 0, len(ents))
	for _, e := range ents {
		ch, _ := ecs.Get(w, e, component.CharacterComponent.Kind())
		row := hudRow{
			Name:   ch.Name,
			Player: ecs.Has(w, e, component.PlayerTagComponent.Kind()),
		}
		ctrl := ch.Controller
		switch {
		case ctrl == nil:
			row.State = "none"
		case ctrl.Err() != nil:
			row.State = "failed"
		case !ctrl.Loaded():
			row.State = "loading"
		default:
			row.State = "ready"
			row.Clip = ctrl.Current()
		}
		rows = append(rows, row)
	}
	return rows
}

// modeLine is the header shown above the character list.
func modeLine(state string, multi bool) string {
	mode := "single"
	if multi {
		mode = "multi"
	}
	return fmt.Sprintf("%s | %s | click: select  tab: next  r: respawn  esc: pause", strings.ToUpper(state), mode)
}
