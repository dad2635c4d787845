package component

import "github.com/milk9111/menagerie/model"

// ModelRef tracks the asset a character is built from.
type ModelRef struct {
	Path      string
	Styles    map[string]model.Style
	Ticket    model.Ticket
	Requested bool
	Done      bool
}

var ModelRefComponent = NewComponent[ModelRef]()
