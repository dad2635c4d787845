package component

import (
	"github.com/milk9111/menagerie/locomotion"
	"github.com/milk9111/menagerie/prefabs"
)

type Character struct {
	Name       string
	Prefab     string
	Spec       prefabs.CharacterSpec
	Controller *locomotion.Controller
}

var CharacterComponent = NewComponent[Character]()
