package component

// PlayerTag marks the character that reads the keyboard in single mode.
type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type CameraTag struct{}

var CameraTagComponent = NewComponent[CameraTag]()

// Hovered marks the character under the cursor.
type Hovered struct{}

var HoveredComponent = NewComponent[Hovered]()
