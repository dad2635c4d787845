package system

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/menagerie/ecs"
	"github.com/milk9111/menagerie/input"
)

// Device is the slice of ebiten's input API the input system polls.
type Device interface {
	KeyPressed(k ebiten.Key) bool
	MousePressed(b ebiten.MouseButton) bool
	Cursor() (x, y int)
	Wheel() (dx, dy float64)
}

type ebitenDevice struct{}

func (ebitenDevice) KeyPressed(k ebiten.Key) bool            { return ebiten.IsKeyPressed(k) }
func (ebitenDevice) MousePressed(b ebiten.MouseButton) bool { return ebiten.IsMouseButtonPressed(b) }
func (ebitenDevice) Cursor() (int, int)                     { return ebiten.CursorPosition() }
func (ebitenDevice) Wheel() (float64, float64)              { return ebiten.Wheel() }

type binding struct {
	key  ebiten.Key
	name string
}

var defaultBindings = []binding{
	{ebiten.KeyW, input.W},
	{ebiten.KeyA, input.A},
	{ebiten.KeyS, input.S},
	{ebiten.KeyD, input.D},
	{ebiten.KeyArrowUp, input.ArrowUp},
	{ebiten.KeyArrowDown, input.ArrowDown},
	{ebiten.KeyArrowLeft, input.ArrowLeft},
	{ebiten.KeyArrowRight, input.ArrowRight},
	{ebiten.KeySpace, " "},
	{ebiten.KeyEscape, input.Escape},
	{ebiten.KeyR, "R"},
	{ebiten.KeyTab, input.Tab},
	{ebiten.KeyShift, input.Shift},
	{ebiten.KeyAlt, input.Alt},
	{ebiten.KeyControl, input.Ctrl},
}

// dragThreshold is how far, in pixels, the cursor travels before a press
// counts as a drag instead of a click.
const dragThreshold = 4

// InputSystem turns polled key state into sampler events and fills the mouse.
// Raw key names go through Sampler.Apply so they are canonicalized there.
type InputSystem struct {
	device  Device
	sampler *input.Sampler
	mouse   *input.Mouse

	prev    map[ebiten.Key]bool
	pressed bool
	travel  float64
}

func NewInputSystem(sampler *input.Sampler, mouse *input.Mouse) *InputSystem {
	return NewInputSystemWithDevice(ebitenDevice{}, sampler, mouse)
}

func NewInputSystemWithDevice(device Device, sampler *input.Sampler, mouse *input.Mouse) *InputSystem {
	return &InputSystem{
		device:  device,
		sampler: sampler,
		mouse:   mouse,
		prev:    make(map[ebiten.Key]bool),
	}
}

func (i *InputSystem) Update(w *ecs.World) {
	if i == nil || i.device == nil {
		return
	}
	i.pollKeys()
	i.pollMouse()
}

// Reset forgets which keys were seen down, so the next Update republishes
// every key that is still held.
func (i *InputSystem) Reset() {
	if i == nil {
		return
	}
	clear(i.prev)
	i.pressed = false
	i.travel = 0
}

func (i *InputSystem) pollKeys() {
	if i.sampler == nil {
		return
	}
	shift := i.device.KeyPressed(ebiten.KeyShift)
	alt := i.device.KeyPressed(ebiten.KeyAlt)
	ctrl := i.device.KeyPressed(ebiten.KeyControl)

	for _, b := range defaultBindings {
		down := i.device.KeyPressed(b.key)
		if down == i.prev[b.key] {
			continue
		}
		i.prev[b.key] = down
		i.sampler.Apply(input.KeyEvent{Key: b.name, Down: down, Shift: shift, Alt: alt, Ctrl: ctrl})
	}
}

func (i *InputSystem) pollMouse() {
	m := i.mouse
	if m == nil {
		return
	}
	m.EndFrame()
	x, y := i.device.Cursor()
	m.Move(float64(x), float64(y))
	_, m.Wheel = i.device.Wheel()

	down := i.device.MousePressed(ebiten.MouseButtonLeft)
	switch {
	case down && !i.pressed:
		i.pressed = true
		i.travel = 0
		m.Dragging = false
	case down:
		i.travel += math.Hypot(m.DX, m.DY)
		if i.travel > dragThreshold {
			m.Dragging = true
		}
	case i.pressed:
		i.pressed = false
		m.Clicked = !m.Dragging
		m.Dragging = false
	}
}
