package input

// Mouse holds the cursor state sampled once per frame.
type Mouse struct {
	X, Y     float64
	DX, DY   float64
	Wheel    float64
	Dragging bool
	Clicked  bool

	seen bool
}

// Move records a new cursor position and the delta from the previous one.
func (m *Mouse) Move(x, y float64) {
	if m == nil {
		return
	}
	if m.seen {
		m.DX = x - m.X
		m.DY = y - m.Y
	} else {
		m.DX, m.DY = 0, 0
		m.seen = true
	}
	m.X, m.Y = x, y
}

// EndFrame clears the per-frame edges.
func (m *Mouse) EndFrame() {
	if m == nil {
		return
	}
	m.DX, m.DY = 0, 0
	m.Wheel = 0
	m.Clicked = false
}
