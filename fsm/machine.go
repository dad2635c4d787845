package fsm

import (
	"errors"
	"fmt"
)

var ErrUnknownState = errors.New("fsm: unknown state")

// State is one node of a Machine. Enter receives the state being left, or nil
// on the first transition.
type State interface {
	Enter(prev State)
	Update(dt float64)
	Exit()
}

// Base supplies no-op hooks; embed it and override what you need.
type Base struct{}

func (Base) Enter(State)    {}
func (Base) Update(float64) {}
func (Base) Exit()          {}

// Machine holds named states with at most one current.
type Machine struct {
	states      map[string]State
	current     State
	currentName string
}

func New() *Machine {
	return &Machine{states: make(map[string]State)}
}

// AddState registers s under name, replacing any previous registration.
func (m *Machine) AddState(name string, s State) {
	if m == nil || s == nil {
		return
	}
	if m.states == nil {
		m.states = make(map[string]State)
	}
	m.states[name] = s
}

// SetState transitions to name. Re-entering the current state is a no-op.
func (m *Machine) SetState(name string) error {
	if m == nil {
		return fmt.Errorf("fsm: set %q: %w", name, ErrUnknownState)
	}
	if m.current != nil && m.currentName == name {
		return nil
	}
	next, ok := m.states[name]
	if !ok {
		return fmt.Errorf("fsm: set %q: %w", name, ErrUnknownState)
	}

	prev := m.current
	if prev != nil {
		prev.Exit()
	}
	m.current = next
	m.currentName = name
	next.Enter(prev)
	return nil
}

// Update forwards dt to the current state.
func (m *Machine) Update(dt float64) {
	if m == nil || m.current == nil {
		return
	}
	m.current.Update(dt)
}

// Current returns the current state and its name.
func (m *Machine) Current() (State, string) {
	if m == nil {
		return nil, ""
	}
	return m.current, m.currentName
}

// Is reports whether name is the current state.
func (m *Machine) Is(name string) bool {
	return m != nil && m.current != nil && m.currentName == name
}
