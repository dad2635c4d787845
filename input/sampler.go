package input

import (
	"sort"

	"github.com/milk9111/menagerie/events"
)

// KeyReader is the query side of a sampler.
type KeyReader interface {
	IsPressed(keys ...string) bool
	IsOn(keys ...string) bool
}

// KeyEvent is a raw keyboard transition.
type KeyEvent struct {
	Key   string
	Down  bool
	Shift bool
	Alt   bool
	Ctrl  bool
}

// Sampler tracks which keys are down. It is polled by the frame loop and also
// publishes per-key transitions on its bus for push-style consumers.
type Sampler struct {
	state  map[string]bool
	combos map[string][]string
	bus    *events.Bus
}

// NewSampler creates a sampler with the given keys registered as released.
func NewSampler(keys ...string) *Sampler {
	s := &Sampler{
		state: make(map[string]bool, len(keys)),
		bus:   events.NewBus(),
	}
	for _, k := range keys {
		s.state[Canonical(k)] = false
	}
	s.ResetCombos()
	return s
}

// ResetCombos drops every combination except the default run -> shift.
func (s *Sampler) ResetCombos() {
	if s == nil {
		return
	}
	s.combos = map[string][]string{Run: {Shift}}
}

// Events returns the bus that key transitions are published on.
func (s *Sampler) Events() *events.Bus {
	if s == nil {
		return nil
	}
	return s.bus
}

// SetCombo registers a named combination, e.g. "run" -> shift.
func (s *Sampler) SetCombo(name string, keys ...string) {
	if s == nil || name == "" {
		return
	}
	canon := make([]string, 0, len(keys))
	for _, k := range keys {
		canon = append(canon, Canonical(k))
	}
	s.combos[name] = canon
}

// SetPressed records the state of a canonical key and publishes the transition.
func (s *Sampler) SetPressed(key string, pressed bool) {
	if s == nil {
		return
	}
	if s.state == nil {
		s.state = make(map[string]bool)
	}
	s.state[key] = pressed
	if s.bus == nil {
		return
	}
	kind := events.KeyUp
	if pressed {
		kind = events.KeyDown
	}
	s.bus.Publish(kind, key)
	s.bus.Publish(events.KeyKind(key, pressed), key)
}

// Apply records a raw key event. Modifier state always comes from the event flags.
func (s *Sampler) Apply(evt KeyEvent) {
	if s == nil {
		return
	}
	key := Canonical(evt.Key)
	s.setQuiet(key, evt.Down)
	if evt.Key == " " {
		s.setQuiet(" ", evt.Down)
	}
	s.setQuiet(Shift, evt.Shift)
	s.setQuiet(Alt, evt.Alt)
	s.setQuiet(Ctrl, evt.Ctrl)

	if s.bus == nil {
		return
	}
	kind := events.KeyUp
	if evt.Down {
		kind = events.KeyDown
	}
	s.bus.Publish(kind, evt)
	s.bus.Publish(events.KeyKind(key, evt.Down), evt)
}

func (s *Sampler) setQuiet(key string, pressed bool) {
	if s.state == nil {
		s.state = make(map[string]bool)
	}
	s.state[key] = pressed
}

// IsPressed reports whether any of keys is down.
func (s *Sampler) IsPressed(keys ...string) bool {
	if s == nil {
		return false
	}
	for _, k := range keys {
		if s.state[k] {
			return true
		}
	}
	return false
}

// IsOn reports whether all keys are down, or every argument is a combination
// whose keys are all down. It is vacuously true with no arguments.
func (s *Sampler) IsOn(keys ...string) bool {
	if s == nil {
		return false
	}
	return s.allPressed(keys) || s.allCombos(keys)
}

func (s *Sampler) allPressed(keys []string) bool {
	for _, k := range keys {
		if !s.state[k] {
			return false
		}
	}
	return true
}

func (s *Sampler) allCombos(names []string) bool {
	for _, n := range names {
		combo, ok := s.combos[n]
		if !ok || len(combo) == 0 || !s.allPressed(combo) {
			return false
		}
	}
	return true
}

// Snapshot returns the sorted list of keys currently down.
func (s *Sampler) Snapshot() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.state))
	for k, down := range s.state {
		if down {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// Reset releases every key without publishing.
func (s *Sampler) Reset() {
	if s == nil {
		return
	}
	for k := range s.state {
		s.state[k] = false
	}
}

// Idle reports every key as released.
type Idle struct{}

func (Idle) IsPressed(...string) bool { return false }
func (Idle) IsOn(...string) bool      { return false }
