package anim

import (
	"errors"
	"fmt"
	"sort"
)

var ErrClipNotFound = errors.New("anim: clip not found")

// Library maps clip names to actions for one loaded model.
type Library struct {
	mixer   *Mixer
	actions map[string]*Action
}

// NewLibrary binds every clip to an action on mixer.
func NewLibrary(mixer *Mixer, clips []Clip) *Library {
	l := &Library{mixer: mixer, actions: make(map[string]*Action, len(clips))}
	for _, c := range clips {
		l.Register(c.Name, mixer.ClipAction(c))
	}
	return l
}

// Register adds an action under name, replacing any previous entry.
func (l *Library) Register(name string, a *Action) {
	if l == nil || name == "" || a == nil {
		return
	}
	if l.actions == nil {
		l.actions = make(map[string]*Action)
	}
	l.actions[name] = a
}

// Get returns the action registered under name.
func (l *Library) Get(name string) (*Action, bool) {
	if l == nil || name == "" {
		return nil, false
	}
	a, ok := l.actions[name]
	return a, ok
}

// Activate switches straight to name at full weight with no blending.
// Nothing is touched when name is not registered.
func (l *Library) Activate(name string) (*Action, error) {
	a, ok := l.Get(name)
	if !ok {
		return nil, fmt.Errorf("anim: activate %q: %w", name, ErrClipNotFound)
	}
	for n, other := range l.actions {
		if n != name {
			other.Stop()
		}
	}
	a.Reset().Play()
	return a, nil
}

// Clear drops every entry and stops what was playing.
func (l *Library) Clear() {
	if l == nil {
		return
	}
	for _, a := range l.actions {
		a.Stop()
	}
	l.actions = make(map[string]*Action)
}

// Names returns the registered clip names, sorted.
func (l *Library) Names() []string {
	if l == nil {
		return nil
	}
	out := make([]string, 0, len(l.actions))
	for n := range l.actions {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of registered clips.
func (l *Library) Len() int {
	if l == nil {
		return 0
	}
	return len(l.actions)
}
