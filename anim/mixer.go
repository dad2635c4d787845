package anim

import (
	"math"
	"sort"
)

// Pose is the blended figure state derived from the playing actions.
type Pose struct {
	Swing float64
	Bob   float64
}

// Mixer owns one action per clip name and advances them together.
type Mixer struct {
	actions map[string]*Action
	elapsed float64
}

// NewMixer creates an empty mixer.
func NewMixer() *Mixer {
	return &Mixer{actions: make(map[string]*Action)}
}

// ClipAction returns the action bound to clip, creating it on first use.
func (m *Mixer) ClipAction(clip Clip) *Action {
	if m == nil {
		return nil
	}
	if m.actions == nil {
		m.actions = make(map[string]*Action)
	}
	if a, ok := m.actions[clip.Name]; ok {
		return a
	}
	a := NewAction(clip)
	m.actions[clip.Name] = a
	return a
}

// Update advances every playing action by dt.
func (m *Mixer) Update(dt float64) {
	if m == nil || dt <= 0 {
		return
	}
	m.elapsed += dt
	for _, a := range m.actions {
		a.update(dt)
	}
}

// Elapsed returns the total time the mixer has advanced.
func (m *Mixer) Elapsed() float64 {
	if m == nil {
		return 0
	}
	return m.elapsed
}

// StopAll stops every action.
func (m *Mixer) StopAll() {
	if m == nil {
		return
	}
	for _, a := range m.actions {
		a.Stop()
	}
}

// Playing returns the names of playing actions, sorted.
func (m *Mixer) Playing() []string {
	if m == nil {
		return nil
	}
	out := make([]string, 0, len(m.actions))
	for name, a := range m.actions {
		if a.playing {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// Pose blends the playing actions by weight.
func (m *Mixer) Pose() Pose {
	if m == nil {
		return Pose{}
	}
	var p Pose
	total := 0.0
	for _, a := range m.actions {
		if !a.playing || a.weight <= 0 {
			continue
		}
		wave := math.Sin(2 * math.Pi * a.phase())
		p.Swing += a.weight * a.clip.Stride * wave
		p.Bob += a.weight * a.clip.Bob * math.Abs(wave)
		total += a.weight
	}
	if total > 0 {
		p.Swing /= total
		p.Bob /= total
	}
	return p
}
