package anim

import "math"

// Action is a playable instance of a clip with its own time and weight.
type Action struct {
	clip Clip

	time    float64
	weight  float64
	playing bool
	loop    bool

	fading      bool
	fadeFrom    float64
	fadeTo      float64
	fadeElapsed float64
	fadeFor     float64
}

// NewAction wraps clip in a stopped, looping action at full weight.
func NewAction(clip Clip) *Action {
	return &Action{clip: clip, weight: 1, loop: true}
}

func (a *Action) Clip() Clip      { return a.clip }
func (a *Action) Time() float64   { return a.time }
func (a *Action) Weight() float64 { return a.weight }
func (a *Action) Playing() bool   { return a != nil && a.playing }
func (a *Action) Fading() bool    { return a != nil && a.fading }

// FadingOut reports whether the action is fading towards zero weight.
func (a *Action) FadingOut() bool {
	return a != nil && a.fading && a.fadeTo < a.fadeFrom
}

// FadingIn reports whether the action is fading towards full weight.
func (a *Action) FadingIn() bool {
	return a != nil && a.fading && a.fadeTo > a.fadeFrom
}

// SetLoop controls whether time wraps at the clip duration.
func (a *Action) SetLoop(loop bool) *Action {
	if a != nil {
		a.loop = loop
	}
	return a
}

// Reset rewinds to zero at full weight and cancels any fade.
func (a *Action) Reset() *Action {
	if a == nil {
		return nil
	}
	a.time = 0
	a.weight = 1
	a.fading = false
	return a
}

// Play starts advancing the action.
func (a *Action) Play() *Action {
	if a != nil {
		a.playing = true
	}
	return a
}

// Stop halts the action and drops its influence.
func (a *Action) Stop() *Action {
	if a == nil {
		return nil
	}
	a.playing = false
	a.fading = false
	a.weight = 0
	return a
}

// FadeIn ramps weight from zero to one over d.
func (a *Action) FadeIn(d float64) *Action {
	return a.fade(0, 1, d)
}

// FadeOut ramps weight from its current value to zero over d, then stops.
func (a *Action) FadeOut(d float64) *Action {
	if a == nil {
		return nil
	}
	return a.fade(a.weight, 0, d)
}

func (a *Action) fade(from, to, d float64) *Action {
	if a == nil {
		return nil
	}
	if d <= 0 {
		a.weight = to
		a.fading = false
		if to == 0 {
			a.playing = false
		}
		return a
	}
	a.fading = true
	a.fadeFrom = from
	a.fadeTo = to
	a.fadeElapsed = 0
	a.fadeFor = d
	a.weight = from
	return a
}

func (a *Action) update(dt float64) {
	if a == nil || !a.playing || dt <= 0 {
		return
	}

	a.time += dt
	if d := a.clip.Duration; d > 0 {
		if a.loop {
			a.time = math.Mod(a.time, d)
		} else if a.time > d {
			a.time = d
		}
	}

	if !a.fading {
		return
	}
	a.fadeElapsed += dt
	t := a.fadeElapsed / a.fadeFor
	if t >= 1 {
		a.weight = a.fadeTo
		a.fading = false
		if a.fadeTo == 0 {
			a.playing = false
		}
		return
	}
	a.weight = a.fadeFrom + (a.fadeTo-a.fadeFrom)*t
}

// phase returns the normalized position within the clip in [0, 1).
func (a *Action) phase() float64 {
	if a.clip.Duration <= 0 {
		return 0
	}
	return a.time / a.clip.Duration
}
