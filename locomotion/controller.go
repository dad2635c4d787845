package locomotion

import (
	"fmt"
	"log"
	"math"

	"github.com/milk9111/menagerie/anim"
	"github.com/milk9111/menagerie/common"
	"github.com/milk9111/menagerie/events"
	"github.com/milk9111/menagerie/input"
)

// ClipChange is the payload of events.ClipChanged.
type ClipChange struct {
	From  string
	To    string
	Faded bool
}

// Controller drives one character: it picks a clip from input each tick,
// cross-fades to it, and moves the character's transform.
type Controller struct {
	cfg      Config
	selector Selector

	mixer   *anim.Mixer
	lib     *anim.Library
	current string
	loaded  bool
	err     error

	bus     *events.Bus
	missing map[string]bool
}

// New builds an unloaded controller. A nil selector uses PriorityChain.
func New(cfg Config, sel Selector) (*Controller, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if sel == nil {
		sel = PriorityChain{}
	}
	return &Controller{
		cfg:      cfg,
		selector: sel,
		mixer:    anim.NewMixer(),
		bus:      events.NewBus(),
		missing:  make(map[string]bool),
	}, nil
}

func (c *Controller) Config() Config         { return c.cfg }
func (c *Controller) Name() string           { return c.cfg.Name }
func (c *Controller) Events() *events.Bus    { return c.bus }
func (c *Controller) Mixer() *anim.Mixer     { return c.mixer }
func (c *Controller) Library() *anim.Library { return c.lib }
func (c *Controller) Current() string        { return c.current }
func (c *Controller) Err() error             { return c.err }
func (c *Controller) Loaded() bool           { return c != nil && c.loaded }
func (c *Controller) Clips() Clips           { return Clips{c.cfg.DefaultClip, c.cfg.WalkClip, c.cfg.RunClip} }
func (c *Controller) Pose() anim.Pose        { return c.mixer.Pose() }
func (c *Controller) SetSelector(s Selector) { c.selector = s }
func (c *Controller) Selector() Selector     { return c.selector }

// Load replaces the animation library with clips and marks the controller loaded.
func (c *Controller) Load(clips []anim.Clip) {
	if c == nil {
		return
	}
	c.Unload()
	c.lib = anim.NewLibrary(c.mixer, clips)
	c.loaded = true
	c.err = nil

	for _, name := range []string{c.cfg.DefaultClip, c.cfg.WalkClip, c.cfg.RunClip} {
		if _, ok := c.lib.Get(name); !ok {
			log.Printf("locomotion: %s: model %s has no clip %q", c.cfg.Name, c.cfg.Model, name)
		}
	}
	c.bus.Publish(events.Loaded, c.lib.Names())
}

// Fail records a load error. The controller stays unloaded.
func (c *Controller) Fail(err error) {
	if c == nil || err == nil {
		return
	}
	c.err = err
	c.loaded = false
	log.Printf("locomotion: %s: load %s: %v", c.cfg.Name, c.cfg.Model, err)
	c.bus.Publish(events.LoadFailed, err)
}

// Unload discards the library so the next Load starts clean.
func (c *Controller) Unload() {
	if c == nil {
		return
	}
	if c.lib != nil {
		c.lib.Clear()
	}
	c.mixer = anim.NewMixer()
	c.lib = nil
	c.current = ""
	c.loaded = false
	c.missing = make(map[string]bool)
}

// Reconfigure swaps the configuration. The caller reloads the model afterwards.
func (c *Controller) Reconfigure(cfg Config, sel Selector) error {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return err
	}
	if sel == nil {
		sel = PriorityChain{}
	}
	c.cfg = cfg
	c.selector = sel
	c.Unload()
	c.err = nil
	return nil
}

// Activate jumps straight to name at full weight, bypassing the cross-fade.
func (c *Controller) Activate(name string) error {
	if c == nil || !c.loaded {
		return fmt.Errorf("locomotion: activate %q: not loaded", name)
	}
	if _, err := c.lib.Activate(name); err != nil {
		return err
	}
	c.current = name
	return nil
}

// Update advances one tick. It does nothing until the model has loaded.
func (c *Controller) Update(dt float64, keys input.KeyReader, tr *common.Transform) {
	if c == nil || !c.loaded {
		return
	}

	in := ReadIntent(keys, c.cfg.RunCombo)
	c.transition(c.selector.Select(in, c.Clips()))

	if in.Moving && tr != nil {
		c.integrate(dt, in, tr)
	}

	c.mixer.Update(dt)
}

func (c *Controller) transition(next string) {
	if next == c.current {
		return
	}
	to, ok := c.lib.Get(next)
	if !ok {
		if !c.missing[next] {
			c.missing[next] = true
			log.Printf("locomotion: %s: no clip %q, keeping %q", c.cfg.Name, next, c.current)
			c.bus.Publish(events.ClipMissing, next)
		}
		return
	}

	change := ClipChange{From: c.current, To: next}
	if prev, ok := c.lib.Get(c.current); ok {
		prev.FadeOut(c.cfg.FadeDuration)
		to.Reset().FadeIn(c.cfg.FadeDuration).Play()
		change.Faded = true
	} else {
		to.Reset().Play()
	}
	c.current = next
	c.bus.Publish(events.ClipChanged, change)
}

func (c *Controller) integrate(dt float64, in Intent, tr *common.Transform) {
	speed := c.cfg.WalkVelocity
	turn := c.cfg.TurnVelocity
	if in.Running {
		speed *= c.cfg.RunMultiplier
		turn *= c.cfg.RunMultiplier
	}

	forward := in.has(input.Forward)
	backward := in.has(input.Backward)
	sign := 1.0

	switch c.cfg.TurnPolicy {
	case TurnSnap:
		if backward && !forward {
			tr.Yaw = math.Pi
		} else if forward {
			tr.Yaw = 0
		}
	default:
		if in.has(input.Left) {
			tr.Yaw += turn * dt
		}
		if in.has(input.Right) {
			tr.Yaw -= turn * dt
		}
		tr.Yaw = common.WrapAngle(tr.Yaw)
		if backward && !forward {
			sign = -1
		}
	}

	tr.Position = tr.Position.Add(tr.Facing().Mul(sign * speed * dt))
}
