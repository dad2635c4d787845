package locomotion

import (
	"errors"
	"fmt"

	"github.com/milk9111/menagerie/input"
)

// TurnPolicy selects how direction keys change yaw.
type TurnPolicy string

const (
	// TurnContinuous rotates yaw while left/right are held.
	TurnContinuous TurnPolicy = "continuous"
	// TurnSnap faces +Z for forward and -Z for backward.
	TurnSnap TurnPolicy = "snap"
)

// Config describes one character. It decodes directly from a character prefab.
type Config struct {
	Name           string     `yaml:"name"`
	Model          string     `yaml:"model"`
	DefaultClip    string     `yaml:"default_clip"`
	WalkClip       string     `yaml:"walk_clip"`
	RunClip        string     `yaml:"run_clip"`
	WalkVelocity   float64    `yaml:"walk_velocity"`
	TurnVelocity   float64    `yaml:"turn_velocity"`
	RunMultiplier  float64    `yaml:"run_multiplier"`
	FadeDuration   float64    `yaml:"fade_duration"`
	TurnPolicy     TurnPolicy `yaml:"turn_policy"`
	RunCombo       string     `yaml:"run_combo"`
	SelectorScript string     `yaml:"selector_script"`
}

// DefaultConfig returns the values a character gets for anything left unset.
func DefaultConfig() Config {
	return Config{
		DefaultClip:   "Idle",
		WalkClip:      "Walk",
		RunClip:       "Run",
		WalkVelocity:  2.1,
		TurnVelocity:  1.5,
		RunMultiplier: 2,
		FadeDuration:  0.2,
		TurnPolicy:    TurnContinuous,
		RunCombo:      input.Run,
	}
}

// WithDefaults fills zero fields from DefaultConfig.
func (c Config) WithDefaults() Config {
	d := DefaultConfig()
	if c.DefaultClip == "" {
		c.DefaultClip = d.DefaultClip
	}
	if c.WalkClip == "" {
		c.WalkClip = d.WalkClip
	}
	if c.RunClip == "" {
		c.RunClip = d.RunClip
	}
	if c.WalkVelocity == 0 {
		c.WalkVelocity = d.WalkVelocity
	}
	if c.TurnVelocity == 0 {
		c.TurnVelocity = d.TurnVelocity
	}
	if c.RunMultiplier == 0 {
		c.RunMultiplier = d.RunMultiplier
	}
	if c.FadeDuration == 0 {
		c.FadeDuration = d.FadeDuration
	}
	if c.TurnPolicy == "" {
		c.TurnPolicy = d.TurnPolicy
	}
	if c.RunCombo == "" {
		c.RunCombo = d.RunCombo
	}
	return c
}

var ErrInvalidConfig = errors.New("locomotion: invalid config")

// Validate rejects configurations the controller cannot run.
func (c Config) Validate() error {
	switch {
	case c.WalkVelocity < 0:
		return fmt.Errorf("%w: walk_velocity %v < 0", ErrInvalidConfig, c.WalkVelocity)
	case c.TurnVelocity < 0:
		return fmt.Errorf("%w: turn_velocity %v < 0", ErrInvalidConfig, c.TurnVelocity)
	case c.RunMultiplier < 0:
		return fmt.Errorf("%w: run_multiplier %v < 0", ErrInvalidConfig, c.RunMultiplier)
	case c.FadeDuration < 0:
		return fmt.Errorf("%w: fade_duration %v < 0", ErrInvalidConfig, c.FadeDuration)
	case c.TurnPolicy != TurnContinuous && c.TurnPolicy != TurnSnap:
		return fmt.Errorf("%w: turn_policy %q", ErrInvalidConfig, c.TurnPolicy)
	}
	return nil
}
