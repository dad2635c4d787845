package locomotion

import "github.com/milk9111/menagerie/input"

// Intent is the input state a clip decision is made from.
type Intent struct {
	Moving  bool
	Running bool
	Keys    []string
}

// Clips names the clips a selector chooses between.
type Clips struct {
	Default string
	Walk    string
	Run     string
}

// Selector picks the desired clip. Implementations must be free of side effects.
type Selector interface {
	Select(in Intent, clips Clips) string
}

// PriorityChain is idle when still, run when moving with the run modifier,
// walk otherwise.
type PriorityChain struct{}

func (PriorityChain) Select(in Intent, clips Clips) string {
	switch {
	case !in.Moving:
		return clips.Default
	case in.Running:
		return clips.Run
	default:
		return clips.Walk
	}
}

// ReadIntent samples the direction keys and run modifier.
func ReadIntent(keys input.KeyReader, runCombo string) Intent {
	var in Intent
	if keys == nil {
		return in
	}
	for _, k := range input.Directions {
		if keys.IsPressed(k) {
			in.Keys = append(in.Keys, k)
		}
	}
	in.Moving = len(in.Keys) > 0
	in.Running = keys.IsOn(runCombo)
	return in
}

func (in Intent) has(group []string) bool {
	for _, k := range in.Keys {
		for _, g := range group {
			if k == g {
				return true
			}
		}
	}
	return false
}
