package locomotion

import (
	"fmt"
	"log"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// ScriptSelector runs a tengo script to choose the clip. The script reads
// moving, running, keys, default_clip, walk_clip and run_clip, and assigns clip.
type ScriptSelector struct {
	name     string
	compiled *tengo.Compiled
	fallback Selector
	warned   bool
}

// NewScriptSelector compiles src. name only labels log lines.
func NewScriptSelector(name string, src []byte) (*ScriptSelector, error) {
	script := tengo.NewScript(src)
	_ = script.Add("moving", false)
	_ = script.Add("running", false)
	_ = script.Add("keys", []any{})
	_ = script.Add("default_clip", "")
	_ = script.Add("walk_clip", "")
	_ = script.Add("run_clip", "")
	_ = script.Add("clip", "")
	script.SetImports(stdlib.GetModuleMap("text", "math"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("locomotion: compile selector %s: %w", name, err)
	}
	return &ScriptSelector{name: name, compiled: compiled, fallback: PriorityChain{}}, nil
}

// Select runs the script. Any script failure falls back to the priority chain.
func (s *ScriptSelector) Select(in Intent, clips Clips) string {
	if s == nil || s.compiled == nil {
		return PriorityChain{}.Select(in, clips)
	}
	clip, err := s.run(in, clips)
	if err != nil {
		if !s.warned {
			log.Printf("locomotion: selector %s: %v; using priority chain", s.name, err)
			s.warned = true
		}
		return s.fallback.Select(in, clips)
	}
	return clip
}

func (s *ScriptSelector) run(in Intent, clips Clips) (string, error) {
	keys := make([]any, 0, len(in.Keys))
	for _, k := range in.Keys {
		keys = append(keys, k)
	}
	vars := map[string]any{
		"moving":       in.Moving,
		"running":      in.Running,
		"keys":         keys,
		"default_clip": clips.Default,
		"walk_clip":    clips.Walk,
		"run_clip":     clips.Run,
		"clip":         "",
	}
	for name, v := range vars {
		if err := s.compiled.Set(name, v); err != nil {
			return "", err
		}
	}
	if err := s.compiled.Run(); err != nil {
		return "", err
	}
	clip := strings.TrimSpace(s.compiled.Get("clip").String())
	if clip == "" {
		return "", fmt.Errorf("script left clip empty")
	}
	return clip, nil
}
