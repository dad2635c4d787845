package model

import (
	"context"
	"fmt"

	"github.com/milk9111/menagerie/anim"
	"github.com/qmuntal/gltf"
)

// GLTFLoader reads animation names and durations from .glb/.gltf files.
type GLTFLoader struct{}

func (l *GLTFLoader) Load(ctx context.Context, path string) (*Model, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("model: open %s: %w", path, err)
	}
	return &Model{Path: path, Clips: clipsFromDocument(doc)}, nil
}

func clipsFromDocument(doc *gltf.Document) []anim.Clip {
	if doc == nil {
		return nil
	}
	clips := make([]anim.Clip, 0, len(doc.Animations))
	for i, a := range doc.Animations {
		if a == nil {
			continue
		}
		name := a.Name
		if name == "" {
			name = fmt.Sprintf("animation_%d", i)
		}
		clips = append(clips, anim.Clip{Name: name, Duration: animationDuration(doc, a)})
	}
	return clips
}

// animationDuration is the latest keyframe time across the animation's samplers.
func animationDuration(doc *gltf.Document, a *gltf.Animation) float64 {
	d := 0.0
	for _, s := range a.Samplers {
		if s == nil {
			continue
		}
		idx := int(s.Input)
		if idx < 0 || idx >= len(doc.Accessors) || doc.Accessors[idx] == nil {
			continue
		}
		for _, v := range doc.Accessors[idx].Max {
			if f := float64(v); f > d {
				d = f
			}
		}
	}
	return d
}
