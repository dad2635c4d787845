package model

import (
	"context"
	"errors"
	"fmt"

	"github.com/milk9111/menagerie/anim"
	"gopkg.in/yaml.v3"
)

// ManifestClip is one clip entry of a yaml model manifest.
type ManifestClip struct {
	Name     string  `yaml:"name"`
	Duration float64 `yaml:"duration"`
	Stride   float64 `yaml:"stride"`
	Bob      float64 `yaml:"bob"`
}

// Manifest describes a model's clips without any mesh data.
type Manifest struct {
	Name  string         `yaml:"name"`
	Clips []ManifestClip `yaml:"clips"`
}

// ManifestLoader loads yaml clip manifests through Read.
type ManifestLoader struct {
	Read func(path string) ([]byte, error)
}

func (l *ManifestLoader) Load(ctx context.Context, path string) (*Model, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if l == nil || l.Read == nil {
		return nil, fmt.Errorf("model: load %s: no reader", path)
	}
	data, err := l.Read(path)
	if err != nil {
		return nil, fmt.Errorf("model: read %s: %w", path, err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("model: unmarshal %s: %w", path, err)
	}
	if len(m.Clips) == 0 {
		return nil, fmt.Errorf("model: %s: %w", path, errNoClips)
	}

	out := &Model{Path: path, Clips: make([]anim.Clip, 0, len(m.Clips))}
	for _, c := range m.Clips {
		if c.Name == "" {
			return nil, fmt.Errorf("model: %s: clip without a name", path)
		}
		out.Clips = append(out.Clips, anim.Clip{
			Name:     c.Name,
			Duration: c.Duration,
			Stride:   c.Stride,
			Bob:      c.Bob,
		})
	}
	return out, nil
}

var errNoClips = errors.New("manifest has no clips")
