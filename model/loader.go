package model

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/milk9111/menagerie/anim"
)

var ErrUnsupportedFormat = errors.New("model: unsupported format")

// Model is what the scene needs from a loaded asset: its clips.
type Model struct {
	Path  string
	Clips []anim.Clip
}

// ClipNames lists the model's clip names in file order.
func (m *Model) ClipNames() []string {
	if m == nil {
		return nil
	}
	out := make([]string, 0, len(m.Clips))
	for _, c := range m.Clips {
		out = append(out, c.Name)
	}
	return out
}

// Style overrides how a clip moves the procedural figure.
type Style struct {
	Stride float64 `yaml:"stride"`
	Bob    float64 `yaml:"bob"`
}

// ApplyStyles sets stride and bob on clips named in styles.
func (m *Model) ApplyStyles(styles map[string]Style) {
	if m == nil {
		return
	}
	for i, c := range m.Clips {
		if s, ok := styles[c.Name]; ok {
			m.Clips[i].Stride = s.Stride
			m.Clips[i].Bob = s.Bob
		}
	}
}

// Loader turns a path into a Model.
type Loader interface {
	Load(ctx context.Context, path string) (*Model, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context, path string) (*Model, error)

func (f LoaderFunc) Load(ctx context.Context, path string) (*Model, error) {
	return f(ctx, path)
}

// Multi dispatches to a loader by lower-case file extension.
type Multi map[string]Loader

// NewDefault wires the gltf loader for .glb/.gltf and the manifest loader for
// .yaml/.yml, reading manifests through read.
func NewDefault(read func(string) ([]byte, error)) Multi {
	manifest := &ManifestLoader{Read: read}
	gl := &GLTFLoader{}
	return Multi{
		".glb":  gl,
		".gltf": gl,
		".yaml": manifest,
		".yml":  manifest,
	}
}

func (m Multi) Load(ctx context.Context, path string) (*Model, error) {
	ext := strings.ToLower(filepath.Ext(path))
	l, ok := m[ext]
	if !ok || l == nil {
		return nil, fmt.Errorf("model: load %s: %w", path, ErrUnsupportedFormat)
	}
	return l.Load(ctx, path)
}
