package prefabs

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/menagerie/locomotion"
	"github.com/milk9111/menagerie/model"
	"github.com/milk9111/menagerie/scene"
	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type Vec3Spec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

func (v Vec3Spec) Vec3() mgl64.Vec3 { return mgl64.Vec3{v.X, v.Y, v.Z} }

// Mode selects who reads the keyboard.
type Mode string

const (
	// ModeSingle drives only the selected player character.
	ModeSingle Mode = "single"
	// ModeMulti drives every character from the same keys.
	ModeMulti Mode = "multi"
)

type CameraSpec struct {
	Fov      float64  `yaml:"fov"`
	Near     float64  `yaml:"near"`
	Far      float64  `yaml:"far"`
	Position Vec3Spec `yaml:"position"`
	Target   Vec3Spec `yaml:"target"`
	Follow   bool     `yaml:"follow"`
}

type OrbitSpec struct {
	MinDistance float64 `yaml:"min_distance"`
	MaxDistance float64 `yaml:"max_distance"`
	MaxPolar    float64 `yaml:"max_polar"`
	Damping     float64 `yaml:"damping"`
}

type PlacementSpec struct {
	Prefab   string   `yaml:"prefab"`
	Position Vec3Spec `yaml:"position"`
	Yaw      float64  `yaml:"yaw"`
}

type SceneSpec struct {
	Name       string              `yaml:"name"`
	Mode       Mode                `yaml:"mode"`
	Player     string              `yaml:"player"`
	Camera     CameraSpec          `yaml:"camera"`
	Orbit      OrbitSpec           `yaml:"orbit"`
	Floor      scene.Floor         `yaml:"floor"`
	Combos     map[string][]string `yaml:"combos"`
	Characters []PlacementSpec     `yaml:"characters"`
}

var ErrNoCharacters = errors.New("prefabs: scene has no characters")

func LoadSceneSpec(filename string) (SceneSpec, error) {
	spec, err := LoadSpec[SceneSpec](filename)
	if err != nil {
		return spec, err
	}
	if len(spec.Characters) == 0 {
		return spec, fmt.Errorf("%s: %w", filename, ErrNoCharacters)
	}
	if spec.Mode == "" {
		spec.Mode = ModeSingle
	}
	if spec.Mode != ModeSingle && spec.Mode != ModeMulti {
		return spec, fmt.Errorf("prefabs: %s: unknown mode %q", filename, spec.Mode)
	}
	return spec, nil
}

// AppearanceSpec describes the procedural figure drawn for a character.
type AppearanceSpec struct {
	Color  string  `yaml:"color"`
	Radius float64 `yaml:"radius"`
	Height float64 `yaml:"height"`
	Legs   int     `yaml:"legs"`
}

type CharacterSpec struct {
	locomotion.Config `yaml:",inline"`

	Appearance AppearanceSpec         `yaml:"appearance"`
	ClipStyles map[string]model.Style `yaml:"clip_styles"`
}

// LoadCharacterSpec decodes a character prefab and fills locomotion defaults.
func LoadCharacterSpec(filename string) (CharacterSpec, error) {
	spec, err := LoadSpec[CharacterSpec](filename)
	if err != nil {
		return spec, err
	}
	spec.Config = spec.Config.WithDefaults()
	if err := spec.Config.Validate(); err != nil {
		return spec, fmt.Errorf("prefabs: %s: %w", filename, err)
	}
	if spec.Name == "" {
		return spec, fmt.Errorf("prefabs: %s: character has no name", filename)
	}
	if spec.Model == "" {
		return spec, fmt.Errorf("prefabs: %s: character %s has no model", filename, spec.Name)
	}
	if spec.Appearance.Radius <= 0 {
		spec.Appearance.Radius = 0.4
	}
	if spec.Appearance.Height <= 0 {
		spec.Appearance.Height = 1.8
	}
	if spec.Appearance.Legs <= 0 {
		spec.Appearance.Legs = 2
	}
	if spec.Appearance.Color == "" {
		spec.Appearance.Color = "#8080a0"
	}
	return spec, nil
}
